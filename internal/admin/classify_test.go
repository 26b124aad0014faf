package admin

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		status string
		want   Tier
	}{
		{"completed", TierPositive},
		{"published", TierPositive},
		{"approved", TierPositive},
		{"in-progress", TierWarning},
		{"planned", TierNeutral},
		{"draft", TierNeutral},
		{"pending", TierNeutral},
		{"archived", TierDefault},
		{"", TierDefault},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			if got := Classify(tc.status); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.status, got, tc.want)
			}
		})
	}
}
