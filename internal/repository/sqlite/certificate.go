package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/model"
	"github.com/mvasiliades/portfolio-api/internal/repository"
)

// CertificateRepo persists certificates. The expiry date is nullable;
// "expired" is derived at read time by the service layer, never stored.
type CertificateRepo struct {
	conn *sql.DB
}

var _ repository.CertificateRepository = (*CertificateRepo)(nil)

const certificateColumns = `id, title, organization, image_url, credential_id,
	skills, verified, issue_date, expiry_date, created_at, updated_at`

// Insert stores a new certificate, assigning its id and both timestamps.
func (r *CertificateRepo) Insert(ctx context.Context, rec *model.Certificate) error {
	rec.ID = xid.New().String()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	skills, err := marshalList(rec.Skills)
	if err != nil {
		return fmt.Errorf("sqlite: inserting certificate: %w", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO certificates (`+certificateColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Organization, rec.ImageURL, rec.CredentialID,
		skills, rec.Verified, rec.IssueDate, nullableTime(rec.ExpiryDate),
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting certificate: %w", err)
	}
	return nil
}

// GetByID fetches a single certificate.
func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*model.Certificate, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE id = ?`, id)
	rec, err := scanCertificate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("certificate", id)
		}
		return nil, fmt.Errorf("sqlite: getting certificate %s: %w", id, err)
	}
	return rec, nil
}

// List returns certificates ordered most recent first.
func (r *CertificateRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Certificate, error) {
	limit, offset := clampList(opts.Limit, opts.Offset)

	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing certificates: %w", err)
	}
	defer rows.Close()

	records := make([]model.Certificate, 0, limit)
	for rows.Next() {
		rec, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning certificate row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating certificates: %w", err)
	}
	return records, nil
}

// Update rewrites the operator-editable columns; created_at survives.
func (r *CertificateRepo) Update(ctx context.Context, rec *model.Certificate) error {
	rec.UpdatedAt = time.Now().UTC()

	skills, err := marshalList(rec.Skills)
	if err != nil {
		return fmt.Errorf("sqlite: updating certificate %s: %w", rec.ID, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`UPDATE certificates
		 SET title = ?, organization = ?, image_url = ?, credential_id = ?,
		     skills = ?, verified = ?, issue_date = ?, expiry_date = ?,
		     updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.Organization, rec.ImageURL, rec.CredentialID,
		skills, rec.Verified, rec.IssueDate, nullableTime(rec.ExpiryDate),
		rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating certificate %s: %w", rec.ID, err)
	}
	return checkAffected(result, "certificate", rec.ID)
}

// Delete removes a certificate; stale ids report not found.
func (r *CertificateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM certificates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting certificate %s: %w", id, err)
	}
	return checkAffected(result, "certificate", id)
}

func scanCertificate(row rowScanner) (*model.Certificate, error) {
	var rec model.Certificate
	var skills string
	var expiry sql.NullTime
	if err := row.Scan(
		&rec.ID, &rec.Title, &rec.Organization, &rec.ImageURL, &rec.CredentialID,
		&skills, &rec.Verified, &rec.IssueDate, &expiry,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	list, err := scanList(skills)
	if err != nil {
		return nil, err
	}
	rec.Skills = list
	if expiry.Valid {
		t := expiry.Time
		rec.ExpiryDate = &t
	}
	return &rec, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
