package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/mvasiliades/portfolio-api/internal/apperror"
	"github.com/mvasiliades/portfolio-api/internal/auth"
)

// AuthHandler manages the operator session. Two login paths issue the
// same session cookie: a password check against the configured bcrypt
// hash, and GitHub OAuth restricted to the configured login.
type AuthHandler struct {
	tokens       *auth.TokenService
	passwords    *auth.PasswordService
	passwordHash string
	github       *auth.GitHubProvider
	allowedLogin string
	logger       *slog.Logger
}

// NewAuthHandler creates an AuthHandler. github may be nil; the server
// only mounts the OAuth routes when the provider is configured.
func NewAuthHandler(
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	passwordHash string,
	github *auth.GitHubProvider,
	allowedLogin string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		tokens:       tokens,
		passwords:    passwords,
		passwordHash: passwordHash,
		github:       github,
		allowedLogin: allowedLogin,
		logger:       logger,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleLogin checks the operator password and starts a session.
//
// HTTP: POST /api/auth/login
// Body: {"password": "..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.passwords.Verify(h.passwordHash, req.Password); err != nil {
		h.logger.Warn("login rejected: wrong password")
		writeError(w, apperror.Unauthorized("invalid password"))
		return
	}

	token, err := h.tokens.Generate("operator")
	if err != nil {
		h.logger.Error("login: token generation failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.logger.Info("operator logged in")
	writeJSON(w, http.StatusOK, map[string]string{"operator": "operator"})
}

// HandleLogout clears the session cookie. The token stays technically
// valid until expiry; without the cookie the browser can't send it.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe reports the current session's operator.
//
// HTTP: GET /api/auth/me (behind RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	operator, ok := auth.OperatorFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"operator": operator})
}

// HandleGitHubLogin redirects to GitHub's authorization page. The
// random state round-trips through a short-lived cookie for CSRF
// protection.
//
// HTTP: GET /auth/github/login
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow. Only the configured
// GitHub login is accepted; this is a single-operator API, not a
// multi-user signup.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	if ghUser.Login != h.allowedLogin {
		h.logger.Warn("auth callback: login not allowed", slog.String("login", ghUser.Login))
		writeError(w, apperror.Unauthorized("GitHub account not authorized"))
		return
	}

	token, err := h.tokens.Generate(ghUser.Login)
	if err != nil {
		h.logger.Error("auth callback: token generation failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	h.logger.Info("operator authenticated via GitHub", slog.String("login", ghUser.Login))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
