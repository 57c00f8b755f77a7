package api

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/research-lab-backend/config"
	"github.com/rpupo63/research-lab-backend/errs"
	"github.com/rpupo63/research-lab-backend/models"
)

const tokenIssuer = "research-lab-backend"

// AuthSettings holds the single admin account and the token signing key.
type AuthSettings struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

func AuthSettingsFromConfig(c map[string]string) AuthSettings {
	return AuthSettings{
		Username:     config.GetString(c, "ADMIN_USERNAME", ""),
		PasswordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		Secret:       []byte(config.GetString(c, "JWT_SECRET", "")),
		TTL:          time.Duration(config.GetInt(c, "JWT_TTL_MINUTES", 720)) * time.Minute,
	}
}

// Enabled reports whether mutation routes are gated by a token.
func (s AuthSettings) Enabled() bool {
	return len(s.Secret) > 0
}

func (s AuthSettings) canLogin() bool {
	return s.Enabled() && s.Username != "" && s.PasswordHash != ""
}

// LoginRequest is the admin credential pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for mutation routes.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt models.Timestamp `json:"expiresAt"`
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	settings  AuthSettings
	now       func() time.Time
}

func newAuthHandler(settings AuthSettings) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		settings:  settings,
		now:       time.Now,
	}
}

// login exchanges the admin credentials for a token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Auth not configured"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.settings.canLogin() {
			h.responder.WriteError(w, errs.NewServiceNotConfiguredError("auth"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}
		var credentials LoginRequest
		if err := json.NewDecoder(bytes.NewReader(body)).Decode(&credentials); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		usernameOK := subtle.ConstantTimeCompare([]byte(credentials.Username), []byte(h.settings.Username)) == 1
		passwordErr := bcrypt.CompareHashAndPassword([]byte(h.settings.PasswordHash), []byte(credentials.Password))
		if !usernameOK || passwordErr != nil {
			h.logger.Warn().Str("username", credentials.Username).Msg("rejected login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		now := h.now()
		expiresAt := now.Add(h.settings.TTL)
		token, err := issueToken(h.settings, credentials.Username, now, expiresAt)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not issue token", err))
			return
		}

		h.logger.Info().Str("username", credentials.Username).Msg("admin logged in")
		h.responder.WriteJSON(w, http.StatusOK, LoginResponse{
			Token:     token,
			ExpiresAt: models.Timestamp(expiresAt.UTC()),
		})
	}
}

func issueToken(settings AuthSettings, subject string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(settings.Secret)
}

type authMiddleware struct {
	responder Responder
	settings  AuthSettings
}

func newAuthMiddleware(settings AuthSettings) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		settings:  settings,
	}
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
			return m.settings.Secret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			m.responder.WriteError(w, errs.NewInvalidTokenError(err))
			return
		}
		if claims.Subject == "" {
			m.responder.WriteError(w, errs.NewInvalidTokenError(fmt.Errorf("token has no subject")))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithAdmin(r.Context(), claims.Subject)))
	})
}
