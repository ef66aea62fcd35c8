package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/RsrchBoy/github-authorization/internal/mockapi/db"
	"github.com/RsrchBoy/github-authorization/internal/scope"
	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const otpHeader = "X-GitHub-OTP"

type createAuthorizationRequest struct {
	Scopes       []string `json:"scopes"`
	Note         string   `json:"note"`
	NoteURL      string   `json:"note_url"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
}

type appResponse struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	ClientID string `json:"client_id,omitempty"`
}

type authorizationResponse struct {
	ID        int64       `json:"id"`
	Token     string      `json:"token"`
	Note      *string     `json:"note"`
	NoteURL   *string     `json:"note_url"`
	Scopes    []string    `json:"scopes"`
	App       appResponse `json:"app"`
	URL       string      `json:"url"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// HandleCreateAuthorization handles POST /authorizations: basic auth against
// the user table, a TOTP check for two-factor accounts, scope validation,
// then a freshly minted token.
func HandleCreateAuthorization(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, password, ok := c.Request.BasicAuth()
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Requires authentication"})
			return
		}

		user, err := store.Authenticate(login, password)
		if err != nil {
			log.Printf("Authenticate(%q) error: %v", login, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
			return
		}

		// Two-factor accounts must present a valid OTP. Both a missing and
		// a wrong code get the challenge header, exactly like the real API.
		if user.TOTPSecret != "" {
			code := c.GetHeader(otpHeader)
			if code == "" || !totp.Validate(code, user.TOTPSecret) {
				c.Header(otpHeader, "required; app")
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Must specify two-factor authentication OTP code.",
				})
				return
			}
		}

		var req createAuthorizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Problems parsing JSON"})
			return
		}

		for _, s := range req.Scopes {
			if !scope.IsLegal(s) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": fmt.Sprintf("Validation Failed: invalid scope %q", s),
				})
				return
			}
		}

		token, err := mintToken()
		if err != nil {
			log.Printf("mintToken error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
			return
		}

		a := &db.Authorization{
			UserLogin:   user.Login,
			Token:       token,
			Note:        req.Note,
			NoteURL:     req.NoteURL,
			Scopes:      req.Scopes,
			AppName:     "GitHub API (mock)",
			AppURL:      "https://developer.github.com/v3/oauth_authorizations/",
			AppClientID: req.ClientID,
		}
		if err := store.CreateAuthorization(a); err != nil {
			log.Printf("CreateAuthorization error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
			return
		}

		c.JSON(http.StatusCreated, toResponse(a, c.Request.Host))
	}
}

func toResponse(a *db.Authorization, host string) authorizationResponse {
	scopes := a.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return authorizationResponse{
		ID:        a.ID,
		Token:     a.Token,
		Note:      nullable(a.Note),
		NoteURL:   nullable(a.NoteURL),
		Scopes:    scopes,
		App:       appResponse{Name: a.AppName, URL: a.AppURL, ClientID: a.AppClientID},
		URL:       fmt.Sprintf("http://%s/authorizations/%d", host, a.ID),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mintToken returns a 40-hex-char token, the historical PAT shape.
func mintToken() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
