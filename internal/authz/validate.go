package authz

import (
	"fmt"
	"regexp"

	"github.com/RsrchBoy/github-authorization/internal/scope"
)

// Credentials is the basic-auth identity used for one exchange. It is never
// persisted; the library holds it only for the duration of Issue.
type Credentials struct {
	User     string
	Password string
}

// Request describes the authorization to create. Scopes may be empty (the
// resulting token grants public read-only access). ClientID and ClientSecret
// identify an OAuth application and must be supplied together or not at all.
type Request struct {
	Scopes       []string `json:"scopes"`
	Note         string   `json:"note,omitempty"`
	NoteURL      string   `json:"note_url,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
}

var (
	userPattern         = regexp.MustCompile(`^[A-Za-z0-9.@]+$`)
	clientIDPattern     = regexp.MustCompile(`^[a-f0-9]{20}$`)
	clientSecretPattern = regexp.MustCompile(`^[a-f0-9]{40}$`)
)

// Validate checks creds and req against every precondition and returns a
// *ValidationError listing ALL violations, not just the first. The check is
// pure: identical input always yields the identical result.
//
// Checks run in a fixed order (user, password, scopes in caller order,
// client_id, client_secret, id/secret pairing) so the aggregated message is
// deterministic.
func Validate(creds Credentials, req Request) error {
	var violations []string

	if creds.User == "" {
		violations = append(violations, "user is required")
	} else if !userPattern.MatchString(creds.User) {
		violations = append(violations, fmt.Sprintf("invalid user: %s", creds.User))
	}

	if creds.Password == "" {
		violations = append(violations, "password is required")
	}

	for _, s := range req.Scopes {
		if !scope.IsLegal(s) {
			violations = append(violations, fmt.Sprintf("illegal_scope: %s", s))
		}
	}

	if req.ClientID != "" && !clientIDPattern.MatchString(req.ClientID) {
		violations = append(violations, fmt.Sprintf("invalid client_id: %s", req.ClientID))
	}
	if req.ClientSecret != "" && !clientSecretPattern.MatchString(req.ClientSecret) {
		violations = append(violations, "invalid client_secret")
	}
	if (req.ClientID == "") != (req.ClientSecret == "") {
		violations = append(violations, "client_id and client_secret must be given together")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
