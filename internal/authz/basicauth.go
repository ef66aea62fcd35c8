package authz

import "encoding/base64"

// BasicAuth returns the value for an Authorization header carrying the given
// credentials: "Basic " + base64(user:password), standard encoding, no
// line wrapping.
func BasicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
