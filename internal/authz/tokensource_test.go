package authz

import "testing"

func TestTokenSource(t *testing.T) {
	a := &Authorization{Token: "abc123"}
	tok, err := a.TokenSource().Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != "abc123" {
		t.Errorf("AccessToken = %q, want abc123", tok.AccessToken)
	}
	if tok.TokenType != "token" {
		t.Errorf("TokenType = %q, want token", tok.TokenType)
	}
}
