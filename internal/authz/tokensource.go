package authz

import "golang.org/x/oauth2"

// TokenSource adapts the issued authorization into an oauth2.TokenSource so
// it can be handed straight to oauth2.NewClient or any GitHub API binding.
// Personal access tokens do not expire, so the source is static.
func (a *Authorization) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: a.Token,
		TokenType:   "token",
	})
}
