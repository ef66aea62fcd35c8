package authz

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_OK(t *testing.T) {
	cases := []struct {
		name  string
		creds Credentials
		req   Request
	}{
		{"minimal", Credentials{User: "alice", Password: "s3cret"}, Request{}},
		{"scoped", Credentials{User: "alice", Password: "s3cret"}, Request{Scopes: []string{"repo", "gist"}}},
		{"duplicate scopes", Credentials{User: "alice", Password: "s3cret"}, Request{Scopes: []string{"repo", "repo"}}},
		{"dotted user", Credentials{User: "alice.b@example.com", Password: "x"}, Request{}},
		{"client pair", Credentials{User: "alice", Password: "x"}, Request{
			ClientID:     "0123456789abcdef0123",
			ClientSecret: "0123456789abcdef0123456789abcdef01234567",
		}},
	}
	for _, c := range cases {
		if err := Validate(c.creds, c.req); err != nil {
			t.Errorf("%s: Validate: %v", c.name, err)
		}
	}
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name  string
		creds Credentials
		req   Request
		want  []string
	}{
		{
			"missing user",
			Credentials{Password: "x"}, Request{},
			[]string{"user is required"},
		},
		{
			"bad user chars",
			Credentials{User: "al ice!", Password: "x"}, Request{},
			[]string{"invalid user: al ice!"},
		},
		{
			"missing password",
			Credentials{User: "alice"}, Request{},
			[]string{"password is required"},
		},
		{
			"every illegal scope reported",
			Credentials{User: "alice", Password: "x"},
			Request{Scopes: []string{"repo", "bogus1", "bogus2"}},
			[]string{"illegal_scope: bogus1", "illegal_scope: bogus2"},
		},
		{
			"bad client_id",
			Credentials{User: "alice", Password: "x"},
			Request{ClientID: "XYZ", ClientSecret: "0123456789abcdef0123456789abcdef01234567"},
			[]string{"invalid client_id: XYZ"},
		},
		{
			"bad client_secret",
			Credentials{User: "alice", Password: "x"},
			Request{ClientID: "0123456789abcdef0123", ClientSecret: "short"},
			[]string{"invalid client_secret"},
		},
		{
			"client_id without secret",
			Credentials{User: "alice", Password: "x"},
			Request{ClientID: "0123456789abcdef0123"},
			[]string{"client_id and client_secret must be given together"},
		},
		{
			"everything at once",
			Credentials{}, Request{Scopes: []string{"nope"}},
			[]string{"user is required", "password is required", "illegal_scope: nope"},
		},
	}

	for _, c := range cases {
		err := Validate(c.creds, c.req)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: error type %T, want *ValidationError", c.name, err)
			continue
		}
		msg := verr.Error()
		if !strings.HasPrefix(msg, "Bad options: ") {
			t.Errorf("%s: message %q lacks aggregate prefix", c.name, msg)
		}
		for _, want := range c.want {
			if !strings.Contains(msg, want) {
				t.Errorf("%s: message %q missing %q", c.name, msg, want)
			}
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	creds := Credentials{User: "al ice", Password: ""}
	req := Request{Scopes: []string{"bogus"}}

	first := Validate(creds, req)
	second := Validate(creds, req)
	if first == nil || second == nil {
		t.Fatal("expected errors from both calls")
	}
	if first.Error() != second.Error() {
		t.Errorf("validation not repeatable: %q vs %q", first.Error(), second.Error())
	}
}
