package authz

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBasicAuth_RoundTrip(t *testing.T) {
	got := BasicAuth("alice", "secret")
	if !strings.HasPrefix(got, "Basic ") {
		t.Fatalf("header %q lacks Basic prefix", got)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, "Basic "))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "alice:secret" {
		t.Errorf("decoded = %q, want %q", decoded, "alice:secret")
	}
}

func TestBasicAuth_Deterministic(t *testing.T) {
	if BasicAuth("alice", "secret") != BasicAuth("alice", "secret") {
		t.Error("BasicAuth not deterministic")
	}
}
