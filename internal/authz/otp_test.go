package authz

import (
	"testing"

	"github.com/pquerna/otp/totp"
)

func TestFixedPrompt(t *testing.T) {
	prompt := FixedPrompt("424242")
	code, err := prompt(OTPChallenge{Type: "app"})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if code != "424242" {
		t.Errorf("code = %q, want 424242", code)
	}
}

func TestTOTPPrompt(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: "alice"})
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	prompt := TOTPPrompt(key.Secret())
	code, err := prompt(OTPChallenge{Type: "app"})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !totp.Validate(code, key.Secret()) {
		t.Errorf("derived code %q does not validate against its own secret", code)
	}
}

func TestTOTPPrompt_BadSecret(t *testing.T) {
	prompt := TOTPPrompt("not!base32%")
	if _, err := prompt(OTPChallenge{}); err == nil {
		t.Error("expected error for malformed secret")
	}
}
