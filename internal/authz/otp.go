package authz

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
	"golang.org/x/term"
)

// OTPChallenge is the server's demand for a one-time password, produced and
// consumed within a single Issue call.
type OTPChallenge struct {
	// Type is the delivery mechanism announced by the server ("app",
	// "sms"), empty if the header carried none.
	Type string

	// Header is the raw X-GitHub-OTP header value.
	Header string
}

// OTPPrompt supplies a one-time password when the server challenges the
// exchange. Returning "" (or an error) aborts the call with
// *OTPAcquisitionError; no second request is sent.
type OTPPrompt func(challenge OTPChallenge) (string, error)

// TerminalPrompt asks the invoking user for the code on the controlling
// terminal. It is the default prompt, and fails immediately when stdin is
// not a terminal so that non-interactive callers get a clean
// OTPAcquisitionError instead of a hang.
func TerminalPrompt(challenge OTPChallenge) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	if challenge.Type != "" {
		fmt.Fprintf(os.Stderr, "Two-factor code (%s): ", challenge.Type)
	} else {
		fmt.Fprint(os.Stderr, "Two-factor code: ")
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// FixedPrompt answers every challenge with the given code. Used when the
// caller already has a code in hand (e.g. a --otp flag).
func FixedPrompt(code string) OTPPrompt {
	return func(OTPChallenge) (string, error) {
		return code, nil
	}
}

// TOTPPrompt derives codes from a TOTP shared secret, for non-interactive
// issuance on accounts enrolled in app-based two-factor auth.
func TOTPPrompt(secret string) OTPPrompt {
	return func(OTPChallenge) (string, error) {
		code, err := totp.GenerateCode(secret, time.Now())
		if err != nil {
			return "", fmt.Errorf("generate totp code: %w", err)
		}
		return code, nil
	}
}
