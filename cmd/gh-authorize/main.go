package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/RsrchBoy/github-authorization/internal/authz"
	"github.com/RsrchBoy/github-authorization/internal/logx"
	"github.com/RsrchBoy/github-authorization/internal/scope"
	"github.com/RsrchBoy/github-authorization/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// resolveAPIURL returns the API URL from the flag or GH_AUTHZ_API_URL env var.
// Prints a warning to stderr when falling back to the env var.
func resolveAPIURL(cmd *cobra.Command, flagValue string) string {
	normalize := func(v string) string {
		return strings.TrimRight(v, "/")
	}
	if cmd.Flags().Changed("api-url") {
		return normalize(flagValue)
	}
	if v := os.Getenv("GH_AUTHZ_API_URL"); v != "" {
		fmt.Fprintf(os.Stderr, "gh-authorize: WARNING: using API URL from GH_AUTHZ_API_URL environment variable\n")
		return normalize(v)
	}
	return authz.DefaultAPIURL
}

func main() {
	var (
		verbose  bool
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:     "gh-authorize",
		Short:   "Issue GitHub personal access tokens without the browser OAuth dance",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logx.Configure(logLevel, verbose)
		},
	}
	rootCmd.SetVersionTemplate(version.String("gh-authorize") + "\n")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose debug logs (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (or GH_AUTHZ_LOG_LEVEL)")

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newScopesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCreateCmd() *cobra.Command {
	var (
		user         string
		scopes       []string
		note         string
		noteURL      string
		clientID     string
		clientSecret string
		otp          string
		totpSecret   string
		apiURL       string
		insecure     bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an authorization and print the new token",
		Long: `Exchange username/password for a personal access token via
POST /authorizations. The password is read from GH_AUTHZ_PASSWORD or prompted
without echo. If the account uses two-factor auth the one-time code is taken
from --otp, derived from --totp-secret, or prompted interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := resolveAPIURL(cmd, apiURL)
			return createAuthorization(createOptions{
				user:         user,
				scopes:       scopes,
				note:         note,
				noteURL:      noteURL,
				clientID:     clientID,
				clientSecret: clientSecret,
				otp:          otp,
				totpSecret:   totpSecret,
				apiURL:       resolved,
				insecure:     insecure,
				asJSON:       asJSON,
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "GitHub login name (required)")
	cmd.Flags().StringArrayVarP(&scopes, "scope", "s", nil, "Scope to grant (repeatable; none means public read-only)")
	cmd.Flags().StringVar(&note, "note", "", "Note attached to the authorization")
	cmd.Flags().StringVar(&noteURL, "note-url", "", "URL attached to the authorization")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth app client id (20 hex chars)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth app client secret (40 hex chars)")
	cmd.Flags().StringVar(&otp, "otp", "", "Two-factor one-time code, if already known")
	cmd.Flags().StringVar(&totpSecret, "totp-secret", "", "TOTP shared secret to derive two-factor codes from")
	cmd.Flags().StringVar(&apiURL, "api-url", authz.DefaultAPIURL, "API base URL (or set GH_AUTHZ_API_URL)")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "Allow plaintext HTTP connection to the API")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full authorization record as JSON")
	cmd.MarkFlagRequired("user")

	return cmd
}

type createOptions struct {
	user         string
	scopes       []string
	note         string
	noteURL      string
	clientID     string
	clientSecret string
	otp          string
	totpSecret   string
	apiURL       string
	insecure     bool
	asJSON       bool
}

func createAuthorization(opts createOptions) error {
	password, err := resolvePassword()
	if err != nil {
		return err
	}

	// Debug logs go through a redacting writer so neither the password nor
	// the OTP can end up in a terminal scrollback or CI log.
	masked := authz.NewRedactingWriter(os.Stderr, password, opts.clientSecret, opts.otp, opts.totpSecret)
	logx.SetOutput(masked)
	defer masked.Flush()

	client := &authz.Client{
		APIURL:        opts.apiURL,
		AllowInsecure: opts.insecure,
	}
	switch {
	case opts.otp != "":
		client.OTPPrompt = authz.FixedPrompt(opts.otp)
	case opts.totpSecret != "":
		client.OTPPrompt = authz.TOTPPrompt(opts.totpSecret)
	}

	auth, err := client.Issue(context.Background(),
		authz.Credentials{User: opts.user, Password: password},
		authz.Request{
			Scopes:       opts.scopes,
			Note:         opts.note,
			NoteURL:      opts.noteURL,
			ClientID:     opts.clientID,
			ClientSecret: opts.clientSecret,
		})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(auth)
	}

	fmt.Println(auth.Token)
	return nil
}

// resolvePassword reads the password from GH_AUTHZ_PASSWORD, falling back to
// a no-echo terminal prompt.
func resolvePassword() (string, error) {
	if v := os.Getenv("GH_AUTHZ_PASSWORD"); v != "" {
		return v, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("password required: set GH_AUTHZ_PASSWORD or run interactively")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newScopesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the scope names an authorization may request",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scope.Legal() {
				fmt.Println(name)
			}
		},
	}
}
