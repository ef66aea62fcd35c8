package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/RsrchBoy/github-authorization/internal/logx"
	"github.com/RsrchBoy/github-authorization/internal/mockapi"
	"github.com/RsrchBoy/github-authorization/internal/mockapi/db"
	"github.com/RsrchBoy/github-authorization/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	verbose := flag.Bool("verbose", false, "Enable verbose debug logs (same as --log-level debug)")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error (or GH_AUTHZ_LOG_LEVEL)")
	flag.BoolVar(showVersion, "v", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.String("gh-mock-api"))
		fmt.Fprintf(os.Stderr, "gh-mock-api serves a fake GitHub authorizations API for tests and local development.\n\n")
		fmt.Fprintf(os.Stderr, "Environment variables:\n")
		fmt.Fprintf(os.Stderr, "  GH_MOCK_ADMIN_TOKEN  Admin Bearer token for the seeding APIs (min 16 chars, required)\n")
		fmt.Fprintf(os.Stderr, "  GH_MOCK_DB_PATH      SQLite database path (default: gh-mock.db)\n")
		fmt.Fprintf(os.Stderr, "  GH_MOCK_LISTEN_ADDR  Listen address (default: :8080)\n")
		fmt.Fprintf(os.Stderr, "  GH_AUTHZ_LOG_LEVEL   Log level: debug|info|warn|error (default: info)\n")
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("gh-mock-api"))
		os.Exit(0)
	}

	if err := logx.Configure(*logLevel, *verbose); err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	cfg, err := mockapi.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := db.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer store.Close()

	r := mockapi.NewRouter(store, cfg)

	log.Printf("gh-mock-api listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
