package mockapi

import (
	"fmt"
	"os"
)

// Config holds mock API configuration loaded from environment variables.
type Config struct {
	AdminToken string
	DBPath     string
	ListenAddr string
}

// LoadConfig loads mock API configuration from environment variables.
func LoadConfig() (*Config, error) {
	adminToken := os.Getenv("GH_MOCK_ADMIN_TOKEN")
	if adminToken == "" {
		return nil, fmt.Errorf("GH_MOCK_ADMIN_TOKEN is required")
	}
	if len(adminToken) < 16 {
		return nil, fmt.Errorf("GH_MOCK_ADMIN_TOKEN must be at least 16 characters")
	}

	dbPath := os.Getenv("GH_MOCK_DB_PATH")
	if dbPath == "" {
		dbPath = "gh-mock.db"
	}

	listenAddr := os.Getenv("GH_MOCK_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	return &Config{
		AdminToken: adminToken,
		DBPath:     dbPath,
		ListenAddr: listenAddr,
	}, nil
}
