// Package config loads runtime configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/aeterist/aeterist/internal/model"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultDataPath = "aeterist.db"
	DefaultTheme    = "theme-void"

	defaultOwnerUsername = "lynni"
	defaultOwnerPassword = "Slay0789"
	defaultOwnerBio      = "Site Owner."
)

// Config holds everything the store and CLI need at startup.
type Config struct {
	// DataPath is the SQLite database path.
	DataPath string

	// Bootstrap owner account, used when the users collection is absent
	// or malformed. The owner is the only account that exists on a fresh
	// store.
	OwnerUsername string
	OwnerPassword string
	OwnerBio      string

	// DefaultTheme is used when no theme has been persisted.
	DefaultTheme string
}

// Load reads configuration from a .env file (path taken from ENV_FILE,
// default ".env") and the process environment. A missing .env file is
// not an error - the environment alone is enough.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Ignore a missing file; godotenv never overrides existing env vars.
	_ = godotenv.Load(envFile)

	return Config{
		DataPath:      getEnv("AETERIST_DATA", DefaultDataPath),
		OwnerUsername: getEnv("AETERIST_OWNER_USER", defaultOwnerUsername),
		OwnerPassword: getEnv("AETERIST_OWNER_PASS", defaultOwnerPassword),
		OwnerBio:      getEnv("AETERIST_OWNER_BIO", defaultOwnerBio),
		DefaultTheme:  getEnv("AETERIST_THEME", DefaultTheme),
	}
}

// BootstrapOwner builds the fallback owner account used when the users
// collection cannot be hydrated.
func (c Config) BootstrapOwner() model.User {
	return model.User{
		ID:             "u_root",
		Username:       model.NormalizeUsername(c.OwnerUsername),
		Password:       c.OwnerPassword,
		Bio:            c.OwnerBio,
		Role:           model.RoleOwner,
		Friends:        []string{},
		FriendRequests: []string{},
	}
}

// getEnv returns the env value for key, or fallback when unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
