package config

import (
	"time"

	"github.com/spf13/viper"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// SessionMode selects which session artifact the deployment issues and
// validates. Exactly one mode is active per deployment.
type SessionMode string

const (
	SessionModeCookie SessionMode = "cookie" // signed cookie session (default)
	SessionModeToken  SessionMode = "token"  // bearer token in Authorization header
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Google
		Frontend
	}

	HTTP struct {
		Port     int32
		Host     string
		BasePath string
	}
	Global struct {
		Env                      Environment
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		SessionMode     SessionMode
		SessionLifetime time.Duration
		TokenSecret     string
		TokenExpiry     time.Duration
		BcryptCost      int
	}
	Google struct {
		ClientID     string
		ClientSecret string
		CallbackURL  string
	}
	Frontend struct {
		Origin            string // e.g. https://app.example.com
		GoogleCallbackURL string // where the SPA lands after a failed federated login
	}
)

// IsProduction reports whether the process runs with the production
// security policy (Secure cookies, SameSite=None for the cross-origin SPA).
func (g Global) IsProduction() bool {
	return g.Env == EnvProduction
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("base_path", "/api")
	v.SetDefault("env", "development")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("session_mode", "cookie")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("token_secret", "")
	v.SetDefault("token_expiry", "24h")
	v.SetDefault("bcrypt_cost", 12)

	// Frontend defaults (local SPA dev server)
	v.SetDefault("frontend_origin", "http://localhost:3000")
	v.SetDefault("frontend_google_callback_url", "http://localhost:3000/google/oauth/callback")

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			BasePath: v.GetString("BASE_PATH"),
		},
		Global: Global{
			Env:                      Environment(v.GetString("ENV")),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SessionMode:     SessionMode(v.GetString("SESSION_MODE")),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
			TokenSecret:     v.GetString("TOKEN_SECRET"),
			TokenExpiry:     v.GetDuration("TOKEN_EXPIRY"),
			BcryptCost:      v.GetInt("BCRYPT_COST"),
		},
		Google: Google{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  v.GetString("GOOGLE_CALLBACK_URL"),
		},
		Frontend: Frontend{
			Origin:            v.GetString("FRONTEND_ORIGIN"),
			GoogleCallbackURL: v.GetString("FRONTEND_GOOGLE_CALLBACK_URL"),
		},
	}
}
