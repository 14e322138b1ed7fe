package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the service.
// Values are read from config/env/<GO_ENV>.env and the process environment.
type Configuration struct {
	InitMode bool   `env:"INITMODE" envDefault:"false"` // Seed default data on startup
	Address  string `env:"ADDRESS" envDefault:"8080"`   // Server port

	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // Database connection URI
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Database name

	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins, comma separated (* = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentials

	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Max requests per window (0 = disabled)
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Window length in seconds
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Toggle rate limiting

	// Firebase (actor identity verification)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseAdminUID        string `env:"FIREBASE_ADMIN_UID"` // Firebase UID granted the admin role during init

	// Notification endpoints (cloud functions invoked by the delivery processor)
	OrderConfirmationURL string `env:"ORDER_CONFIRMATION_URL"` // Order confirmation email trigger
	StatusUpdateURL      string `env:"STATUS_UPDATE_URL"`      // Status update email trigger

	// Ambassador trigger alerts (critical contacts emailed to the sales team)
	AmbassadorAlertEmail string `env:"AMBASSADOR_ALERT_EMAIL"`

	// SMTP (email delivery channel)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"info@b8shield.se"`

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// getEnvPath returns the .env file path for the current GO_ENV.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt.Printf because the logger may not be initialized yet
		fmt.Printf("Could not determine working directory: %v\n", err)
		return ""
	}

	// Walk up until a config/env directory is found
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig reads configuration from the env file for the active environment.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("config/env directory not found\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("Could not load env file %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Error parsing config: %+v\n", err)
		return nil
	}

	return &cfg
}
