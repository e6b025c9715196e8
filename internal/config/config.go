package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	// Identity describes the external identity provider whose tokens this
	// backend accepts. We never issue end-user tokens ourselves.
	Identity struct {
		TokenSecret string `yaml:"token_secret"`
		Issuer      string `yaml:"issuer"`
	} `yaml:"identity"`

	// FirstAdmin seeds the initial admin account at startup. Identity is
	// external, so the seed is keyed by the provider subject, not a password.
	FirstAdmin struct {
		ExternalID  string `yaml:"external_id"`
		Email       string `yaml:"email"`
		DisplayName string `yaml:"display_name"`
	} `yaml:"first_admin"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// everything comes from the environment (the test path).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Identity.TokenSecret = os.Getenv("IDENTITY_TOKEN_SECRET")
	cfg.Identity.Issuer = os.Getenv("IDENTITY_ISSUER")
	cfg.FirstAdmin.ExternalID = os.Getenv("FIRST_ADMIN_EXTERNAL_ID")
	cfg.FirstAdmin.Email = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdmin.DisplayName = os.Getenv("FIRST_ADMIN_NAME")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Identity.TokenSecret == "" {
		cfg.Identity.TokenSecret = "test-identity-secret"
	}

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
