package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string `env:"PORT,             default=8080"`
	Env            string `env:"ENV,              default=development"`
	LogLevel       string `env:"LOG_LEVEL,        default=info"`
	JWTSecret      string `env:"SECRET_KEY,       default=geb-secret-key-change-in-production"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS, default=8"`
	FrontendURL    string `env:"FRONTEND_URL,     default=http://localhost:3000"`
	MaxUsers       int    `env:"MAX_USERS,        default=6"`

	WhatsApp WhatsAppConfig
	Admin    AdminConfig
}

type WhatsAppConfig struct {
	// PhoneID and Token may both be empty: the gateway client then runs in
	// demo mode and simulates every send.
	PhoneID     string `env:"WHATSAPP_PHONE_ID"`
	Token       string `env:"WHATSAPP_TOKEN"`
	VerifyToken string `env:"WHATSAPP_VERIFY_TOKEN, default=geb_verify_token"`
	APIVersion  string `env:"META_API_VERSION,      default=v18.0"`
}

// AdminConfig seeds the initial admin account at startup.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
	Name     string `env:"ADMIN_NAME,     default=GEB Admin"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@geb.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
