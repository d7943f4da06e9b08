// Package config loads the process configuration once at start. The resulting
// Config is passed explicitly into every manager constructor; nothing reads
// the environment after Load returns.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	Places   PlacesConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	TTLMinutes int
}

type MailConfig struct {
	Domain string
	APIKey string
	Sender string
}

type PlacesConfig struct {
	APIKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// DSN returns the pgx connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// TTL returns the bearer-token lifetime.
func (j *JWTConfig) TTL() time.Duration {
	return time.Duration(j.TTLMinutes) * time.Minute
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads the configuration from the environment. Values are read once;
// there is no hot reload.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	// 8 days
	v.SetDefault("jwt.ttl.minutes", 60*24*8)
	v.SetDefault("mail.sender", "Voyago <noreply@voyago.app>")
	v.SetDefault("cors.allowed.origins", "http://localhost:5173")

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetInt("server.port"),
			Environment: v.GetString("server.environment"),
			LogLevel:    v.GetString("log.level"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.pass"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			TTLMinutes: v.GetInt("jwt.ttl.minutes"),
		},
		Mail: MailConfig{
			Domain: v.GetString("mailgun.domain"),
			APIKey: v.GetString("mailgun.api.key"),
			Sender: v.GetString("mail.sender"),
		},
		Places: PlacesConfig{
			APIKey: v.GetString("google.places.api.key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(v.GetString("cors.allowed.origins"), ","),
		},
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("database environment variables not set")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	return cfg, nil
}
