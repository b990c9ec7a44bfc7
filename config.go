package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type Config struct {
	Port      int            `json:"port"`
	Env       string         `json:"env"`
	Pepper    string         `json:"pepper"`
	JWTKey    string         `json:"jwt_key"`
	ClientURL string         `json:"client_url"`
	Database  PostgresConfig `json:"database"`
}

// IsProd reports whether the app runs in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (pc PostgresConfig) Dialect() string {
	return "postgres"
}

func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port:      3000,
		Env:       "dev",
		Pepper:    "secret-random-string",
		JWTKey:    "secret-jwt-key",
		ClientURL: "http://localhost:8080",
		Database:  DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Name:     "fritter",
	}
}

// LoadConfig reads .config.json from the working directory. Without the file, it falls back
// to DefaultConfig, unless required is set, which is the case in production.
func LoadConfig(required bool) (Config, error) {
	f, err := os.Open(".config.json")
	if err != nil {
		if required {
			return Config{}, fmt.Errorf("a .config.json file is required in production: %w", err)
		}
		zap.L().Info("using the default config")
		return DefaultConfig(), nil
	}
	defer f.Close()
	c := DefaultConfig()
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decoding .config.json: %w", err)
	}
	zap.L().Info("loaded .config.json")
	return c, nil
}
