package main

import "github.com/ilyakaznacheev/cleanenv"

// Config holds the process configuration, read from environment variables
// with sensible development defaults.
type Config struct {
	Port int    `env:"PORT" env-default:"8080"`
	Env  string `env:"ENV" env-default:"development"`
}

// IsProd reports whether the app runs in production mode. It switches the
// logger to the production encoder; nothing else depends on it.
func (c Config) IsProd() bool {
	return c.Env == "production"
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
