package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

// New loads ./configs/.env once. A missing file is fine: deployments can
// provide plain environment variables instead.
func New() *Config {
	once.Do(func() {
		if err := godotenv.Load("./configs/.env"); err != nil {
			log.Println("no env file loaded: " + err.Error())
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
