package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads a .env file from path (when present) and primes viper
// so environment variables are visible to the flag layer.
func LoadConfig(path string) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err == nil {
		logrus.Debug("[CONFIG] .env file loaded")
	}

	viper.AddConfigPath(path)
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// CreateFolder makes sure every given directory exists.
func CreateFolder(folders ...string) error {
	for _, folder := range folders {
		if err := os.MkdirAll(folder, 0755); err != nil {
			return err
		}
	}
	return nil
}
