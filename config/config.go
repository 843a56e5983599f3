package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName        string `json:"appname"`
	AppVersion     string `json:"appversion"`
	AppDescription string `json:"appdescription"`
	AppEnv         string `json:"appenv"`
	AppPort        uint16 `json:"appport"`
	GinMode        string `json:"ginmode"`
	StoreDriver    string `json:"storedriver"`
	StoreFile      string `json:"storefile"`
	StoreRetry     int    `json:"storeretry"`
	DBHost         string `json:"dbhost"`
	DBPort         uint16 `json:"dbport"`
	DBName         string `json:"dbname"`
	DBUser         string `json:"dbuser"`
	DBPass         string `json:"dbpass"`
}

var config *Config
var once sync.Once

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is not an error; configuration then comes from the process environment alone.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(envOrDefault("APPPORT", "8000"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)
		storeRetry, err := strconv.Atoi(envOrDefault("STORE_RETRY", "2"))
		if err != nil || storeRetry < 0 {
			storeRetry = 2
		}

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName:        envOrDefault("APPNAME", "Patient Data API"),
			AppVersion:     envOrDefault("APPVERSION", "1.0.0"),
			AppDescription: envOrDefault("APPDESCRIPTION", "API to handle patient data."),
			AppEnv:         os.Getenv("APPENV"),
			AppPort:        uint16(appPort),
			GinMode:        envOrDefault("GINMODE", "release"),
			StoreDriver:    envOrDefault("STORE_DRIVER", "file"),
			StoreFile:      envOrDefault("STORE_FILE", "data/patient_details.json"),
			StoreRetry:     storeRetry,
			DBHost:         os.Getenv("DBHOST"),
			DBPort:         uint16(dbPort),
			DBName:         os.Getenv("DBNAME"),
			DBUser:         os.Getenv("DBUSER"),
			DBPass:         os.Getenv("DBPASS"),
		}
	})
	return config
}

// ResetConfigForTesting clears the singleton so tests can reload with different env values.
// This should only be used in tests.
func ResetConfigForTesting() {
	config = nil
	once = sync.Once{}
}
