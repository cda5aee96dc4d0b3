package secondaryfunctions

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the certificate engine and its collaborators read
// from the environment.
type Config struct {
	SiteURL     string // public base URL for verification links; may be empty
	TemplateDir string
	FontDir     string
	OutputDir   string

	DBUsername string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
}

// LoadConfig reads .env (when present) and the process environment. Missing
// optional values fall back to the repository's conventional paths.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		SiteURL:     os.Getenv("SITE_URL"),
		TemplateDir: getenvDefault("TEMPLATE_DIR", "static/templates"),
		FontDir:     getenvDefault("FONT_DIR", "static/fonts"),
		OutputDir:   getenvDefault("OUTPUT_DIR", "generated_files"),

		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenvDefault("DB_HOST", "127.0.0.1"),
		DBPort:     getenvDefault("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
	}
}

// HasDatabase reports whether enough settings are present to open the
// registration store.
func (c *Config) HasDatabase() bool {
	return c.DBUsername != "" && c.DBName != ""
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
