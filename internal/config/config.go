package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB     DBConfig
	Server ServerConfig
	Seeder SeederConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// MigrationsPath is the directory holding the postgres/ and sqlite/ migration sets
	MigrationsPath string
}

// SeederConfig holds settings for the CSV import
type SeederConfig struct {
	DataDir       string
	ComposersFile string
	CitiesFile    string
	UsersFile     string
	BatchSize     int
	BcryptCost    int
	// Enabled allows the /seed endpoint to run the import
	Enabled bool
	// OnStart seeds an empty database when the app boots
	OnStart bool
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database, foreign keys enforced on every pooled connection
		if c.Name != "" && c.Name != "composers" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", c.Name)
		}
		return "file::memory:?cache=shared&_fk=1"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:           dbType,
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "composers"),
			Password:       getEnv("DB_PASSWORD", "composers_password"),
			Name:           getEnv("DB_NAME", "composers"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Seeder: SeederConfig{
			DataDir:       getEnv("SEEDER_DATA_DIR", "data"),
			ComposersFile: getEnv("SEEDER_COMPOSERS_FILE", "Baroque_Composers_EN.csv"),
			CitiesFile:    getEnv("SEEDER_CITIES_FILE", "Cities_Coords.csv"),
			UsersFile:     getEnv("SEEDER_USERS_FILE", "users.csv"),
			BatchSize:     getEnvAsInt("SEEDER_BATCH_SIZE", 500),
			BcryptCost:    getEnvAsInt("SEEDER_BCRYPT_COST", 10),
			Enabled:       getEnvAsBool("SEED_ENABLED", false),
			OnStart:       getEnvAsBool("SEED_ON_START", true),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
