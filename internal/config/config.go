package config

import (
	"os"
	"strconv"
	"strings"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration for the external identity provider
type AuthConfig struct {
	// Mode selects the token verifier: "oidc" or "hs256"
	Mode      string
	IssuerURL string
	ClientID  string
	// JWTSecret is only used in hs256 mode
	JWTSecret string
}

// Bootstrap configuration applied once at startup
type BootstrapConfig struct {
	AdminEmail string
}

// Config holds all application configuration
type Config struct {
	Server            ServerConfig
	Mongo             MongoConfig
	Auth              AuthConfig
	Bootstrap         BootstrapConfig
	RequestTimeoutSec int
}

// Default configuration values
const (
	DefaultServerPort = "8080"
	DefaultServerHost = ""
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultMongoDB    = "taskhub"
	DefaultAuthMode   = "oidc"
	// Bounded timeout for store and provider calls within a single request
	DefaultRequestTimeoutSec = 15
	// Pagination defaults
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Field length limits shared by validation and storage
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxNameLength        = 100
	MaxEmailLength       = 254
)

// MemoryStoreURI selects the in-memory repositories instead of MongoDB.
const MemoryStoreURI = "memory"

// New returns a new Config with values from the environment
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			Mode:      strings.ToLower(getEnv("AUTH_MODE", DefaultAuthMode)),
			IssuerURL: getEnv("AUTH_ISSUER", ""),
			ClientID:  getEnv("AUTH_CLIENT_ID", ""),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail: getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
		},
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", DefaultRequestTimeoutSec),
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// UseMemoryStore reports whether the in-memory store is selected
func (c *MongoConfig) UseMemoryStore() bool {
	return c.URI == MemoryStoreURI
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
