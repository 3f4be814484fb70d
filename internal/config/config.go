package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3000
	defaultEnv        = "development"
	defaultMongoHost  = "127.0.0.1"
	defaultMongoPort  = 27017
	defaultMongoName  = "social_dashboard"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	Mongo          MongoRuntimeConfig `yaml:"mongo"`
	Redis          RedisRuntimeConfig `yaml:"redis"`
	MongoURI       string             `yaml:"mongo_uri"`
	RedisURL       string             `yaml:"redis_url"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	JWTSecret      string             `yaml:"jwt_secret"`
	Timezone       string             `yaml:"timezone"`
}

type MongoRuntimeConfig struct {
	URI      string `yaml:"uri"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// rawAppConfig accepts legacy env-style key aliases alongside the
// canonical keys.
type rawAppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"`
	NodeEnv        string         `yaml:"node_env"`
	Mongo          rawMongoConfig `yaml:"mongo"`
	MongoURI       string         `yaml:"mongo_uri"`
	MongoDBURI     string         `yaml:"mongodb_uri"`
	DatabaseURL    string         `yaml:"database_url"`
	DBName         string         `yaml:"db_name"`
	Redis          rawRedisConfig `yaml:"redis"`
	RedisURL       string         `yaml:"redis_url"`
	RedisHost      string         `yaml:"redis_host"`
	RedisPort      int            `yaml:"redis_port"`
	RedisPassword  string         `yaml:"redis_password"`
	RedisDB        *int           `yaml:"redis_db"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	CORSOrigins    []string       `yaml:"cors_allowed_origins"`
	JWTSecret      string         `yaml:"jwt_secret"`
	NextAuthSecret string         `yaml:"nextauth_secret"`
	Timezone       string         `yaml:"timezone"`
	TZ             string         `yaml:"tz"`
}

type rawMongoConfig struct {
	URI      string `yaml:"uri"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	DBName   string `yaml:"db_name"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
}

func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	return Parse(content, path)
}

// Parse decodes YAML content into a validated AppConfig.
func Parse(content []byte, path string) (*AppConfig, error) {
	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	applyRawAppConfig(&cfg, raw)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Mongo.Port < 1 || cfg.Mongo.Port > 65535 {
		return nil, fmt.Errorf("invalid mongo.port %d in %q, expected 1-65535", cfg.Mongo.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Redis.DB < 0 {
		return nil, fmt.Errorf("invalid redis.db %d in %q, expected >= 0", cfg.Redis.DB, path)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Mongo: MongoRuntimeConfig{
			Host: defaultMongoHost,
			Port: defaultMongoPort,
			Name: defaultMongoName,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
	}
	cfg.MongoURI = cfg.Mongo.URIValue()
	cfg.RedisURL = cfg.Redis.URLValue()
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}

	mongo := cfg.Mongo
	for _, uri := range []string{raw.Mongo.URI, raw.Mongo.URL, raw.MongoURI, raw.MongoDBURI, raw.DatabaseURL} {
		if v := strings.TrimSpace(uri); v != "" {
			mongo.URI = v
		}
	}
	if v := strings.TrimSpace(raw.Mongo.Host); v != "" {
		mongo.Host = v
	}
	if raw.Mongo.Port != 0 {
		mongo.Port = raw.Mongo.Port
	}
	if v := strings.TrimSpace(raw.Mongo.Username); v != "" {
		mongo.Username = v
	}
	if v := strings.TrimSpace(raw.Mongo.Password); v != "" {
		mongo.Password = v
	}
	if v := strings.TrimSpace(raw.Mongo.Name); v != "" {
		mongo.Name = v
	}
	if v := strings.TrimSpace(raw.Mongo.DBName); v != "" {
		mongo.Name = v
	}
	if v := strings.TrimSpace(raw.DBName); v != "" {
		mongo.Name = v
	}
	cfg.Mongo = mongo

	redis := cfg.Redis
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		redis.URL = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		redis.URL = v
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		redis.Host = v
	}
	if v := strings.TrimSpace(raw.RedisHost); v != "" {
		redis.Host = v
	}
	if raw.Redis.Port != 0 {
		redis.Port = raw.Redis.Port
	}
	if raw.RedisPort != 0 {
		redis.Port = raw.RedisPort
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		redis.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		redis.Password = v
	}
	if v := strings.TrimSpace(raw.RedisPassword); v != "" {
		redis.Password = v
	}
	if raw.Redis.DB != nil {
		redis.DB = *raw.Redis.DB
	}
	if raw.RedisDB != nil {
		redis.DB = *raw.RedisDB
	}
	if raw.Redis.TLS != nil {
		redis.TLS = *raw.Redis.TLS
	}
	cfg.Redis = redis

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSOrigins)
	}

	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.NextAuthSecret); v != "" && cfg.JWTSecret == "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.TZ); v != "" {
		cfg.Timezone = v
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.MongoURI = cfg.Mongo.URIValue()
	cfg.RedisURL = cfg.Redis.URLValue()
}

// URIValue resolves the effective MongoDB connection string.
func (c MongoRuntimeConfig) URIValue() string {
	if v := strings.TrimSpace(c.URI); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultMongoHost
	}
	port := c.Port
	if port == 0 {
		port = defaultMongoPort
	}

	u := &neturl.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	}
	return u.String()
}

// DatabaseName resolves the effective database name.
func (c MongoRuntimeConfig) DatabaseName() string {
	if v := strings.TrimSpace(c.Name); v != "" {
		return v
	}
	return defaultMongoName
}

// URLValue resolves the effective Redis connection string.
func (c RedisRuntimeConfig) URLValue() string {
	if u := normalizeRedisRawURL(c.URL); u != "" {
		return u
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	} else if password != "" {
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
