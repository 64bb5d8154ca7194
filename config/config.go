package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"

	ImageDisk = "disk"
	ImageS3   = "s3"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	Port        string `default:"8080"`
	AutoMigrate bool   `split_words:"true"`

	Store    StoreConfig
	Menu     MenuConfig
	DB       DBConfig
	Image    ImageConfig
	S3       S3Config
	Session  SessionConfig
	Admin    AdminConfig
	Telegram TelegramConfig
}

type StoreConfig struct {
	Backend      string `default:"postgres"`
	ProductsFile string `split_words:"true" default:"products.json"`
}

// MenuConfig holds the fixed category list used with the file backend.
type MenuConfig struct {
	Categories     []string `default:"Fries,Balila,Indomie,Drinks"`
	CategoriesFile string   `split_words:"true"`
}

type DBConfig struct {
	URL      string
	Host     string `default:"localhost"`
	Port     int    `default:"5432"`
	User     string `default:"postgres"`
	Password string
	Name     string `default:"menu"`
}

type ImageConfig struct {
	Backend   string `default:"disk"`
	UploadDir string `split_words:"true" default:"static/uploads"`
}

type S3Config struct {
	Endpoint      string
	Region        string `default:"us-east-1"`
	AccessKey     string `split_words:"true"`
	SecretKey     string `split_words:"true"`
	Bucket        string `default:"menu-images"`
	UseSSL        bool   `split_words:"true" default:"true"`
	PublicBaseURL string `split_words:"true"`
}

type SessionConfig struct {
	Backend      string        `default:"memory"`
	TTL          time.Duration `default:"12h"`
	RedisURL     string        `split_words:"true"`
	SecureCookie bool          `split_words:"true"`
	// CSRFKey signs the CSRF cookie; 32 bytes. A random key is used when empty,
	// which invalidates open forms on restart.
	CSRFKey string `envconfig:"CSRF_KEY"`
}

type AdminConfig struct {
	Username     string `default:"admin"`
	Password     string
	PasswordHash string `split_words:"true"`
}

// TelegramConfig enables admin change notifications when both values are set.
type TelegramConfig struct {
	Token       string
	AdminChatID int64 `split_words:"true"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	cfg.Image.Backend = strings.ToLower(strings.TrimSpace(cfg.Image.Backend))
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	cfg.Menu.Categories = trimAll(cfg.Menu.Categories)

	if cfg.Menu.CategoriesFile != "" {
		cats, err := LoadCategoriesFile(cfg.Menu.CategoriesFile)
		if err != nil {
			return nil, err
		}
		cfg.Menu.Categories = cats
	}
	return &cfg, nil
}

// Validate rejects unknown backends and a missing admin secret.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Image.Backend {
	case ImageDisk:
	case ImageS3:
		if c.S3.Endpoint == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required for IMAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown IMAGE_BACKEND %q", c.Image.Backend)
	}
	switch c.Session.Backend {
	case SessionMemory:
	case SessionRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("SESSION_REDIS_URL is required for SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if k := c.Session.CSRFKey; k != "" && len(k) != 32 {
		return fmt.Errorf("SESSION_CSRF_KEY must be 32 bytes, got %d", len(k))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH not set")
	}
	return nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DSN returns URL when set, otherwise a URL built from the individual fields.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   "/" + d.Name,
	}
	return u.String()
}

type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// LoadCategoriesFile reads a YAML document of the form `categories: [..]`.
func LoadCategoriesFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var doc categoriesFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	return trimAll(doc.Categories), nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
