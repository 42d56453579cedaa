package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/cie10"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/eps"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// RegistryEndpoint is one transport to a registry, tried in listed order.
type RegistryEndpoint struct {
	// Kind is "http" or "browser".
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
	// Query key overrides for routes that name their parameters
	// differently from the default consultation page.
	DocTypeParam   string `yaml:"docTypeParam"`
	DocNumberParam string `yaml:"docNumberParam"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	Auth struct {
		// APIKeys maps tenant -> key; empty disables auth (dev mode).
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey          string `yaml:"apiKey"`
		ExtractionModel string `yaml:"extractionModel"`
		NarrativeModel  string `yaml:"narrativeModel"`
	} `yaml:"openai"`

	Registries struct {
		Rethus struct {
			Endpoint       string `yaml:"endpoint"`
			ConsultURL     string `yaml:"consultURL"`
			TimeoutSeconds int    `yaml:"timeoutSeconds"`
		} `yaml:"rethus"`
		Adres struct {
			Endpoints      []RegistryEndpoint `yaml:"endpoints"`
			ConsultURL     string             `yaml:"consultURL"`
			TimeoutSeconds int                `yaml:"timeoutSeconds"`
		} `yaml:"adres"`
	} `yaml:"registries"`

	Search struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"search"`

	Scoring *verification.Weights `yaml:"scoring"`

	Tables struct {
		// Optional yaml overrides for the embedded reference tables.
		CIE10Path string `yaml:"cie10Path"`
		EPSPath   string `yaml:"epsPath"`
	} `yaml:"tables"`

	CheckTimeoutSeconds int `yaml:"checkTimeoutSeconds"`
}

// Load reads the config.yaml file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Helper to build DSN for MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper to build DSN for Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// Weights returns the scoring policy, validated. A broken policy is a
// startup failure, never a per-request one.
func (c *Config) Weights() (verification.Weights, error) {
	w := verification.DefaultWeights()
	if c.Scoring != nil {
		w = *c.Scoring
	}
	if err := w.Validate(); err != nil {
		return verification.Weights{}, fmt.Errorf("scoring config: %w", err)
	}
	return w, nil
}

// CIE10Table loads the diagnostic-code reference table: the embedded default
// set, or the override file when configured. Any defect aborts startup.
func (c *Config) CIE10Table() (*cie10.Table, error) {
	entries := cie10.DefaultEntries()
	if c.Tables.CIE10Path != "" {
		data, err := os.ReadFile(c.Tables.CIE10Path)
		if err != nil {
			return nil, fmt.Errorf("cie10 table file: %w", err)
		}
		entries = map[string]cie10.Entry{}
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("cie10 table file: %w", err)
		}
	}
	return cie10.NewTable(entries)
}

// EPSRegistry loads the authorized-payer registry the same way.
func (c *Config) EPSRegistry() (*eps.Registry, error) {
	entities := eps.DefaultEntities()
	if c.Tables.EPSPath != "" {
		data, err := os.ReadFile(c.Tables.EPSPath)
		if err != nil {
			return nil, fmt.Errorf("eps registry file: %w", err)
		}
		entities = nil
		if err := yaml.Unmarshal(data, &entities); err != nil {
			return nil, fmt.Errorf("eps registry file: %w", err)
		}
	}
	return eps.NewRegistry(entities)
}
