package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

type Config struct {
	Version     string       `yaml:"version"`
	Provider    string       `yaml:"provider"`
	Model       string       `yaml:"model"`
	APIKey      string       `yaml:"api_key,omitempty"`
	BaseURL     string       `yaml:"base_url,omitempty"`
	Timeout     int          `yaml:"timeout"`
	MaxTokens   int          `yaml:"max_tokens"`
	Temperature *float64     `yaml:"temperature,omitempty"`
	Dialect     string       `yaml:"dialect"`
	TopK        int          `yaml:"top_k"`
	Schema      SchemaConfig `yaml:"schema"`
}

type SchemaConfig struct {
	Docs   []string   `yaml:"docs,omitempty"`
	Tables []TableDef `yaml:"tables,omitempty"`
}

type TableDef struct {
	Name string `yaml:"name"`
	DDL  string `yaml:"ddl"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	config, err := ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func ParseFromBytes(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s", c.Version)
	}

	// Whether the provider name itself is valid is checked on client instantiation
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	// API key is optional for Ollama (local provider)
	if c.Provider != "ollama" && c.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", c.Provider)
	}

	if c.Dialect == "" {
		return fmt.Errorf("dialect is required")
	}

	if len(c.Schema.Docs) == 0 && len(c.Schema.Tables) == 0 {
		return fmt.Errorf("at least one schema source is required (schema.docs or schema.tables)")
	}

	tableNames := make(map[string]bool)
	for _, table := range c.Schema.Tables {
		if table.Name == "" {
			return fmt.Errorf("table name is required")
		}
		if tableNames[table.Name] {
			return fmt.Errorf("duplicate table name: %s", table.Name)
		}
		tableNames[table.Name] = true

		if table.DDL == "" {
			return fmt.Errorf("ddl is required for table: %s", table.Name)
		}
	}

	// Set defaults
	if c.Timeout == 0 {
		c.Timeout = 30
	}

	if c.MaxTokens == 0 {
		c.MaxTokens = 1000
	}

	if c.Temperature == nil {
		defaultTemperature := 0.0
		c.Temperature = &defaultTemperature
	}

	if c.TopK == 0 {
		c.TopK = 5
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive number, got: %d", c.Timeout)
	}

	if c.TopK < 0 {
		return fmt.Errorf("top_k must be positive number, got: %d", c.TopK)
	}

	// Temperature 0.0 is allowed and is the default: SQL generation wants
	// deterministic output
	if *c.Temperature < 0 || *c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got: %f", *c.Temperature)
	}

	return nil
}

// LoadTables collects the configured tables: inline definitions first, then
// any tables extracted from markdown schema docs.
func (c *Config) LoadTables() ([]schema.Table, error) {
	tables := make([]schema.Table, 0, len(c.Schema.Tables))
	for _, def := range c.Schema.Tables {
		tables = append(tables, schema.Table{Name: def.Name, DDL: def.DDL})
	}

	docTables, err := schema.LoadDocs(c.Schema.Docs)
	if err != nil {
		return nil, err
	}

	return append(tables, docTables...), nil
}

// maskAPIKey masks the API key for secure display
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 11 {
		return "[MASKED]"
	}
	return apiKey[:7] + "[MASKED]" + apiKey[len(apiKey)-4:]
}

func (c *Config) PrintAsYAML() error {
	// Print a copy of the config with the API key masked
	configCopy := *c
	configCopy.APIKey = maskAPIKey(c.APIKey)

	yamlData, err := yaml.Marshal(&configCopy)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	fmt.Println(string(yamlData))
	return nil
}
