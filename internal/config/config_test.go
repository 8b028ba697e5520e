package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func float64Ptr(v float64) *float64 { return &v }

func validTestConfig() Config {
	return Config{
		Version:  "1.0",
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "test-key",
		Dialect:  "postgresql",
		Schema: SchemaConfig{
			Tables: []TableDef{
				{Name: "users", DDL: "CREATE TABLE users (id SERIAL PRIMARY KEY)"},
			},
		},
	}
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "tabletalk.yaml")

	validConfig := `version: "1.0"
provider: openai
model: gpt-4o
api_key: test-key
timeout: 60
max_tokens: 500
temperature: 0.2
dialect: sqlite
top_k: 10
schema:
  tables:
    - name: users
      ddl: |
        CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)
`

	if err := os.WriteFile(configPath, []byte(validConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %s", config.Provider)
	}
	if config.Model != "gpt-4o" {
		t.Errorf("expected model 'gpt-4o', got %s", config.Model)
	}
	if config.Timeout != 60 {
		t.Errorf("expected timeout 60, got %d", config.Timeout)
	}
	if config.MaxTokens != 500 {
		t.Errorf("expected max_tokens 500, got %d", config.MaxTokens)
	}
	if config.Temperature == nil || *config.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", config.Temperature)
	}
	if config.Dialect != "sqlite" {
		t.Errorf("expected dialect 'sqlite', got %s", config.Dialect)
	}
	if config.TopK != 10 {
		t.Errorf("expected top_k 10, got %d", config.TopK)
	}
	if len(config.Schema.Tables) != 1 || config.Schema.Tables[0].Name != "users" {
		t.Errorf("expected one 'users' table, got %v", config.Schema.Tables)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "tabletalk.yaml")

	t.Setenv("TABLETALK_TEST_KEY", "secret-from-env")

	configYAML := `version: "1.0"
provider: openai
model: gpt-4o
api_key: ${TABLETALK_TEST_KEY}
dialect: postgresql
schema:
  tables:
    - name: users
      ddl: CREATE TABLE users (id SERIAL PRIMARY KEY)
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if config.APIKey != "secret-from-env" {
		t.Errorf("expected api_key expanded from env, got %q", config.APIKey)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("non-existent-file.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.yaml")

	invalidYAML := `invalid: yaml: content: [unclosed`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestConfig_validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "missing version",
			mutate:    func(c *Config) { c.Version = "" },
			wantError: true,
		},
		{
			name:      "unsupported version",
			mutate:    func(c *Config) { c.Version = "2.0" },
			wantError: true,
		},
		{
			name:      "missing provider",
			mutate:    func(c *Config) { c.Provider = "" },
			wantError: true,
		},
		{
			name:      "missing model",
			mutate:    func(c *Config) { c.Model = "" },
			wantError: true,
		},
		{
			name:      "missing api key for non-local provider",
			mutate:    func(c *Config) { c.APIKey = "" },
			wantError: true,
		},
		{
			name: "ollama without api key",
			mutate: func(c *Config) {
				c.Provider = "ollama"
				c.APIKey = ""
			},
			wantError: false,
		},
		{
			name:      "missing dialect",
			mutate:    func(c *Config) { c.Dialect = "" },
			wantError: true,
		},
		{
			name:      "no schema sources",
			mutate:    func(c *Config) { c.Schema = SchemaConfig{} },
			wantError: true,
		},
		{
			name: "docs-only schema is enough",
			mutate: func(c *Config) {
				c.Schema = SchemaConfig{Docs: []string{"schema.md"}}
			},
			wantError: false,
		},
		{
			name: "table without name",
			mutate: func(c *Config) {
				c.Schema.Tables = []TableDef{{DDL: "CREATE TABLE x (id INT)"}}
			},
			wantError: true,
		},
		{
			name: "table without ddl",
			mutate: func(c *Config) {
				c.Schema.Tables = []TableDef{{Name: "x"}}
			},
			wantError: true,
		},
		{
			name: "duplicate table name",
			mutate: func(c *Config) {
				c.Schema.Tables = append(c.Schema.Tables, c.Schema.Tables[0])
			},
			wantError: true,
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.Timeout = -5 },
			wantError: true,
		},
		{
			name:      "negative top_k",
			mutate:    func(c *Config) { c.TopK = -1 },
			wantError: true,
		},
		{
			name:      "temperature too high",
			mutate:    func(c *Config) { c.Temperature = float64Ptr(1.5) },
			wantError: true,
		},
		{
			name:      "temperature zero is allowed",
			mutate:    func(c *Config) { c.Temperature = float64Ptr(0.0) },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.mutate(&config)

			err := config.validate()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_validate_Defaults(t *testing.T) {
	config := validTestConfig()

	if err := config.validate(); err != nil {
		t.Fatalf("validation failed: %v", err)
	}

	if config.Timeout != 30 {
		t.Errorf("expected default timeout 30, got %d", config.Timeout)
	}
	if config.MaxTokens != 1000 {
		t.Errorf("expected default max_tokens 1000, got %d", config.MaxTokens)
	}
	if config.Temperature == nil || *config.Temperature != 0.0 {
		t.Errorf("expected default temperature 0.0, got %v", config.Temperature)
	}
	if config.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", config.TopK)
	}
}

func TestConfig_LoadTables(t *testing.T) {
	tempDir := t.TempDir()
	docPath := filepath.Join(tempDir, "schema.md")

	doc := "# Schema\n\n```sql\nCREATE TABLE orders (id SERIAL PRIMARY KEY);\n```\n"
	if err := os.WriteFile(docPath, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write schema doc: %v", err)
	}

	config := validTestConfig()
	config.Schema.Docs = []string{docPath}

	tables, err := config.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "users" || tables[1].Name != "orders" {
		t.Errorf("expected inline tables before doc tables, got %s, %s", tables[0].Name, tables[1].Name)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "[MASKED]" {
		t.Errorf("short keys should be fully masked, got %q", got)
	}

	masked := maskAPIKey("sk-proj-abcdefghijklmnop")
	if !strings.Contains(masked, "[MASKED]") {
		t.Errorf("expected masked key, got %q", masked)
	}
	if strings.Contains(masked, "abcdefghijkl") {
		t.Errorf("masked key leaks middle of secret: %q", masked)
	}
}
