package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/tabletalk-dev/tabletalk/internal/providers"
)

var configTemplate = `# Tabletalk configuration file
# This file configures how natural-language questions get turned into SQL.

version: "1.0"

# LLM provider configuration
provider: "{{ .Provider }}"
model: "{{ .Model }}"
{{- if ne .APIKeyVar "" }}
api_key: "${{ "{" }}{{ .APIKeyVar }}{{ "}" }}"
{{- end }}
temperature: 0.0
{{- if eq .Provider "ollama" }}
base_url: "http://localhost:11434"
{{- end }}

# SQL dialect the generated queries should target
dialect: "{{ .Dialect }}"
# Row limit the model is told to apply with LIMIT
top_k: 5

# Schema sources: markdown docs with fenced sql blocks, inline DDL, or both
schema:
  docs:
    - "docs/schema.md"     # Markdown files containing ` + "```sql" + ` CREATE TABLE blocks
  # tables:
  #   - name: users
  #     ddl: |
  #       CREATE TABLE users (id SERIAL PRIMARY KEY, name TEXT)
`

type ConfigData struct {
	Provider  string
	Model     string
	APIKeyVar string
	Dialect   string
}

func runInit() error {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2).
		MarginBottom(1)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		MarginBottom(1)

	fmt.Println(titleStyle.Render("🗄  Tabletalk Configuration Setup"))
	fmt.Println(subtitleStyle.Render("Will setup your tabletalk.yaml configuration file."))

	reader := bufio.NewReader(os.Stdin)

	configFile := promptForInput(reader, "Config filename", "tabletalk.yaml")

	if _, err := os.Stat(configFile); err == nil {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)

		fmt.Printf("%s File '%s' already exists. Overwrite? (y/N): ",
			warningStyle.Render("⚠️"), configFile)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			return fmt.Errorf("not overwriting existing config file: %s", configFile)
		}
	}

	allProviders := providers.GetAllProviders()
	providerStrings := []string{}
	for _, provider := range allProviders {
		providerStrings = append(providerStrings, string(provider))
	}

	providerInput := promptForInput(reader, "LLM Provider ["+strings.Join(providerStrings, ", ")+"]", string(providers.ProviderOpenAI))
	provider, err := providers.ToProvider(providerInput)
	if err != nil {
		return err
	}

	providerDefaults := providers.GetProviderDefaults(provider)
	model := promptForInput(reader, "Model", providerDefaults.Model)

	dialect := promptForInput(reader, "SQL dialect", "postgresql")

	configContent, err := generateConfig(provider, model, providerDefaults.ApiKeyVar, dialect)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true).
		MarginTop(1)

	fmt.Println(successStyle.Render(fmt.Sprintf("✅ Configuration file '%s' created successfully!", configFile)))

	nextStepsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true).
		MarginTop(1)

	stepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		MarginLeft(3)

	codeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Background(lipgloss.Color("0")).
		Padding(0, 1)

	noteStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Bold(true)

	fmt.Println(nextStepsStyle.Render("🎯 Next steps:"))
	if providerDefaults.ApiKeyVar != "" {
		fmt.Println(noteStyle.Render(fmt.Sprintf("📝 Don't forget to set your %s environment variable.", providerDefaults.ApiKeyVar)))
		fmt.Println(stepStyle.Render(fmt.Sprintf("1. Set your API key: %s",
			codeStyle.Render("export "+providerDefaults.ApiKeyVar+"='your-api-key-here'"))))
	} else if provider == providers.ProviderOllama {
		fmt.Println(stepStyle.Render(fmt.Sprintf("1. Make sure Ollama is running: %s",
			codeStyle.Render("ollama serve"))))
	}
	fmt.Println(stepStyle.Render(fmt.Sprintf("2. Describe your schema in 'docs/schema.md' or inline in '%s'", configFile)))
	fmt.Println(stepStyle.Render(fmt.Sprintf("3. Ask away: %s", codeStyle.Render("tabletalk how many users signed up last week"))))

	return nil
}

func promptForInput(reader *bufio.Reader, prompt, defaultValue string) string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14")).
		Bold(true)

	defaultStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Italic(true)

	if defaultValue != "" {
		fmt.Printf("%s %s: ",
			promptStyle.Render(prompt),
			defaultStyle.Render("(default: "+defaultValue+")"))
	} else {
		fmt.Printf("%s: ", promptStyle.Render(prompt))
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" && defaultValue != "" {
		return defaultValue
	}
	return input
}

func generateConfig(provider providers.Provider, model, apiKeyVar, dialect string) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	data := ConfigData{
		Provider:  string(provider),
		Model:     model,
		APIKeyVar: apiKeyVar,
		Dialect:   dialect,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
