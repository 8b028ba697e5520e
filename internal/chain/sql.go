// Package chain wires the prompt templates to a language-model client: it
// renders a prompt for a question, sends it, and pulls the pieces tabletalk
// cares about out of the completion.
package chain

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tabletalk-dev/tabletalk/internal/prompt"
	"github.com/tabletalk-dev/tabletalk/internal/providers"
	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

// Options carry the chain knobs that come from configuration.
type Options struct {
	// Dialect names the SQL variant the generated query must target.
	Dialect string
	// TopK is the row limit the model is told to apply.
	TopK int
	// MaxTokens caps the completion length.
	MaxTokens int
	// Timeout bounds each model call.
	Timeout time.Duration
}

// Result is one answered question.
type Result struct {
	Question string
	// SQL is the query extracted from the completion.
	SQL string
	// Answer is the model's final answer line, when it produced one.
	Answer string
	// Tables are the tables whose schema was in the prompt.
	Tables []string
	Usage  providers.Usage
}

// SQLChain turns a natural-language question into a SQL query by prompting a
// language model with the schema of the available tables.
type SQLChain struct {
	client providers.Client
	opts   Options
}

func NewSQLChain(client providers.Client, opts Options) *SQLChain {
	return &SQLChain{client: client, opts: opts}
}

// BuildPrompt renders the SQL-generation prompt for question over tables.
func (c *SQLChain) BuildPrompt(question string, tables []schema.Table) (string, error) {
	return prompt.SQLQuery.Render(map[string]string{
		"dialect":    c.opts.Dialect,
		"top_k":      strconv.Itoa(c.opts.TopK),
		"table_info": schema.Info(tables),
		"input":      question,
	})
}

// Run renders the prompt, asks the model, and extracts the query and answer
// from the completion.
func (c *SQLChain) Run(ctx context.Context, question string, tables []schema.Table) (*Result, error) {
	rendered, err := c.BuildPrompt(question, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to render SQL prompt: %w", err)
	}

	resp, err := c.client.Complete(ctx, &providers.Request{
		Prompt:    rendered,
		MaxTokens: c.opts.MaxTokens,
		Timeout:   c.opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	sql, answer := extractCompletion(resp.Text)
	return &Result{
		Question: question,
		SQL:      sql,
		Answer:   answer,
		Tables:   schema.Names(tables),
		Usage:    resp.Usage,
	}, nil
}
