package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/tabletalk-dev/tabletalk/internal/prompt"
	"github.com/tabletalk-dev/tabletalk/internal/providers"
	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

// TableDecider narrows a candidate table list to the tables relevant to a
// question by asking the model for a comma-separated list of names.
type TableDecider struct {
	client providers.Client
	opts   Options
}

func NewTableDecider(client providers.Client, opts Options) *TableDecider {
	return &TableDecider{client: client, opts: opts}
}

// BuildPrompt renders the decider prompt for question over the candidate
// tables.
func (d *TableDecider) BuildPrompt(question string, tables []schema.Table) (string, error) {
	return prompt.TableDecider.Render(map[string]string{
		"query":       question,
		"table_names": strings.Join(schema.Names(tables), ", "),
	})
}

// Decide asks the model which tables matter for question and returns that
// subset. Names in the completion that match no candidate are dropped; when
// nothing usable comes back, every candidate is kept so the SQL chain still
// sees a schema.
func (d *TableDecider) Decide(ctx context.Context, question string, tables []schema.Table) ([]schema.Table, providers.Usage, error) {
	rendered, err := d.BuildPrompt(question, tables)
	if err != nil {
		return nil, providers.Usage{}, fmt.Errorf("failed to render decider prompt: %w", err)
	}

	resp, err := d.client.Complete(ctx, &providers.Request{
		Prompt:    rendered,
		MaxTokens: d.opts.MaxTokens,
		Timeout:   d.opts.Timeout,
	})
	if err != nil {
		return nil, providers.Usage{}, fmt.Errorf("model request failed: %w", err)
	}

	relevant := schema.Filter(tables, prompt.ParseList(resp.Text))
	if len(relevant) == 0 {
		return tables, resp.Usage, nil
	}
	return relevant, resp.Usage, nil
}
