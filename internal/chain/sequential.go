package chain

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/tabletalk-dev/tabletalk/internal/providers"
	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

// Sequential runs the table decider first and then the SQL chain over the
// narrowed tables, so the schema shown to the model stays small when the
// database has many tables.
type Sequential struct {
	decider *TableDecider
	sql     *SQLChain
}

func NewSequential(client providers.Client, opts Options) *Sequential {
	return &Sequential{
		decider: NewTableDecider(client, opts),
		sql:     NewSQLChain(client, opts),
	}
}

// Run answers question over tables. The returned result's Tables field
// reflects the narrowed set, and its Usage sums both model calls.
func (s *Sequential) Run(ctx context.Context, question string, tables []schema.Table) (*Result, error) {
	relevant, deciderUsage, err := s.decider.Decide(ctx, question, tables)
	if err != nil {
		return nil, err
	}
	log.Debug("decider narrowed tables", "from", len(tables), "to", len(relevant))

	result, err := s.sql.Run(ctx, question, relevant)
	if err != nil {
		return nil, err
	}

	result.Usage.PromptTokens += deciderUsage.PromptTokens
	result.Usage.CompletionTokens += deciderUsage.CompletionTokens
	result.Usage.TotalTokens += deciderUsage.TotalTokens
	return result, nil
}
