package chain

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tabletalk-dev/tabletalk/internal/providers"
	"github.com/tabletalk-dev/tabletalk/internal/schema"
)

// Mock client for testing
type mockClient struct {
	// completions are returned in order, one per Complete call
	completions []string
	calls       int
	prompts     []string
	err         error
}

func (m *mockClient) Name() string { return "mock" }

func (m *mockClient) Validate() error { return nil }

func (m *mockClient) Complete(ctx context.Context, req *providers.Request) (*providers.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.prompts = append(m.prompts, req.Prompt)
	text := ""
	if m.calls < len(m.completions) {
		text = m.completions[m.calls]
	}
	m.calls++
	return &providers.Response{
		Text: text,
		Usage: providers.Usage{
			PromptTokens:     100,
			CompletionTokens: 50,
			TotalTokens:      150,
		},
	}, nil
}

var testTables = []schema.Table{
	{Name: "users", DDL: "CREATE TABLE users (id SERIAL PRIMARY KEY, name TEXT)"},
	{Name: "orders", DDL: "CREATE TABLE orders (id SERIAL PRIMARY KEY, user_id INT)"},
	{Name: "invoices", DDL: "CREATE TABLE invoices (id SERIAL PRIMARY KEY, order_id INT)"},
}

var testOptions = Options{Dialect: "postgresql", TopK: 5, MaxTokens: 500}

func TestSQLChain_BuildPrompt(t *testing.T) {
	c := NewSQLChain(&mockClient{}, testOptions)

	rendered, err := c.BuildPrompt("How many users are there?", testTables)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	for _, want := range []string{
		"postgresql query",
		"at most 5 results",
		"CREATE TABLE users",
		"CREATE TABLE orders",
		"Question: How many users are there?",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSQLChain_Run(t *testing.T) {
	client := &mockClient{completions: []string{
		"SQLQuery: SELECT COUNT(*) FROM users\nSQLResult: 42\nAnswer: There are 42 users.",
	}}
	c := NewSQLChain(client, testOptions)

	result, err := c.Run(context.Background(), "How many users are there?", testTables)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.SQL != "SELECT COUNT(*) FROM users" {
		t.Errorf("unexpected SQL: %q", result.SQL)
	}
	if result.Answer != "There are 42 users." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if !reflect.DeepEqual(result.Tables, []string{"users", "orders", "invoices"}) {
		t.Errorf("unexpected tables: %v", result.Tables)
	}
	if result.Usage.TotalTokens != 150 {
		t.Errorf("unexpected usage: %+v", result.Usage)
	}
}

func TestSQLChain_Run_ClientError(t *testing.T) {
	wantErr := errors.New("boom")
	c := NewSQLChain(&mockClient{err: wantErr}, testOptions)

	_, err := c.Run(context.Background(), "q", testTables)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestExtractCompletion(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		wantSQL    string
		wantAnswer string
	}{
		{
			name:       "full four-line format",
			completion: "Question: \"How many?\"\nSQLQuery: \"SELECT COUNT(*) FROM users\"\nSQLResult: \"42\"\nAnswer: \"42 users\"",
			wantSQL:    "SELECT COUNT(*) FROM users",
			wantAnswer: "42 users",
		},
		{
			name:       "query only after marker",
			completion: "SQLQuery: SELECT name FROM users LIMIT 5",
			wantSQL:    "SELECT name FROM users LIMIT 5",
		},
		{
			name:       "bare query without markers",
			completion: "SELECT name FROM users LIMIT 5",
			wantSQL:    "SELECT name FROM users LIMIT 5",
		},
		{
			name:       "fenced query",
			completion: "SQLQuery:\n```sql\nSELECT 1;\n```\nAnswer: one",
			wantSQL:    "SELECT 1;",
			wantAnswer: "one",
		},
		{
			name:       "query followed by result but no answer",
			completion: "SQLQuery: SELECT 1\nSQLResult: 1",
			wantSQL:    "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, answer := extractCompletion(tt.completion)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", answer, tt.wantAnswer)
			}
		})
	}
}

func TestTableDecider_BuildPrompt(t *testing.T) {
	d := NewTableDecider(&mockClient{}, testOptions)

	rendered, err := d.BuildPrompt("Which customers ordered last week?", testTables)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	if !strings.Contains(rendered, "Table Names: users, orders, invoices") {
		t.Errorf("decider prompt missing joined table names:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Question: Which customers ordered last week?") {
		t.Error("decider prompt missing question")
	}
}

func TestTableDecider_Decide(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		want       []string
	}{
		{
			name:       "subset",
			completion: "users, orders",
			want:       []string{"users", "orders"},
		},
		{
			name:       "unknown names dropped",
			completion: "users, sessions",
			want:       []string{"users"},
		},
		{
			name:       "trailing comma and casing",
			completion: "Users, INVOICES,",
			want:       []string{"users", "invoices"},
		},
		{
			name:       "nothing usable falls back to all tables",
			completion: "none of these",
			want:       []string{"users", "orders", "invoices"},
		},
		{
			name:       "empty completion falls back to all tables",
			completion: "",
			want:       []string{"users", "orders", "invoices"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{completions: []string{tt.completion}}
			d := NewTableDecider(client, testOptions)

			relevant, usage, err := d.Decide(context.Background(), "q", testTables)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if got := schema.Names(relevant); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
			if usage.TotalTokens != 150 {
				t.Errorf("unexpected usage: %+v", usage)
			}
		})
	}
}

func TestSequential_Run(t *testing.T) {
	client := &mockClient{completions: []string{
		"users, orders",
		"SQLQuery: SELECT COUNT(*) FROM orders\nSQLResult: 7\nAnswer: Seven orders.",
	}}
	s := NewSequential(client, testOptions)

	result, err := s.Run(context.Background(), "How many orders?", testTables)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if client.calls != 2 {
		t.Errorf("expected 2 model calls, got %d", client.calls)
	}
	if !reflect.DeepEqual(result.Tables, []string{"users", "orders"}) {
		t.Errorf("expected narrowed tables, got %v", result.Tables)
	}
	if result.SQL != "SELECT COUNT(*) FROM orders" {
		t.Errorf("unexpected SQL: %q", result.SQL)
	}
	if result.Usage.TotalTokens != 300 {
		t.Errorf("expected summed usage 300, got %d", result.Usage.TotalTokens)
	}

	// The SQL prompt must only carry the narrowed schema.
	sqlPrompt := client.prompts[1]
	if strings.Contains(sqlPrompt, "CREATE TABLE invoices") {
		t.Error("SQL prompt should not include tables the decider dropped")
	}
}
