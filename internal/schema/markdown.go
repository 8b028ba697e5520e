package schema

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Compile regex once at package level for efficiency
var createTableRegex = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?("?[a-zA-Z_][a-zA-Z0-9_.]*"?)`)

// ParseDoc extracts tables from a markdown schema document. Every fenced
// code block whose info string is "sql" is scanned for a CREATE TABLE
// statement; blocks without one are skipped, so docs can mix DDL with
// example queries.
func ParseDoc(content []byte) ([]Table, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	var tables []Table
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindFencedCodeBlock {
			return ast.WalkContinue, nil
		}

		block := node.(*ast.FencedCodeBlock)
		if lang := string(block.Language(content)); !strings.EqualFold(lang, "sql") {
			return ast.WalkContinue, nil
		}

		ddl := extractBlockText(block, content)
		name, ok := tableName(ddl)
		if !ok {
			return ast.WalkContinue, nil
		}

		tables = append(tables, Table{Name: name, DDL: strings.TrimSpace(ddl)})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return tables, nil
}

// LoadDocs parses every markdown document in paths and returns the tables in
// document order.
func LoadDocs(paths []string) ([]Table, error) {
	var tables []Table
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema doc %s: %w", path, err)
		}

		docTables, err := ParseDoc(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema doc %s: %w", path, err)
		}
		tables = append(tables, docTables...)
	}
	return tables, nil
}

func extractBlockText(block *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

func tableName(ddl string) (string, bool) {
	m := createTableRegex.FindStringSubmatch(ddl)
	if m == nil {
		return "", false
	}

	name := strings.Trim(m[1], `"`)
	// Drop a schema qualifier like public.users
	if i := strings.LastIndex(name, "."); i != -1 {
		name = name[i+1:]
	}
	return name, true
}
