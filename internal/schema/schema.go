// Package schema assembles the table context handed to the prompts: which
// tables exist and what their DDL looks like. Tables come from the config
// file, either inline or from markdown schema documents; tabletalk never
// introspects a live database.
package schema

import (
	"strings"
)

// Table is one table the model may query: its name and the DDL snippet shown
// to the model as schema description.
type Table struct {
	Name string
	DDL  string
}

// Info joins the DDL of every table into the schema description block the
// SQL prompt embeds.
func Info(tables []Table) string {
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, strings.TrimSpace(table.DDL))
	}
	return strings.Join(parts, "\n\n")
}

// Names returns the table names in table order.
func Names(tables []Table) []string {
	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.Name)
	}
	return names
}

// Filter keeps the tables whose name appears in keep, comparing
// case-insensitively and preserving the original table order. Names in keep
// that match no table are ignored.
func Filter(tables []Table, keep []string) []Table {
	wanted := make(map[string]bool, len(keep))
	for _, name := range keep {
		wanted[strings.ToLower(strings.TrimSpace(name))] = true
	}

	filtered := make([]Table, 0, len(tables))
	for _, table := range tables {
		if wanted[strings.ToLower(table.Name)] {
			filtered = append(filtered, table)
		}
	}
	return filtered
}
