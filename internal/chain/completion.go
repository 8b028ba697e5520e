package chain

import "strings"

// Markers of the four-line completion format the SQL prompt asks for:
//
//	Question: "Question here"
//	SQLQuery: "SQL Query to run"
//	SQLResult: "Result of the SQLQuery"
//	Answer: "Final answer here"
const (
	markerSQLQuery  = "SQLQuery:"
	markerSQLResult = "SQLResult:"
	markerAnswer    = "Answer:"
)

// extractCompletion pulls the SQL query and, when present, the final answer
// out of a completion. Models don't always follow the format: a completion
// without a SQLQuery marker is treated as being the bare query.
func extractCompletion(text string) (sql, answer string) {
	rest := text
	if i := strings.Index(rest, markerSQLQuery); i != -1 {
		rest = rest[i+len(markerSQLQuery):]
	}

	sql = rest
	for _, marker := range []string{markerSQLResult, markerAnswer} {
		if i := strings.Index(sql, marker); i != -1 {
			sql = sql[:i]
		}
	}
	sql = cleanStatement(sql)

	if i := strings.Index(rest, markerAnswer); i != -1 {
		answer = cleanStatement(rest[i+len(markerAnswer):])
	}

	return sql, answer
}

// cleanStatement strips the decoration models like to wrap statements in:
// whitespace, surrounding quotes, and markdown code fences.
func cleanStatement(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop a language tag like ```sql
		if i := strings.IndexByte(s, '\n'); i != -1 && !strings.ContainsAny(s[:i], " \t") {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}
