package prompt

// Registry names for the built-in templates.
const (
	NameSQLQuery     = "sql_query"
	NameTableDecider = "table_decider"
)

const sqlQueryText = `Given an input question, first create a syntactically correct {dialect} query to run, then look at the results of the query and return the answer. Unless the user specifies in his question a specific number of examples he wishes to obtain, always limit your query to at most {top_k} results using the 'LIMIT' clause. You can order the results by a relevant column to return the most interesting examples in the database, but you must place the 'ORDER' clause before the 'LIMIT' clause and never after. The 'LIMIT' clause should always be the last in your query.

Never ask for all the columns in a specific table, only for the few relevant columns given the question. When possible, don't query exactly but use 'LIKE' to make your queries more robust. Pay attention to use only the column names that you can see in the schema description and use exactly the same casing. Be careful not to include columns that do not exist and not to ask for columns in the wrong table.

Use the following format:

Question: "Question here"
SQLQuery: "SQL Query to run"
SQLResult: "Result of the SQLQuery"
Answer: "Final answer here"

Only use the following tables:

{table_info}

Question: {input}`

const tableDeciderText = `Given the below input question and list of potential tables, output a comma separated list of the table names that may be neccessary to answer this question.

Question: {query}

Table Names: {table_names}

Relevant Table Names:`

// SQLQuery asks the model to write a query for a question, given the SQL
// dialect, a row limit, and the schema of the available tables. The model is
// instructed to answer in the four-line Question/SQLQuery/SQLResult/Answer
// format; extracting the query from that completion is the chain's job.
var SQLQuery = MustNew(NameSQLQuery, sqlQueryText,
	[]string{"input", "table_info", "dialect", "top_k"})

// TableDecider asks the model to narrow a candidate table list down to the
// tables relevant to a question. Its completion is a comma-separated list,
// parsed with ParseList.
var TableDecider = MustNew(NameTableDecider, tableDeciderText,
	[]string{"query", "table_names"})

func init() {
	defaultRegistry.mustRegister(SQLQuery)
	defaultRegistry.mustRegister(TableDecider)
}
