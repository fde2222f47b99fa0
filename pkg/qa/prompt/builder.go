package prompt

import (
	"fmt"
	"strings"

	"db-qa-be/pkg/llm"
)

// QueryBuilder renders the SQL-generation prompt: dialect, row-limit hint,
// and schema description in the system turn, the raw question in the user
// turn.
type QueryBuilder struct {
	dialect   string
	topK      int
	tableInfo string
	question  string
}

func NewQueryBuilder(dialect string, topK int, tableInfo, question string) *QueryBuilder {
	return &QueryBuilder{
		dialect:   dialect,
		topK:      topK,
		tableInfo: tableInfo,
		question:  question,
	}
}

// Messages builds the chat turns for the generation call.
func (b *QueryBuilder) Messages() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: b.buildSystem()},
		{Role: "user", Content: fmt.Sprintf("Question: %s", b.question)},
	}
}

func (b *QueryBuilder) buildSystem() string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt,
		"Given an input question, create a syntactically correct %s query to run to help find the answer. ",
		b.dialect)
	fmt.Fprintf(&prompt,
		"Unless the user specifies in his question a specific number of examples they wish to obtain, always limit your query to at most %d results. ",
		b.topK)
	prompt.WriteString("You can order the results by a relevant column to return the most interesting examples in the database.\n\n")

	prompt.WriteString("Never query for all the columns from a specific table, only ask for the few relevant columns given the question.\n\n")

	prompt.WriteString("Pay attention to use only the column names that you can see in the schema description. ")
	prompt.WriteString("Be careful to not query for columns that do not exist. ")
	prompt.WriteString("Also, pay attention to which column is in which table.\n\n")

	prompt.WriteString("Only use the following tables:\n")
	prompt.WriteString(b.tableInfo)

	return prompt.String()
}

// AnswerPrompt renders the synthesis prompt from the question, the executed
// query, and its serialized result.
func AnswerPrompt(question, query, result string) string {
	return fmt.Sprintf(
		"Given the following user question, corresponding SQL query, "+
			"and SQL result, answer the user question.\n\n"+
			"Question: %s\nSQL Query: %s\nSQL Result: %s",
		question, query, result)
}
