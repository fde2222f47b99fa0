package prompt

import (
	"strings"
	"testing"
)

func TestQueryBuilderMessages(t *testing.T) {
	b := NewQueryBuilder("postgresql", 25, "CREATE TABLE orders (\n\tid INTEGER NOT NULL\n)", "How many orders?")
	messages := b.Messages()

	if len(messages) != 2 {
		t.Fatalf("Messages() = %d turns, want 2", len(messages))
	}

	system := messages[0]
	if system.Role != "system" {
		t.Errorf("first role = %q, want system", system.Role)
	}
	for _, want := range []string{
		"syntactically correct postgresql query",
		"at most 25 results",
		"CREATE TABLE orders",
		"Only use the following tables:",
	} {
		if !strings.Contains(system.Content, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	user := messages[1]
	if user.Role != "user" {
		t.Errorf("second role = %q, want user", user.Role)
	}
	if user.Content != "Question: How many orders?" {
		t.Errorf("user turn = %q", user.Content)
	}
}

func TestAnswerPrompt(t *testing.T) {
	got := AnswerPrompt("How many orders?", "SELECT count(*) FROM orders;", "[(42,)]")

	want := "Given the following user question, corresponding SQL query, " +
		"and SQL result, answer the user question.\n\n" +
		"Question: How many orders?\n" +
		"SQL Query: SELECT count(*) FROM orders;\n" +
		"SQL Result: [(42,)]"
	if got != want {
		t.Errorf("AnswerPrompt() = %q, want %q", got, want)
	}
}
