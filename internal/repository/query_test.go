package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskFilterClausesMandatoryProject(t *testing.T) {
	where, args := taskFilterClauses(TaskFilter{ProjectID: 7})
	require.Equal(t, "project_id = ?", where)
	require.Equal(t, []interface{}{uint(7)}, args)
}

func TestTaskFilterClausesAllFilters(t *testing.T) {
	where, args := taskFilterClauses(TaskFilter{
		ProjectID:  7,
		Status:     "todo",
		Priority:   "high",
		AssignedTo: 3,
		Search:     "login",
	})

	require.Equal(t,
		"project_id = ? AND status = ? AND priority = ? AND assigned_to = ? AND title ILIKE ?",
		where)
	require.Equal(t, []interface{}{uint(7), "todo", "high", uint(3), "%login%"}, args)
}

// Every client value must travel as a bind parameter; the SQL text can
// only ever contain placeholders.
func TestTaskFilterClausesParameterized(t *testing.T) {
	where, args := taskFilterClauses(TaskFilter{
		ProjectID: 1,
		Status:    "todo'; DROP TABLE tasks; --",
		Search:    "x' OR '1'='1",
	})

	require.NotContains(t, where, "DROP")
	require.NotContains(t, where, "1'='1")
	require.Equal(t, strings.Count(where, "?"), len(args))
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `50\%`, escapeLike("50%"))
	require.Equal(t, `a\_b`, escapeLike("a_b"))
	require.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	require.Equal(t, "plain", escapeLike("plain"))
}

func TestTaskOrderSQL(t *testing.T) {
	// Priority rank first, nulls last on due date, id as the stable
	// tiebreaker for pagination.
	require.Contains(t, taskOrderSQL, "WHEN 'high' THEN 1")
	require.Contains(t, taskOrderSQL, "WHEN 'medium' THEN 2")
	require.Contains(t, taskOrderSQL, "WHEN 'low' THEN 3")
	require.Contains(t, taskOrderSQL, "due_date ASC NULLS LAST")
	require.True(t, strings.HasSuffix(taskOrderSQL, "id ASC"))
}

func TestPageOffset(t *testing.T) {
	require.Equal(t, 0, Page{Number: 1, Limit: 10}.Offset())
	require.Equal(t, 10, Page{Number: 2, Limit: 10}.Offset())
	require.Equal(t, 40, Page{Number: 5, Limit: 10}.Offset())
}
