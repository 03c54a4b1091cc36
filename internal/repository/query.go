package repository

import (
	"fmt"
	"strings"

	"tracker-service/internal/model"
)

// taskOrderSQL fixes the task listing order: priority rank (high before
// medium before low), then due date ascending with nulls last, then id as
// a stable tiebreaker so pagination is deterministic across pages. The
// CASE ranks mirror model.PriorityRank.
var taskOrderSQL = fmt.Sprintf(
	"CASE priority WHEN '%s' THEN %d WHEN '%s' THEN %d WHEN '%s' THEN %d ELSE %d END, due_date ASC NULLS LAST, id ASC",
	model.TaskPriorityHigh, model.PriorityRank(model.TaskPriorityHigh),
	model.TaskPriorityMedium, model.PriorityRank(model.TaskPriorityMedium),
	model.TaskPriorityLow, model.PriorityRank(model.TaskPriorityLow),
	model.PriorityRank(""),
)

// projectOrderSQL lists newest projects first with id as tiebreaker.
const projectOrderSQL = "created_at DESC, id DESC"

// taskFilterClauses builds the WHERE conditions for a task listing. Every
// value travels as a bind parameter; nothing client-supplied is ever
// concatenated into the SQL text.
func taskFilterClauses(f TaskFilter) (string, []interface{}) {
	conds := []string{"project_id = ?"}
	args := []interface{}{f.ProjectID}

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Priority != "" {
		conds = append(conds, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.AssignedTo != 0 {
		conds = append(conds, "assigned_to = ?")
		args = append(args, f.AssignedTo)
	}
	if f.Search != "" {
		conds = append(conds, "title ILIKE ?")
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}

	return strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied substring
// so a search for "50%" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
