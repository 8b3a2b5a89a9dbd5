package timeentry

import (
	"github.com/Masterminds/squirrel"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildListQuery assembles the filtered SELECT for List.
func buildListQuery(f domain.EntryFilter) squirrel.SelectBuilder {
	q := psql.Select(entryColumnList...).
		From("time_entries").
		OrderBy("start_time ASC")

	if f.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *f.UserID})
	}
	if f.ProjectID != nil {
		q = q.Where(squirrel.Eq{"project_id": *f.ProjectID})
	}
	if f.TaskID != nil {
		q = q.Where(squirrel.Eq{"task_id": *f.TaskID})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	return q
}
