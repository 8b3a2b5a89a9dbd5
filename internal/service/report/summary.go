package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// rangeFloor is the lower bound applied when date_from is omitted.
var rangeFloor = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Summary is a per-project breakdown of recorded time over a date range.
// Totals include entries tracked without a project; Projects does not.
type Summary struct {
	DateFrom     time.Time
	DateTo       time.Time
	TotalSecs    int64
	TotalHours   float64
	TotalEntries int64
	Projects     []domain.ProjectSum
}

// Summary aggregates entry durations per project over the requested range.
// Employees always report on themselves; admins may name any user or pass no
// user to aggregate across everyone.
func (s *Service) Summary(ctx context.Context, input SummaryInput) (*Summary, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	target := input.UserID
	if !ctxutil.IsAdminCtx(ctx) {
		if target != nil && *target != callerID {
			return nil, fmt.Errorf("report on another user: %w", domain.ErrForbidden)
		}
		target = &callerID
	}

	from := rangeFloor
	if input.DateFrom != nil {
		from = *input.DateFrom
	}
	to := domain.DateOf(s.clock.Now(), time.UTC)
	if input.DateTo != nil {
		to = *input.DateTo
	}

	sums, err := s.entries.SumByProject(ctx, from, to, target)
	if err != nil {
		return nil, fmt.Errorf("sum by project: %w", err)
	}

	summary := &Summary{
		DateFrom: from,
		DateTo:   to,
		Projects: []domain.ProjectSum{},
	}
	for _, row := range sums {
		summary.TotalSecs += row.TotalSecs
		summary.TotalEntries += row.EntryCount
		if row.ProjectID != nil && *row.ProjectID != uuid.Nil {
			summary.Projects = append(summary.Projects, row)
		}
	}
	summary.TotalHours = domain.HoursFromSeconds(summary.TotalSecs)

	return summary, nil
}
