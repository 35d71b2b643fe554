// Package report computes calendar-bucketed duration totals for
// charting and per-project rollups. Buckets are keyed by hour-of-day,
// weekday, day-of-month or month-of-year depending on the requested
// period; empty buckets are not returned, but every returned label is
// drawn from the fixed universe for the period so presenters can
// zero-fill against Labels.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/timekeep/timekeep/internal/logger"
	"github.com/timekeep/timekeep/internal/storage"
)

// ErrUnsupportedPeriod is returned for a period outside day, week,
// month and year.
var ErrUnsupportedPeriod = errors.New("unsupported period")

// Period selects the bucketing rule and the window around a reference
// date.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Bucket pairs a grouping label with a summed duration.
type Bucket struct {
	Label        string
	TotalMinutes int64
}

// ProjectSummary is the per-project rollup: total tracked minutes plus
// one representative tag color among the project's entries.
type ProjectSummary struct {
	ProjectID    int64
	Name         string
	TotalMinutes int64
	Color        string
}

// NeutralColor is used for projects with no tagged entries.
const NeutralColor = "#9E9E9E"

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Engine issues its own grouped queries through the shared executor.
type Engine struct {
	exec *storage.Executor
	log  logger.Logger
}

// NewEngine returns an aggregation engine executing through exec.
func NewEngine(exec *storage.Executor) *Engine {
	return &Engine{exec: exec, log: logger.Report()}
}

// Window resolves the calendar date range a period spans around ref,
// as a half-open [start, end) pair. Weeks run Monday through Sunday and
// may cross month or year boundaries.
func Window(period Period, ref time.Time) (time.Time, time.Time, error) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch period {
	case PeriodDay:
		return day, day.AddDate(0, 0, 1), nil
	case PeriodWeek:
		back := (int(day.Weekday()) + 6) % 7 // days since Monday
		start := day.AddDate(0, 0, -back)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0), nil
	case PeriodYear:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedPeriod, period)
	}
}

// bucketExpr is the strftime format extracting the bucket key from an
// entry's start time.
func bucketExpr(period Period) (string, error) {
	switch period {
	case PeriodDay:
		return "%H", nil // hour of day 00-23
	case PeriodWeek:
		return "%w", nil // day of week 0=Sunday..6=Saturday
	case PeriodMonth:
		return "%d", nil // day of month 01-31
	case PeriodYear:
		return "%m", nil // month 01-12
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPeriod, period)
	}
}

// Labels returns the complete label sequence for a period: 24 hours,
// the 7 weekday names, the days of ref's month, or the 12 month names.
// Presenters zero-fill missing buckets against this sequence.
func Labels(period Period, ref time.Time) ([]string, error) {
	switch period {
	case PeriodDay:
		out := make([]string, 24)
		for h := range out {
			out[h] = fmt.Sprintf("%02d", h)
		}
		return out, nil
	case PeriodWeek:
		return append([]string(nil), weekdayNames...), nil
	case PeriodMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		days := first.AddDate(0, 1, -1).Day()
		out := make([]string, days)
		for d := range out {
			out[d] = fmt.Sprintf("%02d", d+1)
		}
		return out, nil
	case PeriodYear:
		return append([]string(nil), monthNames...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPeriod, period)
	}
}

// Aggregate sums the durations of all completed time entries whose
// start time falls in the period's window around ref, filtered to the
// given projects and grouped by the period's bucket key in ascending
// key order. An empty project set means nothing is selected and yields
// an empty result.
func (e *Engine) Aggregate(projectIDs []int64, period Period, ref time.Time) ([]Bucket, error) {
	start, end, err := Window(period, ref)
	if err != nil {
		return nil, err
	}
	expr, err := bucketExpr(period)
	if err != nil {
		return nil, err
	}

	if len(projectIDs) == 0 {
		return []Bucket{}, nil
	}

	query, args, err := sq.
		Select(fmt.Sprintf("strftime('%s', start_time) AS bucket", expr), "SUM(duration) AS seconds").
		From("time_entries").
		Where("end_time IS NOT NULL").
		Where(sq.GtOrEq{"start_time": start.UTC().Format(time.RFC3339)}).
		Where(sq.Lt{"start_time": end.UTC().Format(time.RFC3339)}).
		Where(sq.Eq{"project_id": projectIDs}).
		GroupBy("bucket").
		OrderBy("bucket ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregation query: %w", err)
	}

	res := e.exec.Run(query, args...)
	if !res.OK() {
		e.log.Error("aggregation failed", "period", period, "error", res.Err)
		return nil, res.Err
	}

	buckets := make([]Bucket, 0, len(res.Rows))
	for _, row := range res.Rows {
		key, _ := row["bucket"].(string)
		seconds := asInt64(row["seconds"])
		buckets = append(buckets, Bucket{
			Label:        bucketLabel(period, key),
			TotalMinutes: seconds / 60,
		})
	}
	return buckets, nil
}

// ProjectSummaries rolls up every project's tracked time, zero when no
// entries exist, with a representative tag color. When a project's
// entries carry several tags the pick is an arbitrary single one, not a
// weighted choice.
func (e *Engine) ProjectSummaries() ([]ProjectSummary, error) {
	res := e.exec.Run(`
		SELECT p.id AS project_id, p.name AS name,
		       COALESCE(SUM(e.duration), 0) AS seconds,
		       COALESCE(MIN(t.color), ?) AS color
		FROM projects p
		LEFT JOIN time_entries e ON e.project_id = p.id AND e.end_time IS NOT NULL
		LEFT JOIN tags t ON t.id = e.tag_id
		GROUP BY p.id, p.name
		ORDER BY p.name`, NeutralColor)
	if !res.OK() {
		e.log.Error("project summary failed", "error", res.Err)
		return nil, res.Err
	}

	out := make([]ProjectSummary, 0, len(res.Rows))
	for _, row := range res.Rows {
		name, _ := row["name"].(string)
		color, _ := row["color"].(string)
		out = append(out, ProjectSummary{
			ProjectID:    asInt64(row["project_id"]),
			Name:         name,
			TotalMinutes: asInt64(row["seconds"]) / 60,
			Color:        color,
		})
	}
	return out, nil
}

// bucketLabel maps a raw strftime key into the period's label universe.
func bucketLabel(period Period, key string) string {
	switch period {
	case PeriodWeek:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '6' {
			return weekdayNames[key[0]-'0']
		}
	case PeriodYear:
		if len(key) == 2 {
			idx := int(key[0]-'0')*10 + int(key[1]-'0')
			if idx >= 1 && idx <= 12 {
				return monthNames[idx-1]
			}
		}
	}
	return key
}

func asInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}
