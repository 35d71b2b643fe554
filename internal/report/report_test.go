package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timekeep/timekeep/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.Service) {
	t.Helper()
	exec := storage.NewExecutor()
	require.NoError(t, exec.Connect(":memory:"))
	t.Cleanup(func() { exec.Close() })
	return NewEngine(exec), storage.NewService(exec)
}

func seedProject(t *testing.T, svc *storage.Service, name string) int64 {
	t.Helper()
	id, err := svc.Create("projects", map[string]interface{}{"name": name})
	require.NoError(t, err)
	return id
}

func seedEntry(t *testing.T, svc *storage.Service, projectID int64, start, end string, extra map[string]interface{}) {
	t.Helper()
	fields := map[string]interface{}{
		"project_id": projectID,
		"task":       "work",
		"start_time": start,
		"end_time":   end,
	}
	for k, v := range extra {
		fields[k] = v
	}
	_, err := svc.Create("time_entries", fields)
	require.NoError(t, err)
}

func TestWindow(t *testing.T) {
	t.Run("day", func(t *testing.T) {
		ref := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
		start, end, err := Window(PeriodDay, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("week spans Monday through Sunday", func(t *testing.T) {
		// A Wednesday mid-month.
		ref := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
		start, end, err := Window(PeriodWeek, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("week crossing a month boundary is not truncated", func(t *testing.T) {
		// Wednesday 2025-07-30: its week runs Mon Jul 28 .. Sun Aug 3.
		ref := time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)
		start, end, err := Window(PeriodWeek, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("week starting on a Monday reference", func(t *testing.T) {
		ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		start, _, err := Window(PeriodWeek, ref)
		require.NoError(t, err)
		assert.Equal(t, ref, start)
	})

	t.Run("week with a Sunday reference walks back six days", func(t *testing.T) {
		ref := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
		start, _, err := Window(PeriodWeek, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("month", func(t *testing.T) {
		ref := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		start, end, err := Window(PeriodMonth, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("year", func(t *testing.T) {
		ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		start, end, err := Window(PeriodYear, ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("unsupported period", func(t *testing.T) {
		_, _, err := Window(Period("decade"), time.Now())
		assert.ErrorIs(t, err, ErrUnsupportedPeriod)
	})
}

func TestLabels(t *testing.T) {
	t.Run("day has 24 hours", func(t *testing.T) {
		labels, err := Labels(PeriodDay, time.Now())
		require.NoError(t, err)
		require.Len(t, labels, 24)
		assert.Equal(t, "00", labels[0])
		assert.Equal(t, "23", labels[23])
	})

	t.Run("week has 7 weekday names", func(t *testing.T) {
		labels, err := Labels(PeriodWeek, time.Now())
		require.NoError(t, err)
		assert.Equal(t, []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}, labels)
	})

	t.Run("month tracks days of the reference month", func(t *testing.T) {
		labels, err := Labels(PeriodMonth, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, labels, 29) // leap February
		assert.Equal(t, "01", labels[0])
		assert.Equal(t, "29", labels[28])

		labels, err = Labels(PeriodMonth, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, labels, 30)
	})

	t.Run("year has 12 month names", func(t *testing.T) {
		labels, err := Labels(PeriodYear, time.Now())
		require.NoError(t, err)
		require.Len(t, labels, 12)
		assert.Equal(t, "January", labels[0])
		assert.Equal(t, "December", labels[11])
	})

	t.Run("unsupported period", func(t *testing.T) {
		_, err := Labels(Period("fortnight"), time.Now())
		assert.ErrorIs(t, err, ErrUnsupportedPeriod)
	})
}

func TestAggregate(t *testing.T) {
	engine, svc := newTestEngine(t)
	alpha := seedProject(t, svc, "alpha")
	beta := seedProject(t, svc, "beta")

	// 2025-03-12 is a Wednesday.
	seedEntry(t, svc, alpha, "2025-03-12T09:00:00Z", "2025-03-12T10:30:00Z", nil) // 90 min
	seedEntry(t, svc, alpha, "2025-03-12T09:45:00Z", "2025-03-12T10:00:00Z", nil) // 15 min, same hour bucket
	seedEntry(t, svc, alpha, "2025-03-14T13:00:00Z", "2025-03-14T14:00:00Z", nil) // Friday, 60 min
	seedEntry(t, svc, beta, "2025-03-12T09:00:00Z", "2025-03-12T09:30:00Z", nil)  // other project
	seedEntry(t, svc, alpha, "2025-04-01T09:00:00Z", "2025-04-01T10:00:00Z", nil) // outside March

	ref := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("empty project set yields empty result", func(t *testing.T) {
		buckets, err := engine.Aggregate(nil, PeriodMonth, ref)
		require.NoError(t, err)
		assert.Empty(t, buckets)
	})

	t.Run("day buckets by hour", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha}, PeriodDay, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, "09", buckets[0].Label)
		assert.EqualValues(t, 105, buckets[0].TotalMinutes)
	})

	t.Run("week buckets by weekday name", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha}, PeriodWeek, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.Equal(t, "Wednesday", buckets[0].Label)
		assert.EqualValues(t, 105, buckets[0].TotalMinutes)
		assert.Equal(t, "Friday", buckets[1].Label)
		assert.EqualValues(t, 60, buckets[1].TotalMinutes)
	})

	t.Run("month buckets by day", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha}, PeriodMonth, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.Equal(t, "12", buckets[0].Label)
		assert.Equal(t, "14", buckets[1].Label)
	})

	t.Run("year buckets by month name", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha}, PeriodYear, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.Equal(t, "March", buckets[0].Label)
		assert.EqualValues(t, 165, buckets[0].TotalMinutes)
		assert.Equal(t, "April", buckets[1].Label)
		assert.EqualValues(t, 60, buckets[1].TotalMinutes)
	})

	t.Run("project filter includes both projects when asked", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha, beta}, PeriodDay, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.EqualValues(t, 135, buckets[0].TotalMinutes)
	})

	t.Run("labels cover every returned bucket", func(t *testing.T) {
		buckets, err := engine.Aggregate([]int64{alpha, beta}, PeriodWeek, ref)
		require.NoError(t, err)
		labels, err := Labels(PeriodWeek, ref)
		require.NoError(t, err)

		universe := map[string]bool{}
		for _, l := range labels {
			universe[l] = true
		}
		for _, b := range buckets {
			assert.True(t, universe[b.Label], b.Label)
		}
	})

	t.Run("unsupported period", func(t *testing.T) {
		_, err := engine.Aggregate([]int64{alpha}, Period("quarter"), ref)
		assert.ErrorIs(t, err, ErrUnsupportedPeriod)
	})

	t.Run("unsupported period rejected even with no projects", func(t *testing.T) {
		_, err := engine.Aggregate(nil, Period("quarter"), ref)
		assert.ErrorIs(t, err, ErrUnsupportedPeriod)
	})

	t.Run("running entries are excluded", func(t *testing.T) {
		_, err := svc.Create("time_entries", map[string]interface{}{
			"project_id": alpha,
			"task":       "open",
			"start_time": "2025-03-12T09:05:00Z",
		})
		require.NoError(t, err)

		buckets, err := engine.Aggregate([]int64{alpha}, PeriodDay, ref)
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.EqualValues(t, 105, buckets[0].TotalMinutes)
	})
}

func TestProjectSummaries(t *testing.T) {
	engine, svc := newTestEngine(t)

	alpha := seedProject(t, svc, "alpha")
	beta := seedProject(t, svc, "beta")
	seedProject(t, svc, "idle")

	tagID, err := svc.Create("tags", map[string]interface{}{"name": "focus", "color": "#3F51B5"})
	require.NoError(t, err)

	seedEntry(t, svc, alpha, "2025-03-12T09:00:00Z", "2025-03-12T10:00:00Z", map[string]interface{}{"tag_id": tagID})
	seedEntry(t, svc, alpha, "2025-03-13T09:00:00Z", "2025-03-13T09:30:00Z", nil)
	seedEntry(t, svc, beta, "2025-03-12T11:00:00Z", "2025-03-12T11:45:00Z", nil)

	summaries, err := engine.ProjectSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	byName := map[string]ProjectSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}

	assert.EqualValues(t, 90, byName["alpha"].TotalMinutes)
	assert.Equal(t, "#3F51B5", byName["alpha"].Color, "representative tag color")

	assert.EqualValues(t, 45, byName["beta"].TotalMinutes)
	assert.Equal(t, NeutralColor, byName["beta"].Color, "untagged entries fall back to neutral")

	assert.EqualValues(t, 0, byName["idle"].TotalMinutes, "projects with no entries roll up to zero")
	assert.Equal(t, NeutralColor, byName["idle"].Color)
}
