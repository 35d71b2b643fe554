package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/timekeep/timekeep/internal/report"
	"github.com/timekeep/timekeep/internal/storage"
)

func newReportCommand() *cobra.Command {
	var (
		periodFlag  string
		dateFlag    string
		projectFlag string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show bucketed duration totals for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			period := report.Period(periodFlag)
			if periodFlag == "" {
				period = report.Period(config.Report.DefaultPeriod)
			}

			ref := time.Now()
			if dateFlag != "" {
				var err error
				ref, err = time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
				}
			}

			projectIDs, err := parseProjectIDs(projectFlag)
			if err != nil {
				return err
			}

			exec := storage.NewExecutor()
			if err := exec.Connect(dbPath); err != nil {
				return err
			}
			defer exec.Close()

			engine := report.NewEngine(exec)
			buckets, err := engine.Aggregate(projectIDs, period, ref)
			if err != nil {
				return err
			}
			labels, err := report.Labels(period, ref)
			if err != nil {
				return err
			}

			// Zero-fill: the engine omits empty buckets, the full
			// label sequence comes from the period's universe.
			totals := make(map[string]int64, len(buckets))
			for _, b := range buckets {
				totals[b.Label] = b.TotalMinutes
			}
			for _, label := range labels {
				cmd.Printf("%-10s %6d min\n", label, totals[label])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "", "bucketing period: day, week, month or year")
	cmd.Flags().StringVar(&dateFlag, "date", "", "reference date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&projectFlag, "projects", "", "comma-separated project ids")
	return cmd
}

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total tracked time per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec := storage.NewExecutor()
			if err := exec.Connect(dbPath); err != nil {
				return err
			}
			defer exec.Close()

			engine := report.NewEngine(exec)
			summaries, err := engine.ProjectSummaries()
			if err != nil {
				return err
			}
			for _, s := range summaries {
				cmd.Printf("%-24s %6d min  %s\n", s.Name, s.TotalMinutes, s.Color)
			}
			return nil
		},
	}
}

func parseProjectIDs(flag string) ([]int64, error) {
	if strings.TrimSpace(flag) == "" {
		return nil, nil
	}
	parts := strings.Split(flag, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid project id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
