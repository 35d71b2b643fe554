package storage

import "time"

// Timer helpers on top of the generic layer. Status transition legality
// (running/paused/stopped) is caller responsibility; the table's CHECK
// constraint only guards the literal values.

// ActiveTimer returns the most recent running timer, or nil when none
// is running.
func (s *Service) ActiveTimer() map[string]interface{} {
	res := s.exec.Run(
		`SELECT * FROM timers WHERE status = 'running' ORDER BY id DESC LIMIT 1`)
	if !res.OK() || len(res.Rows) == 0 {
		return nil
	}
	return res.Rows[0]
}

// StopTimer marks the timer stopped and records a time entry covering
// its run. The two writes are separate statements with no wrapping
// transaction, so a crash between them can leave a stopped timer with
// no matching entry.
func (s *Service) StopTimer(id int64) (int64, error) {
	timer, err := s.GetByID("timers", id)
	if err != nil {
		return 0, err
	}
	if timer == nil {
		return 0, &Error{Op: "stopTimer", Table: "timers", Err: ErrInvalidID}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.Update("timers", id, map[string]interface{}{
		"status":   "stopped",
		"end_time": now,
	}); err != nil {
		return 0, err
	}

	entry := map[string]interface{}{
		"project_id": timer["project_id"],
		"task":       timer["task"],
		"start_time": timer["start_time"],
		"end_time":   now,
	}
	return s.Create("time_entries", entry)
}
