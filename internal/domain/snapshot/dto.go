package snapshot

import "github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"

type SyncRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *SyncRequest) Validate() error {
	filter := attendance.AttendanceFilter{StartDate: r.StartDate, EndDate: r.EndDate}
	return filter.Validate()
}

type SyncResult struct {
	RunID       string `json:"run_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Fetched     int    `json:"fetched"`
	Stored      int    `json:"stored"`
	Skipped     int    `json:"skipped"`
	FinishedAt  string `json:"finished_at"`
}

type PruneResult struct {
	Cutoff  string `json:"cutoff"`
	Deleted int64  `json:"deleted"`
}
