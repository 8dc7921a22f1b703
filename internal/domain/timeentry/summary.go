package timeentry

import (
	"github.com/shopspring/decimal"
)

// Summarize aggregates entries of one employee. Days are counted by distinct
// entry date; open entries contribute no hours.
func Summarize(entries []TimeEntry, req SummaryRequest) TimeSummary {
	total := decimal.Zero
	overtime := decimal.Zero
	days := make(map[string]struct{})

	for _, e := range entries {
		if e.TotalHours != nil {
			total = total.Add(*e.TotalHours)
		}
		overtime = overtime.Add(e.OvertimeHours)
		days[e.Date.Format("2006-01-02")] = struct{}{}
	}

	avg := decimal.Zero
	if len(days) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(days)))).Round(2)
	}

	summary := TimeSummary{
		TotalHours:         total,
		TotalOvertimeHours: overtime,
		TotalRegularHours:  total.Sub(overtime),
		TotalDaysWorked:    len(days),
		AverageHoursPerDay: avg,
	}
	if req.From != nil {
		s := req.From.Format("2006-01-02")
		summary.Period.StartDate = &s
	}
	if req.To != nil {
		s := req.To.Format("2006-01-02")
		summary.Period.EndDate = &s
	}
	return summary
}
