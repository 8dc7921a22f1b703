package timeentry

import "context"

type TimeEntryService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, id string, req ClockOutRequest) (TimeEntryResponse, error)
	ListMyEntries(ctx context.Context, filter TimeEntryFilter) (ListTimeEntryResponse, error)
	ListEntries(ctx context.Context, filter TimeEntryFilter) (ListTimeEntryResponse, error)
	GetEntry(ctx context.Context, id string) (TimeEntryResponse, error)
	UpdateEntry(ctx context.Context, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error
	MySummary(ctx context.Context, req SummaryRequest) (TimeSummary, error)
}
