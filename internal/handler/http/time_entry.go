package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type TimeEntryHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{timeEntryService: timeEntryService}
}

// ClockIn implements TimeEntryHandler
func (h *timeEntryHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req timeentry.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.timeEntryService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in successfully", entry)
}

// ClockOut implements TimeEntryHandler
func (h *timeEntryHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.timeEntryService.ClockOut(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out successfully", entry)
}

func timeEntryFilter(r *http.Request) (timeentry.TimeEntryFilter, error) {
	filter := timeentry.TimeEntryFilter{
		EmployeeID: queryString(r, "employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Status:     queryString(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter, filter.Validate()
}

// ListMine implements TimeEntryHandler
func (h *timeEntryHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter, err := timeEntryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.timeEntryService.ListMyEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// List implements TimeEntryHandler
func (h *timeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := timeEntryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.timeEntryService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// Get implements TimeEntryHandler
func (h *timeEntryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.timeEntryService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entry)
}

// Update implements TimeEntryHandler
func (h *timeEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.UpdateTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.timeEntryService.UpdateEntry(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time entry updated successfully", entry)
}

// Delete implements TimeEntryHandler
func (h *timeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timeEntryService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time entry deleted successfully", nil)
}

// MySummary implements TimeEntryHandler
func (h *timeEntryHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	req := timeentry.SummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.timeEntryService.MySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
