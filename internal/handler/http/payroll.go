package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CreateRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	ListMyRecords(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	UpdateRecord(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	ProcessPeriod(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// CreateRecord implements PayrollHandler
func (h *payrollHandlerImpl) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.CreateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll record created successfully", record)
}

func payrollFilter(r *http.Request) (payroll.PayrollFilter, error) {
	filter := payroll.PayrollFilter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter, filter.Validate()
}

// ListRecords implements PayrollHandler
func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := payrollFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// ListMyRecords implements PayrollHandler
func (h *payrollHandlerImpl) ListMyRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := payrollFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.payrollService.ListMyRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// GetRecord implements PayrollHandler
func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// UpdateRecord implements PayrollHandler
func (h *payrollHandlerImpl) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.UpdatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.payrollService.UpdateRecord(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll record updated successfully", record)
}

// Calculate implements PayrollHandler
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	breakdown, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, breakdown)
}

// ProcessPeriod implements PayrollHandler
func (h *payrollHandlerImpl) ProcessPeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ProcessPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// Summary implements PayrollHandler
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := payroll.SummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payrollService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
