package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	GetMyEmployee(w http.ResponseWriter, r *http.Request)
	CreateMyEmployee(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService     user.UserService
	employeeService employee.EmployeeService
}

func NewUserHandler(userService user.UserService, employeeService employee.EmployeeService) UserHandler {
	return &userHandlerImpl{
		userService:     userService,
		employeeService: employeeService,
	}
}

// GetMe implements UserHandler
func (h *userHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	me, err := h.userService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}

// UpdateMe implements UserHandler
func (h *userHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.UpdateMe(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", updated)
}

// GetMyEmployee implements UserHandler
func (h *userHandlerImpl) GetMyEmployee(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.GetMyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// CreateMyEmployee implements UserHandler
func (h *userHandlerImpl) CreateMyEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.employeeService.CreateMyProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee profile created successfully", profile)
}

// List implements UserHandler
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.UserFilter{
		Search:   queryString(r, "search"),
		IsActive: queryBool(r, "is_active"),
	}
	filter.Page, filter.Limit = pagination(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

// Get implements UserHandler
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := h.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, u)
}

// Update implements UserHandler
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// Delete implements UserHandler
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User deleted successfully", nil)
}
