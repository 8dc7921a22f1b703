package department

import (
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID          string
	Name        string
	Description *string
	ManagerID   *string
	Budget      *decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
}

func (d Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		Budget:      d.Budget,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

func (d *Department) ApplyUpdate(req UpdateDepartmentRequest) {
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			d.ManagerID = nil
		} else {
			d.ManagerID = req.ManagerID
		}
	}
	if req.Budget != nil {
		d.Budget = req.Budget
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
}
