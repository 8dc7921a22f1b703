package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Calculator turns worked hours into a pay breakdown under one policy.
type Calculator struct {
	policy config.PayrollConfig
}

func NewCalculator(policy config.PayrollConfig) *Calculator {
	return &Calculator{policy: policy}
}

// Calculate computes the pay for hoursWorked. A positive overtimeOverride
// replaces the overtime derived from the weekly threshold.
func (c *Calculator) Calculate(profile employee.Compensation, hoursWorked, overtimeOverride decimal.Decimal) payroll.Breakdown {
	threshold := c.policy.WeeklyOvertimeThreshold

	regular := decimal.Min(hoursWorked, threshold)
	overtime := decimal.Max(decimal.Zero, hoursWorked.Sub(threshold))
	if overtimeOverride.IsPositive() {
		overtime = overtimeOverride
	}

	var gross decimal.Decimal
	if profile.PaidHourly() {
		rate := *profile.HourlyRate
		gross = regular.Mul(rate).
			Add(overtime.Mul(rate).Mul(c.policy.OvertimeMultiplier))
	} else {
		weekly := profile.Salary.Div(c.policy.WeeksPerYear)
		gross = weekly
		if overtime.IsPositive() {
			gross = gross.Add(overtime.Mul(weekly.Div(threshold)).Mul(c.policy.OvertimeMultiplier))
		}
	}

	gross = gross.Round(2)
	tax := gross.Mul(c.policy.TaxRate).Round(2)
	other := gross.Mul(c.policy.OtherDeductionRate).Round(2)

	return payroll.Breakdown{
		HoursWorked:     hoursWorked.Round(2),
		RegularHours:    regular.Round(2),
		OvertimeHours:   overtime.Round(2),
		GrossPay:        gross,
		TaxDeductions:   tax,
		OtherDeductions: other,
		NetPay:          gross.Sub(tax).Sub(other),
	}
}
