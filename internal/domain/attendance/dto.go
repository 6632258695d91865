package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/validator"
)

// MaxPeriodDays bounds a single report request.
const MaxPeriodDays = 62

// ========================================
// FILTER DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID   string `json:"employee_id" validate:"omitempty,max=64"`
	DepartmentID string `json:"department_id" validate:"omitempty,max=64"`
	ScheduleID   string `json:"schedule_id" validate:"omitempty,max=64"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (f *AttendanceFilter) Validate() error {
	if err := validator.Struct(f); err != nil {
		return err
	}

	start, end, err := f.Period()
	if err != nil {
		return validator.ValidationErrors{{Field: "start_date", Message: err.Error()}}
	}

	var errs validator.ValidationErrors
	if end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	} else if days := int(end.Sub(start).Hours()/24) + 1; days > MaxPeriodDays {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("period must not exceed %d days", MaxPeriodDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the filter's start and end dates in Philippine time.
func (f AttendanceFilter) Period() (start, end time.Time, err error) {
	start, err = ParseDate(f.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ParseDate(f.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Contains reports whether the record matches the filter's keys and period.
func (f AttendanceFilter) Contains(r AttendanceRecord) bool {
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.DepartmentID != "" && r.DepartmentID != f.DepartmentID {
		return false
	}
	if f.ScheduleID != "" && r.ScheduleID != f.ScheduleID {
		return false
	}
	start, end, err := f.Period()
	if err != nil {
		return false
	}
	return !r.Date.Before(start) && !r.Date.After(end)
}
