package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// recordJSON is the HRIS API wire shape of an attendance record.
type recordJSON struct {
	EmployeeID   string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	ScheduleID   string `json:"scheduleId,omitempty"`
	Date         string `json:"date"`
	ScheduleType string `json:"scheduleType,omitempty"`
	Status       string `json:"status,omitempty"`

	ShiftTemplate *shiftJSON   `json:"shiftTemplate,omitempty"`
	LeaveTemplate *leaveJSON   `json:"leaveTemplate,omitempty"`
	Holiday       *holidayJSON `json:"holiday,omitempty"`

	MorningInLog       string `json:"morningInLog,omitempty"`
	MorningInSource    string `json:"morningInSource,omitempty"`
	MorningOutLog      string `json:"morningOutLog,omitempty"`
	MorningOutSource   string `json:"morningOutSource,omitempty"`
	AfternoonInLog     string `json:"afternoonInLog,omitempty"`
	AfternoonInSource  string `json:"afternoonInSource,omitempty"`
	AfternoonOutLog    string `json:"afternoonOutLog,omitempty"`
	AfternoonOutSource string `json:"afternoonOutSource,omitempty"`
	TimeIn             string `json:"timeIn,omitempty"`
	TimeInSource       string `json:"timeInSource,omitempty"`
	TimeOut            string `json:"timeOut,omitempty"`
	TimeOutSource      string `json:"timeOutSource,omitempty"`

	MorningLateMinutes   *int `json:"morningLateMinutes,omitempty"`
	AfternoonLateMinutes *int `json:"afternoonLateMinutes,omitempty"`
	LateMinutes          *int `json:"lateMinutes,omitempty"`
}

type shiftJSON struct {
	Type                string `json:"type,omitempty"`
	Name                string `json:"name,omitempty"`
	MorningIn           string `json:"morningIn,omitempty"`
	MorningOut          string `json:"morningOut,omitempty"`
	AfternoonIn         string `json:"afternoonIn,omitempty"`
	AfternoonOut        string `json:"afternoonOut,omitempty"`
	StartTime           string `json:"startTime,omitempty"`
	EndTime             string `json:"endTime,omitempty"`
	IsNightDifferential bool   `json:"isNightDifferential,omitempty"`
}

type leaveJSON struct {
	Name                  string     `json:"name,omitempty"`
	Category              string     `json:"category,omitempty"`
	IsPaid                bool       `json:"isPaid"`
	IsCompensatoryTimeOff bool       `json:"isCompensatoryTimeOff,omitempty"`
	CompensatoryWorkShift *shiftJSON `json:"compensatoryWorkShift,omitempty"`
	CompensatoryWorkDate  string     `json:"compensatoryWorkDate,omitempty"`
}

type holidayJSON struct {
	Name          string          `json:"name,omitempty"`
	Type          string          `json:"type,omitempty"`
	PayMultiplier decimal.Decimal `json:"payMultiplier"`
}

// Nested templates are decoded separately so a malformed one is dropped
// instead of failing the whole record.
type recordDecodeJSON struct {
	recordJSON
	ShiftTemplate json.RawMessage `json:"shiftTemplate"`
	LeaveTemplate json.RawMessage `json:"leaveTemplate"`
	Holiday       json.RawMessage `json:"holiday"`
}

type leaveDecodeJSON struct {
	leaveJSON
	CompensatoryWorkShift json.RawMessage `json:"compensatoryWorkShift"`
}

type holidayDecodeJSON struct {
	holidayJSON
	PayMultiplier json.RawMessage `json:"payMultiplier"`
}

// DecodeRecords decodes a JSON array of records. Records that cannot be
// decoded, such as those without a valid date, are dropped with a warning.
// A malformed shift time fails the whole batch.
func DecodeRecords(ctx context.Context, data []byte) ([]AttendanceRecord, error) {
	if isAbsent(data) {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	records := make([]AttendanceRecord, 0, len(raws))
	for i, raw := range raws {
		var r AttendanceRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			if errors.Is(err, ErrMalformedShiftTime) {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			slog.WarnContext(ctx, "Dropping malformed attendance record", "index", i, "error", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (r *AttendanceRecord) UnmarshalJSON(data []byte) error {
	var w recordDecodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	date, err := ParseDate(w.Date)
	if err != nil {
		return err
	}

	shift, err := decodeShift(w.ShiftTemplate, w.EmployeeID, w.Date)
	if err != nil {
		return fmt.Errorf("shiftTemplate: %w", err)
	}

	leave, err := decodeLeave(w.LeaveTemplate, w.EmployeeID, w.Date)
	if err != nil {
		return fmt.Errorf("leaveTemplate: %w", err)
	}

	*r = AttendanceRecord{
		EmployeeID:   strings.TrimSpace(w.EmployeeID),
		EmployeeName: w.EmployeeName,
		DepartmentID: w.DepartmentID,
		ScheduleID:   w.ScheduleID,
		Date:         date,
		ScheduleType: ScheduleType(w.ScheduleType),
		Status:       Status(w.Status),
		Shift:        shift,
		Leave:        leave,
		Holiday:      decodeHoliday(w.Holiday, w.EmployeeID, w.Date),

		MorningIn:    decodeLog(w.MorningInLog, w.MorningInSource),
		MorningOut:   decodeLog(w.MorningOutLog, w.MorningOutSource),
		AfternoonIn:  decodeLog(w.AfternoonInLog, w.AfternoonInSource),
		AfternoonOut: decodeLog(w.AfternoonOutLog, w.AfternoonOutSource),
		TimeIn:       decodeLog(w.TimeIn, w.TimeInSource),
		TimeOut:      decodeLog(w.TimeOut, w.TimeOutSource),

		MorningLateMinutes:   intOrZero(w.MorningLateMinutes),
		AfternoonLateMinutes: intOrZero(w.AfternoonLateMinutes),
		LateMinutes:          intOrZero(w.LateMinutes),
	}
	return nil
}

func (r AttendanceRecord) MarshalJSON() ([]byte, error) {
	w := recordJSON{
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		DepartmentID:  r.DepartmentID,
		ScheduleID:    r.ScheduleID,
		Date:          r.DateKey(),
		ScheduleType:  string(r.ScheduleType),
		Status:        string(r.Status),
		ShiftTemplate: encodeShift(r.Shift),
	}

	if r.Leave != nil {
		w.LeaveTemplate = &leaveJSON{
			Name:     r.Leave.Name,
			Category: r.Leave.Category,
			IsPaid:   r.Leave.IsPaid,
		}
		if c := r.Leave.Compensatory; c != nil {
			w.LeaveTemplate.IsCompensatoryTimeOff = true
			w.LeaveTemplate.CompensatoryWorkShift = encodeShift(c.Shift)
			if c.WorkDate != nil {
				w.LeaveTemplate.CompensatoryWorkDate = c.WorkDate.Format(DateLayout)
			}
		}
	}
	if r.Holiday != nil {
		w.Holiday = &holidayJSON{Name: r.Holiday.Name, Type: r.Holiday.Type, PayMultiplier: r.Holiday.PayMultiplier}
	}

	w.MorningInLog, w.MorningInSource = encodeLog(r.MorningIn)
	w.MorningOutLog, w.MorningOutSource = encodeLog(r.MorningOut)
	w.AfternoonInLog, w.AfternoonInSource = encodeLog(r.AfternoonIn)
	w.AfternoonOutLog, w.AfternoonOutSource = encodeLog(r.AfternoonOut)
	w.TimeIn, w.TimeInSource = encodeLog(r.TimeIn)
	w.TimeOut, w.TimeOutSource = encodeLog(r.TimeOut)

	w.MorningLateMinutes = intPtr(r.MorningLateMinutes)
	w.AfternoonLateMinutes = intPtr(r.AfternoonLateMinutes)
	w.LateMinutes = intPtr(r.LateMinutes)

	return json.Marshal(w)
}

// decode maps the loose template into a ShiftDefinition. Unknown or empty types
// fall back to inference from the populated fields; a template that cannot be
// resolved yields nil. Non-empty times that do not parse are an error.
func (s *shiftJSON) decode() (ShiftDefinition, error) {
	if s == nil {
		return nil, nil
	}

	shiftType := ShiftType("")
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "standard":
		shiftType = ShiftStandard
	case "shifting":
		shiftType = ShiftShifting
	default:
		switch {
		case s.StartTime != "" || s.EndTime != "":
			shiftType = ShiftShifting
		case s.MorningIn != "" || s.AfternoonOut != "":
			shiftType = ShiftStandard
		default:
			return nil, nil
		}
	}

	if shiftType == ShiftShifting {
		if s.StartTime == "" || s.EndTime == "" {
			return nil, nil
		}
		start, err := ParseClockTime(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := ParseClockTime(s.EndTime)
		if err != nil {
			return nil, err
		}
		return ShiftingShift{Name: s.Name, Start: start, End: end, IsNightDifferential: s.IsNightDifferential}, nil
	}

	shift := StandardShift{Name: s.Name, IsNightDifferential: s.IsNightDifferential}
	fields := []struct {
		raw string
		dst *ClockTime
	}{
		{s.MorningIn, &shift.MorningIn},
		{s.MorningOut, &shift.MorningOut},
		{s.AfternoonIn, &shift.AfternoonIn},
		{s.AfternoonOut, &shift.AfternoonOut},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		t, err := ParseClockTime(f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = t
	}
	return shift, nil
}

func encodeShift(shift ShiftDefinition) *shiftJSON {
	switch s := shift.(type) {
	case StandardShift:
		return &shiftJSON{
			Type:                string(ShiftStandard),
			Name:                s.Name,
			MorningIn:           s.MorningIn.String(),
			MorningOut:          s.MorningOut.String(),
			AfternoonIn:         s.AfternoonIn.String(),
			AfternoonOut:        s.AfternoonOut.String(),
			IsNightDifferential: s.IsNightDifferential,
		}
	case ShiftingShift:
		return &shiftJSON{
			Type:                string(ShiftShifting),
			Name:                s.Name,
			StartTime:           s.Start.String(),
			EndTime:             s.End.String(),
			IsNightDifferential: s.IsNightDifferential,
		}
	default:
		return nil
	}
}

func decodeShift(raw json.RawMessage, employeeID, date string) (ShiftDefinition, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var s shiftJSON
	if err := json.Unmarshal(raw, &s); err != nil {
		warnMalformed("shiftTemplate", employeeID, date, err)
		return nil, nil
	}
	return s.decode()
}

func decodeLeave(raw json.RawMessage, employeeID, date string) (*LeaveDetail, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var l leaveDecodeJSON
	if err := json.Unmarshal(raw, &l); err != nil {
		warnMalformed("leaveTemplate", employeeID, date, err)
		return nil, nil
	}

	detail := &LeaveDetail{Name: l.Name, Category: l.Category, IsPaid: l.IsPaid}
	if !l.IsCompensatoryTimeOff {
		return detail, nil
	}

	shift, err := decodeShift(l.CompensatoryWorkShift, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("compensatoryWorkShift: %w", err)
	}
	detail.Compensatory = &CompensatoryWork{Shift: shift}

	if l.CompensatoryWorkDate != "" {
		if d, err := ParseDate(l.CompensatoryWorkDate); err == nil {
			detail.Compensatory.WorkDate = &d
		}
	}
	return detail, nil
}

func decodeHoliday(raw json.RawMessage, employeeID, date string) *Holiday {
	if isAbsent(raw) {
		return nil
	}
	var h holidayDecodeJSON
	if err := json.Unmarshal(raw, &h); err != nil {
		warnMalformed("holiday", employeeID, date, err)
		return nil
	}

	holiday := &Holiday{Name: h.Name, Type: h.Type}
	if !isAbsent(h.PayMultiplier) {
		if err := json.Unmarshal(h.PayMultiplier, &holiday.PayMultiplier); err != nil {
			warnMalformed("holiday.payMultiplier", employeeID, date, err)
			holiday.PayMultiplier = decimal.Zero
		}
	}
	return holiday
}

func warnMalformed(field, employeeID, date string, err error) {
	slog.Warn("Ignoring malformed attendance field",
		"field", field,
		"employee_id", employeeID,
		"date", date,
		"error", err,
	)
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeLog(value, source string) *TimeLog {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &TimeLog{Time: value, Source: LogSource(strings.ToLower(source))}
}

func encodeLog(l *TimeLog) (string, string) {
	if l == nil {
		return "", ""
	}
	return l.Time, string(l.Source)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
