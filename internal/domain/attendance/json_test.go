package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	valid := map[string]ClockTime{
		"00:00":    0,
		"08:30":    8*60 + 30,
		"23:59":    23*60 + 59,
		"7:05":     7*60 + 5,
		"22:00:00": 22 * 60,
	}
	for in, want := range valid {
		got, err := ParseClockTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	invalid := []string{"", "0800", "24:00", "08:60", "ab:cd", "08:00:99", "1:2:3:4"}
	for _, in := range invalid {
		_, err := ParseClockTime(in)
		assert.ErrorIs(t, err, ErrMalformedShiftTime, in)
	}
}

func TestShiftingShift_Span(t *testing.T) {
	day := ShiftingShift{Start: 8 * 60, End: 20 * 60}
	assert.Equal(t, 12*60.0, day.Span().Minutes())

	night := ShiftingShift{Start: 22 * 60, End: 6 * 60}
	assert.Equal(t, 8*60.0, night.Span().Minutes())

	full := ShiftingShift{Start: 7 * 60, End: 7 * 60}
	assert.Equal(t, 24*60.0, full.Span().Minutes())
}

func TestAttendanceRecord_UnmarshalJSON(t *testing.T) {
	t.Run("standard duty with logs", func(t *testing.T) {
		raw := `{
			"employeeId": "emp-1",
			"employeeName": "Dela Cruz, Juan",
			"departmentId": "er",
			"scheduleId": "sched-9",
			"date": "2024-03-04",
			"scheduleType": "duty",
			"status": "Late",
			"shiftTemplate": {"type": "Standard", "morningIn": "08:00", "morningOut": "12:00", "afternoonIn": "13:00", "afternoonOut": "17:00"},
			"morningInLog": "08:07",
			"morningInSource": "biometric",
			"afternoonOutLog": "17:02",
			"afternoonOutSource": "Manual",
			"morningLateMinutes": 7
		}`

		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &r))

		assert.Equal(t, "emp-1", r.EmployeeID)
		assert.Equal(t, "2024-03-04", r.DateKey())
		assert.Equal(t, Location, r.Date.Location())
		assert.Equal(t, ScheduleDuty, r.ScheduleType)
		assert.Equal(t, StatusLate, r.Status)

		shift, ok := r.Shift.(StandardShift)
		require.True(t, ok)
		assert.Equal(t, "13:00", shift.AfternoonIn.String())

		require.NotNil(t, r.MorningIn)
		assert.Equal(t, LogSourceBiometric, r.MorningIn.Source)
		assert.Equal(t, LogSourceManual, r.AfternoonOut.Source)
		assert.Nil(t, r.MorningOut)

		assert.Equal(t, 7, r.MorningLateMinutes)
		assert.Equal(t, 0, r.AfternoonLateMinutes)
	})

	t.Run("shifting duty on holiday", func(t *testing.T) {
		raw := `{
			"employeeId": "emp-2",
			"date": "2024-04-09T00:00:00+08:00",
			"scheduleType": "duty",
			"status": "Present",
			"shiftTemplate": {"type": "Shifting", "startTime": "22:00:00", "endTime": "06:00:00", "isNightDifferential": true},
			"holiday": {"name": "Araw ng Kagitingan", "type": "Regular Holiday", "payMultiplier": 2},
			"timeIn": "21:55",
			"lateMinutes": 0
		}`

		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &r))

		assert.Equal(t, "2024-04-09", r.DateKey())
		shift, ok := r.Shift.(ShiftingShift)
		require.True(t, ok)
		assert.True(t, shift.NightDifferential())
		assert.Equal(t, "22:00-06:00", shift.Label())

		require.NotNil(t, r.Holiday)
		assert.Equal(t, "2", r.Holiday.PayMultiplier.String())
	})

	t.Run("compensatory leave", func(t *testing.T) {
		raw := `{
			"employeeId": "emp-3",
			"date": "2024-03-05",
			"scheduleType": "leave",
			"status": "Leave",
			"leaveTemplate": {
				"name": "CTO",
				"category": "Compensatory",
				"isPaid": false,
				"isCompensatoryTimeOff": true,
				"compensatoryWorkShift": {"type": "Standard", "morningIn": "08:00", "afternoonOut": "17:00"},
				"compensatoryWorkDate": "2024-03-02"
			}
		}`

		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &r))

		assert.True(t, r.IsCompensatoryTimeOff())
		assert.True(t, r.HasDutyObligation())
		require.NotNil(t, r.Leave.Compensatory.WorkDate)
		assert.Equal(t, "2024-03-02", r.Leave.Compensatory.WorkDate.Format(DateLayout))
		assert.Equal(t, ShiftStandard, r.ActiveShift().Type())
	})

	t.Run("unknown or incomplete templates resolve to none", func(t *testing.T) {
		raw := `{"employeeId": "emp-4", "date": "2024-03-05", "scheduleType": "duty",
			"shiftTemplate": {"type": "Rotating"}}`
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		assert.Nil(t, r.Shift)

		raw = `{"employeeId": "emp-4", "date": "2024-03-05", "scheduleType": "duty",
			"shiftTemplate": {"type": "Shifting", "startTime": "08:00"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		assert.Nil(t, r.Shift)
	})

	t.Run("untyped template is inferred", func(t *testing.T) {
		raw := `{"employeeId": "emp-4", "date": "2024-03-05", "scheduleType": "duty",
			"shiftTemplate": {"startTime": "08:00", "endTime": "20:00"}}`
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		assert.Equal(t, ShiftShifting, r.Shift.Type())
	})

	t.Run("malformed shift time fails loudly", func(t *testing.T) {
		raw := `{"employeeId": "emp-5", "date": "2024-03-05", "scheduleType": "duty",
			"shiftTemplate": {"type": "Shifting", "startTime": "8am", "endTime": "20:00"}}`
		var r AttendanceRecord
		err := json.Unmarshal([]byte(raw), &r)
		assert.True(t, errors.Is(err, ErrMalformedShiftTime), "got %v", err)
	})

	t.Run("malformed date", func(t *testing.T) {
		var r AttendanceRecord
		err := json.Unmarshal([]byte(`{"date": "03/05/2024"}`), &r)
		assert.ErrorIs(t, err, ErrMalformedDate)
	})
}

func TestAttendanceRecord_UnmarshalJSON_MalformedNestedFields(t *testing.T) {
	t.Run("holiday as string", func(t *testing.T) {
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(`{"employeeId": "emp-1", "date": "2024-12-25", "holiday": "Christmas"}`), &r))
		assert.Nil(t, r.Holiday)
		assert.Equal(t, "2024-12-25", r.DateKey())
	})

	t.Run("non-numeric pay multiplier", func(t *testing.T) {
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(`{"employeeId": "emp-1", "date": "2024-12-25",
			"holiday": {"name": "Christmas", "type": "Regular Holiday", "payMultiplier": "abc"}}`), &r))
		require.NotNil(t, r.Holiday)
		assert.Equal(t, "Christmas", r.Holiday.Name)
		assert.True(t, r.Holiday.PayMultiplier.IsZero())
	})

	t.Run("leave template as array", func(t *testing.T) {
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(`{"employeeId": "emp-1", "date": "2024-03-05", "scheduleType": "leave", "leaveTemplate": []}`), &r))
		assert.Nil(t, r.Leave)
		assert.Equal(t, ScheduleLeave, r.ScheduleType)
	})

	t.Run("shift template as number", func(t *testing.T) {
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(`{"employeeId": "emp-1", "date": "2024-03-05", "scheduleType": "duty", "shiftTemplate": 42}`), &r))
		assert.Nil(t, r.Shift)
	})

	t.Run("malformed compensatory shift", func(t *testing.T) {
		var r AttendanceRecord
		require.NoError(t, json.Unmarshal([]byte(`{"employeeId": "emp-1", "date": "2024-03-05", "scheduleType": "leave",
			"leaveTemplate": {"name": "CTO", "isCompensatoryTimeOff": true, "compensatoryWorkShift": "day"}}`), &r))
		require.NotNil(t, r.Leave)
		require.NotNil(t, r.Leave.Compensatory)
		assert.Nil(t, r.Leave.Compensatory.Shift)
	})
}

func TestDecodeRecords(t *testing.T) {
	good := `{"employeeId": "emp-good", "date": "2024-03-06", "scheduleType": "duty", "status": "Present"}`

	tests := []struct {
		name  string
		bad   string
		count int
	}{
		{"holiday as string", `{"employeeId": "emp-bad", "date": "2024-03-05", "holiday": "Christmas"}`, 2},
		{"non-numeric pay multiplier", `{"employeeId": "emp-bad", "date": "2024-03-05", "holiday": {"name": "X", "payMultiplier": "abc"}}`, 2},
		{"leave template as array", `{"employeeId": "emp-bad", "date": "2024-03-05", "leaveTemplate": []}`, 2},
		{"missing date", `{"employeeId": "emp-bad", "scheduleType": "duty"}`, 1},
		{"malformed date", `{"employeeId": "emp-bad", "date": "03/05/2024"}`, 1},
		{"record is not an object", `"emp-bad"`, 1},
		{"wrong scalar type", `{"employeeId": 7, "date": "2024-03-05"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeRecords(context.Background(), []byte("["+tt.bad+","+good+"]"))
			require.NoError(t, err)
			require.Len(t, records, tt.count)
			assert.Equal(t, "emp-good", records[len(records)-1].EmployeeID)
		})
	}

	t.Run("malformed shift time fails the batch", func(t *testing.T) {
		bad := `{"employeeId": "emp-bad", "date": "2024-03-05", "scheduleType": "duty",
			"shiftTemplate": {"type": "Standard", "morningIn": "8h00"}}`
		_, err := DecodeRecords(context.Background(), []byte("["+bad+","+good+"]"))
		assert.ErrorIs(t, err, ErrMalformedShiftTime)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := DecodeRecords(context.Background(), []byte(`{"employeeId": "emp-1"}`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("null", func(t *testing.T) {
		records, err := DecodeRecords(context.Background(), []byte("null"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestAttendanceRecord_MarshalJSON_RoundTrip(t *testing.T) {
	raw := `{
		"employeeId": "emp-3",
		"employeeName": "Santos, Maria",
		"date": "2024-03-05",
		"scheduleType": "leave",
		"status": "Leave",
		"shiftTemplate": {"type": "Shifting", "startTime": "08:00", "endTime": "20:00"},
		"leaveTemplate": {"name": "CTO", "isPaid": true, "isCompensatoryTimeOff": true,
			"compensatoryWorkShift": {"type": "Shifting", "startTime": "20:00", "endTime": "08:00", "isNightDifferential": true}},
		"holiday": {"name": "EDSA", "type": "Special", "payMultiplier": "1.3"},
		"timeIn": "19:58",
		"timeInSource": "biometric",
		"lateMinutes": 4
	}`

	var first AttendanceRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &first))

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	var second AttendanceRecord
	require.NoError(t, json.Unmarshal(encoded, &second))

	assert.Equal(t, first.EmployeeID, second.EmployeeID)
	assert.Equal(t, first.DateKey(), second.DateKey())
	assert.Equal(t, first.Shift, second.Shift)
	assert.Equal(t, first.Leave.Compensatory.Shift, second.Leave.Compensatory.Shift)
	assert.True(t, first.Holiday.PayMultiplier.Equal(second.Holiday.PayMultiplier))
	assert.Equal(t, first.TimeIn, second.TimeIn)
	assert.Equal(t, 4, second.LateMinutes)
}

func TestAttendanceFilter_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := AttendanceFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"}
		assert.NoError(t, f.Validate())
	})

	t.Run("missing dates", func(t *testing.T) {
		f := AttendanceFilter{}
		err := f.Validate()
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
		assert.Contains(t, errs.ToMap(), "end_date")
	})

	t.Run("end before start", func(t *testing.T) {
		f := AttendanceFilter{StartDate: "2024-03-10", EndDate: "2024-03-01"}
		var errs validator.ValidationErrors
		require.ErrorAs(t, f.Validate(), &errs)
		assert.Equal(t, "end_date must not be before start_date", errs.ToMap()["end_date"])
	})

	t.Run("period too long", func(t *testing.T) {
		f := AttendanceFilter{StartDate: "2024-01-01", EndDate: "2024-03-31"}
		var errs validator.ValidationErrors
		require.ErrorAs(t, f.Validate(), &errs)
		assert.Contains(t, errs.ToMap()["end_date"], "62 days")
	})
}

func TestAttendanceFilter_Contains(t *testing.T) {
	f := AttendanceFilter{DepartmentID: "er", StartDate: "2024-03-01", EndDate: "2024-03-31"}

	in, _ := ParseDate("2024-03-31")
	out, _ := ParseDate("2024-04-01")

	assert.True(t, f.Contains(AttendanceRecord{DepartmentID: "er", Date: in}))
	assert.False(t, f.Contains(AttendanceRecord{DepartmentID: "er", Date: out}))
	assert.False(t, f.Contains(AttendanceRecord{DepartmentID: "icu", Date: in}))
}
