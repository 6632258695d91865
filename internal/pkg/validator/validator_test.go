package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"xlsx", "pdf"}
	if !IsInSlice("pdf", slice) {
		t.Errorf("IsInSlice('pdf') = false, want true")
	}
	if IsInSlice("csv", slice) {
		t.Errorf("IsInSlice('csv') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "end_date", Message: "required"},
	}
	got := errs.Error()
	want := "start_date: invalid; end_date: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "end_date", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"start_date": "invalid", "end_date": "required"}
	assert.Equal(t, want, got)
}

type exportQuery struct {
	Format    string `json:"format" validate:"required,oneof=xlsx pdf"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Note      string `json:"-" validate:"max=3"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(exportQuery{Format: "pdf", StartDate: "2024-03-01"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(exportQuery{Format: "csv", StartDate: "03/01/2024", Note: "long"})
		require.Error(t, err)

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		got := errs.ToMap()
		assert.Equal(t, "format must be one of: xlsx pdf", got["format"])
		assert.Equal(t, "start_date must be in YYYY-MM-DD format", got["start_date"])
		assert.Equal(t, "Note must be at most 3 characters", got["Note"])
	})

	t.Run("required", func(t *testing.T) {
		err := Struct(exportQuery{})
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "format is required", errs.ToMap()["format"])
	})
}
