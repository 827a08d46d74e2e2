package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co.id"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("1001"))
	assert.True(t, IsValidEmployeeCode("1"))
	assert.True(t, IsValidEmployeeCode("999999999"))
	assert.False(t, IsValidEmployeeCode(""))
	assert.False(t, IsValidEmployeeCode("1000000000"))
	assert.False(t, IsValidEmployeeCode("10-01"))
	assert.False(t, IsValidEmployeeCode("A1001"))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-03-14")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = IsValidDate("14/03/2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "reason is required"},
		{Field: "rest_day_date", Message: "rest_day_date must be a valid date"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "reason is required", m["reason"])
	assert.Contains(t, errs.Error(), "rest_day_date")
}
