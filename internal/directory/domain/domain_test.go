package domain

import (
	"testing"
	"time"

	"users_manager_backend/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)

	_, err = ParseRole("boss")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = ParseRole("")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = ParseRole(" manager ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = ParseRole("Manager")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestParseEmploymentStatus(t *testing.T) {
	for _, v := range []string{"full-time", "part-time", "terminated"} {
		s, err := ParseEmploymentStatus(v)
		require.NoError(t, err)
		assert.Equal(t, EmploymentStatus(v), s)
	}

	_, err := ParseEmploymentStatus("contractor")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = ParseEmploymentStatus("full-time ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestNewEmployeeRejectsPaddedRole(t *testing.T) {
	_, err := NewEmployee(7, "Ann", "Smith", " manager ", "full-time")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestNewEmployeeDefaultsRole(t *testing.T) {
	e, err := NewEmployee(7, " Ann ", "Smith", "", "full-time")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, e.Role)
	assert.Equal(t, "Ann", e.Name)
	assert.Equal(t, int64(7), e.OrganizationID)
}

func TestNewEmployeeRejectsInvalidValues(t *testing.T) {
	_, err := NewEmployee(7, "Ann", "Smith", "boss", "full-time")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = NewEmployee(7, "Ann", "Smith", "manager", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = NewEmployee(7, "", "Smith", "manager", "part-time")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSettersKeepPreviousValueOnError(t *testing.T) {
	e := Employee{Role: RoleManager, EmploymentStatus: EmploymentPartTime}

	assert.Error(t, e.SetRole("intern"))
	assert.Equal(t, RoleManager, e.Role)

	assert.Error(t, e.SetEmploymentStatus("retired"))
	assert.Equal(t, EmploymentPartTime, e.EmploymentStatus)
}

func TestParseBirthdate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	d, err := ParseBirthdate("1990-05-17", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseBirthdate("17/05/1990", now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = ParseBirthdate("2030-01-01", now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
