package service

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"users_manager_backend/internal/directory/domain"
	"users_manager_backend/internal/directory/repository"
	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/logger"
	"users_manager_backend/platform/patch"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeColumns = []string{"id", "name", "surname", "birthdate", "role", "employment_status", "organization_id"}

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := New(repository.New(mock), logger.Discard())
	svc.now = func() time.Time { return fixedNow }
	return mock, svc
}

func TestAddEmployeeInvalidRoleIssuesNoSQL(t *testing.T) {
	mock, svc := newService(t)

	_, err := svc.AddEmployee(context.Background(), 1, NewEmployee{
		Name:             "Ann",
		Surname:          "Smith",
		Role:             "boss",
		EmploymentStatus: "full-time",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEmployeeInvalidStatusIssuesNoSQL(t *testing.T) {
	mock, svc := newService(t)

	_, err := svc.AddEmployee(context.Background(), 1, NewEmployee{
		Name:             "Ann",
		Surname:          "Smith",
		EmploymentStatus: "freelance",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEmployeeDefaultsRole(t *testing.T) {
	mock, svc := newService(t)
	born := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employee")).
		WithArgs("Ann", "Smith", pgxmock.AnyArg(), "employee", "part-time", int64(1)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(10), "Ann", "Smith", &born, "employee", "part-time", int64(1)))

	e, err := svc.AddEmployee(context.Background(), 1, NewEmployee{
		Name:             "Ann",
		Surname:          "Smith",
		Birthdate:        "1990-05-17",
		EmploymentStatus: "part-time",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, e.Role)
	assert.Equal(t, int64(10), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrganizationIncludesEmployees(t *testing.T) {
	mock, svc := newService(t)
	born := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM organization")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "acme"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM employee")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(10), "Ann", "Smith", &born, "manager", "full-time", int64(1)))

	org, err := svc.GetOrganization(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "acme", org.Name)
	require.Len(t, org.Employees, 1)
	assert.Equal(t, "Ann", org.Employees[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployeeValidatesBeforeLoading(t *testing.T) {
	tests := []struct {
		name  string
		patch EmployeePatch
	}{
		{name: "empty", patch: EmployeePatch{}},
		{name: "bad role", patch: EmployeePatch{Role: patch.Value("boss")}},
		{name: "bad status", patch: EmployeePatch{EmploymentStatus: patch.Value("retired")}},
		{name: "null role", patch: EmployeePatch{Role: patch.Null[string]()}},
		{name: "future birthdate", patch: EmployeePatch{Birthdate: patch.Value("2099-01-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, svc := newService(t)

			_, err := svc.UpdateEmployee(context.Background(), 10, tt.patch)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateEmployeeAppliesOnlySetFields(t *testing.T) {
	mock, svc := newService(t)
	born := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employee")).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(10), "Ann", "Smith", &born, "employee", "full-time", int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employee")).
		WithArgs(int64(10), "Ann", "Smith", pgxmock.AnyArg(), "manager", "full-time").
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(10), "Ann", "Smith", &born, "manager", "full-time", int64(1)))

	e, err := svc.UpdateEmployee(context.Background(), 10, EmployeePatch{Role: patch.Value("manager")})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, e.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseFailuresAreLogged(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var buf bytes.Buffer
	svc := New(repository.New(mock), logger.NewWithWriter("production", &buf))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employee")).
		WithArgs(int64(10)).
		WillReturnError(errors.New("connection reset by peer"))

	err = svc.DeleteEmployee(context.Background(), 10)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.Contains(t, buf.String(), "database_error")
	assert.Contains(t, buf.String(), "delete_employee")
}
