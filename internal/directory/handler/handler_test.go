package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"users_manager_backend/internal/directory/repository"
	"users_manager_backend/internal/directory/service"
	"users_manager_backend/platform/logger"
	"users_manager_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (pgxmock.PgxPoolIface, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	h := New(service.New(repository.New(mock), logger.Discard()), validator.New())
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/directory"))
	return mock, engine
}

func do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrganization(t *testing.T) {
	mock, engine := setup(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO organization")).
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "acme"))

	rec := do(engine, http.MethodPost, "/directory/organizations", `{"name":"acme"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"acme","employees":[]}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidIDIsRejected(t *testing.T) {
	mock, engine := setup(t)

	rec := do(engine, http.MethodGet, "/directory/organizations/abc", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrganizationWithEmployeesConflicts(t *testing.T) {
	mock, engine := setup(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM organization")).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	rec := do(engine, http.MethodDelete, "/directory/organizations/1", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"organization still has employees"}`, rec.Body.String())
}

func TestAddEmployee(t *testing.T) {
	mock, engine := setup(t)
	born := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employee")).
		WithArgs("Ann", "Smith", pgxmock.AnyArg(), "manager", "full-time", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "surname", "birthdate", "role", "employment_status", "organization_id"}).
			AddRow(int64(10), "Ann", "Smith", &born, "manager", "full-time", int64(1)))

	rec := do(engine, http.MethodPost, "/directory/organizations/1/employees",
		`{"name":"Ann","surname":"Smith","birthdate":"1990-05-17","role":"manager","employment_status":"full-time"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id": 10,
		"name": "Ann",
		"surname": "Smith",
		"birthdate": "1990-05-17",
		"role": "manager",
		"employment_status": "full-time",
		"organization_id": 1
	}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEmployeeRejectsUnknownRole(t *testing.T) {
	mock, engine := setup(t)

	rec := do(engine, http.MethodPost, "/directory/organizations/1/employees",
		`{"name":"Ann","surname":"Smith","role":"boss","employment_status":"full-time"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployeeRejectsUnknownStatus(t *testing.T) {
	mock, engine := setup(t)

	rec := do(engine, http.MethodPatch, "/directory/employees/10", `{"employment_status":"retired"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingEmployee(t *testing.T) {
	mock, engine := setup(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employee")).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	rec := do(engine, http.MethodDelete, "/directory/employees/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
