package repository

import (
	"context"
	"errors"
	"time"

	"users_manager_backend/internal/directory/domain"
	"users_manager_backend/platform/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	db DBTX
}

func New(db DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateOrganization(ctx context.Context, name string) (domain.Organization, error) {
	var org domain.Organization
	err := r.db.QueryRow(ctx, `
    INSERT INTO organization (name)
    VALUES ($1)
    RETURNING id, name
  `, name).Scan(&org.ID, &org.Name)
	if err != nil {
		return domain.Organization{}, mapPostgresError(err, "create organization", nil)
	}
	return org, nil
}

func (r *Repository) GetOrganization(ctx context.Context, id int64) (domain.Organization, error) {
	var org domain.Organization
	err := r.db.QueryRow(ctx, `
    SELECT id, name
    FROM organization
    WHERE id = $1
  `, id).Scan(&org.ID, &org.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Organization{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return domain.Organization{}, mapPostgresError(err, "get organization", nil)
	}
	return org, nil
}

// DeleteOrganization fails with a conflict while employees still reference it.
func (r *Repository) DeleteOrganization(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organization WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError(err, "delete organization", apperr.Conflict("organization still has employees"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("organization not found")
	}
	return nil
}

func (r *Repository) ListEmployees(ctx context.Context, organizationID int64) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, name, surname, birthdate, role, employment_status, organization_id
    FROM employee
    WHERE organization_id = $1
    ORDER BY id
  `, organizationID)
	if err != nil {
		return nil, mapPostgresError(err, "list employees", nil)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, mapPostgresError(err, "list employees", nil)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError(err, "list employees", nil)
	}
	return employees, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	row := r.db.QueryRow(ctx, `
    INSERT INTO employee (name, surname, birthdate, role, employment_status, organization_id)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, name, surname, birthdate, role, employment_status, organization_id
  `, e.Name, e.Surname, e.Birthdate, string(e.Role), string(e.EmploymentStatus), e.OrganizationID)

	created, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, mapPostgresError(err, "create employee", apperr.NotFound("organization not found"))
	}
	return created, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (domain.Employee, error) {
	row := r.db.QueryRow(ctx, `
    SELECT id, name, surname, birthdate, role, employment_status, organization_id
    FROM employee
    WHERE id = $1
  `, id)

	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Employee{}, apperr.NotFound("employee not found")
	}
	if err != nil {
		return domain.Employee{}, mapPostgresError(err, "get employee", nil)
	}
	return e, nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	row := r.db.QueryRow(ctx, `
    UPDATE employee
    SET name = $2, surname = $3, birthdate = $4, role = $5, employment_status = $6
    WHERE id = $1
    RETURNING id, name, surname, birthdate, role, employment_status, organization_id
  `, e.ID, e.Name, e.Surname, e.Birthdate, string(e.Role), string(e.EmploymentStatus))

	updated, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Employee{}, apperr.NotFound("employee not found")
	}
	if err != nil {
		return domain.Employee{}, mapPostgresError(err, "update employee", nil)
	}
	return updated, nil
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employee WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError(err, "delete employee", nil)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("employee not found")
	}
	return nil
}

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var (
		e         domain.Employee
		birthdate *time.Time
		role      string
		status    string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Surname, &birthdate, &role, &status, &e.OrganizationID); err != nil {
		return domain.Employee{}, err
	}
	e.Birthdate = birthdate
	e.Role = domain.Role(role)
	e.EmploymentStatus = domain.EmploymentStatus(status)
	return e, nil
}

// mapPostgresError converts driver errors to application errors.
// onForeignKey is returned for foreign key violations when set.
func mapPostgresError(err error, op string, onForeignKey *apperr.Error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperr.Wrap(apperr.KindInternal, "database error", err).WithOp(op)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return apperr.Wrap(apperr.KindConflict, "record already exists", err).WithOp(op)
	case pgerrcode.ForeignKeyViolation:
		if onForeignKey != nil {
			onForeignKey.Err = err
			return onForeignKey.WithOp(op)
		}
		return apperr.Wrap(apperr.KindConflict, "record is referenced by other records", err).WithOp(op)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
		return apperr.Wrap(apperr.KindValidation, "value rejected by database constraint", err).
			WithOp(op).
			WithDetails(map[string]string{"constraint": pgErr.ConstraintName})
	default:
		return apperr.Wrap(apperr.KindInternal, "database error", err).WithOp(op)
	}
}
