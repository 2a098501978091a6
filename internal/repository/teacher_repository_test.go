package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "department_id", "name", "subject", "email", "availability", "is_absent", "absent_date", "created_at"}).
		AddRow("t-1", "dept-1", "Asha Rao", "Mathematics", nil, pq.StringArray{"Monday", "Tuesday"}, false, nil, time.Now())
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, department_id, name, subject, email, availability, is_absent, absent_date, created_at FROM teachers WHERE 1=1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListFiltersByDepartmentAndAbsence(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	absent := false
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE 1=1 AND department_id = $1 AND is_absent = $2")).
		WithArgs("dept-1", false).
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1 AND department_id = $1 AND is_absent = $2")).
		WithArgs("dept-1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, _, err := repo.List(context.Background(), models.TeacherFilter{DepartmentID: "dept-1", Absent: &absent})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"Monday", "Tuesday"}, []string(list[0].Availability))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "dept-1", "Asha Rao", "Mathematics", nil, sqlmock.AnyArg(), false, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{
		DepartmentID: "dept-1",
		Name:         "Asha Rao",
		Subject:      "Mathematics",
		Availability: pq.StringArray{"Monday"},
	}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.NotEmpty(t, teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositorySetAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE teachers SET is_absent = $2, absent_date = $3 WHERE id = $1")).
		WithArgs("t-1", true, &date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetAbsent(context.Background(), "t-1", true, &date))
	assert.NoError(t, mock.ExpectationsWereMet())
}
