package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/models"
)

func timetableFixtureEntry() models.TimetableEntry {
	return models.TimetableEntry{
		Day:           "Monday",
		TimeSlot:      "09:00-10:00",
		Subject:       "Mathematics",
		TeacherID:     "t-1",
		TeacherName:   "Asha Rao",
		ClassroomID:   "room-1",
		ClassroomName: "Room 101",
	}
}

func TestTimetableRepositoryReplaceRunsInOneTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_entries WHERE department_id = $1 AND section_id = $2")).
		WithArgs("dept-1", "sec-a").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO timetable_entries").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entries := []models.TimetableEntry{timetableFixtureEntry()}
	require.NoError(t, repo.Replace(context.Background(), "dept-1", "sec-a", entries))
	assert.NotEmpty(t, entries[0].ID, "replace must assign ids")
	assert.Equal(t, "dept-1", entries[0].DepartmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_entries WHERE department_id = $1 AND section_id = $2")).
		WithArgs("dept-1", "sec-a").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO timetable_entries").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), "dept-1", "sec-a", []models.TimetableEntry{timetableFixtureEntry()})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryApplySubstitutionKeepsFirstOriginal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("original_teacher_id = COALESCE(original_teacher_id, $3)")).
		WithArgs("dept-1", "sec-a", "t-1", "t-2", "Vikram Iyer", "Physics", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.ApplySubstitution(context.Background(), "dept-1", "sec-a", "t-1", "t-2", "Vikram Iyer", "Physics")
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListBySectionOrdersByDayAndSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "department_id", "section_id", "day", "time_slot", "subject", "teacher_id", "teacher_name", "classroom_id", "classroom_name", "is_substituted", "original_teacher_id", "created_at", "updated_at"}).
		AddRow("e-1", "dept-1", "sec-a", "Monday", "09:00-10:00", "Mathematics", "t-1", "Asha Rao", "room-1", "Room 101", false, nil, time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_entries WHERE department_id = $1 AND section_id = $2 ORDER BY day ASC, time_slot ASC")).
		WithArgs("dept-1", "sec-a").
		WillReturnRows(rows)

	entries, err := repo.ListBySection(context.Background(), "dept-1", "sec-a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Mathematics", entries[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListTeacherCells(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"day", "time_slot"}).
		AddRow("Monday", "09:00-10:00").
		AddRow("Tuesday", "10:00-11:00")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT day, time_slot FROM timetable_entries WHERE department_id = $1 AND section_id = $2 AND teacher_id = $3")).
		WithArgs("dept-1", "sec-a", "t-1").
		WillReturnRows(rows)

	cells, err := repo.ListTeacherCells(context.Background(), "dept-1", "sec-a", "t-1")
	require.NoError(t, err)
	assert.Equal(t, []models.CellKey{
		{Day: "Monday", TimeSlot: "09:00-10:00"},
		{Day: "Tuesday", TimeSlot: "10:00-11:00"},
	}, cells)
	assert.NoError(t, mock.ExpectationsWereMet())
}
