package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smartcampus/scs-api/internal/models"
)

// TimetableRepository manages the persisted weekly grid. A generation run
// replaces the whole grid of one department section; substitution mutates
// entries in place.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const timetableColumns = "id, department_id, section_id, day, time_slot, subject, teacher_id, teacher_name, classroom_id, classroom_name, is_substituted, original_teacher_id, created_at, updated_at"

// ListBySection returns the stored grid of a department section in day-major,
// slot-minor order.
func (r *TimetableRepository) ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_entries WHERE department_id = $1 AND section_id = $2 ORDER BY day ASC, time_slot ASC", timetableColumns)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, departmentID, sectionID); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// Replace swaps the stored grid of a department section for the given
// entries. Delete and insert run inside one transaction so a failed insert
// never leaves the section without a timetable.
func (r *TimetableRepository) Replace(ctx context.Context, departmentID, sectionID string, entries []models.TimetableEntry) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin timetable replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM timetable_entries WHERE department_id = $1 AND section_id = $2`, departmentID, sectionID); err != nil {
		return fmt.Errorf("clear timetable entries: %w", err)
	}

	now := time.Now().UTC()
	for i := range entries {
		entry := entries[i]
		entry.DepartmentID = departmentID
		entry.SectionID = sectionID
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}

		if _, err = tx.NamedExecContext(ctx, `INSERT INTO timetable_entries (id, department_id, section_id, day, time_slot, subject, teacher_id, teacher_name, classroom_id, classroom_name, is_substituted, original_teacher_id, created_at) VALUES (:id, :department_id, :section_id, :day, :time_slot, :subject, :teacher_id, :teacher_name, :classroom_id, :classroom_name, :is_substituted, :original_teacher_id, :created_at)`, &entry); err != nil {
			return fmt.Errorf("insert timetable entry: %w", err)
		}
		entries[i] = entry
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit timetable replace: %w", err)
	}
	return nil
}

// ApplySubstitution rewrites every entry of the absent teacher within one
// department section to the substitute. The original teacher reference is
// only set the first time an entry is substituted; chain substitutions keep
// pointing at the very first teacher that was replaced.
func (r *TimetableRepository) ApplySubstitution(ctx context.Context, departmentID, sectionID, absentTeacherID, substituteTeacherID, substituteName, subject string) (int, error) {
	const query = `UPDATE timetable_entries
		SET teacher_id = $4,
		    teacher_name = $5,
		    subject = $6,
		    is_substituted = TRUE,
		    original_teacher_id = COALESCE(original_teacher_id, $3),
		    updated_at = $7
		WHERE department_id = $1 AND section_id = $2 AND teacher_id = $3`

	result, err := r.db.ExecContext(ctx, query, departmentID, sectionID, absentTeacherID, substituteTeacherID, substituteName, subject, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("apply substitution: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("substitution rows affected: %w", err)
	}
	return int(affected), nil
}

// ListTeacherCells returns the occupied (day, time-slot) pairs of one teacher
// within a department section.
func (r *TimetableRepository) ListTeacherCells(ctx context.Context, departmentID, sectionID, teacherID string) ([]models.CellKey, error) {
	const query = `SELECT day, time_slot FROM timetable_entries WHERE department_id = $1 AND section_id = $2 AND teacher_id = $3`
	rows, err := r.db.QueryxContext(ctx, query, departmentID, sectionID, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list teacher cells: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var cells []models.CellKey
	for rows.Next() {
		var cell models.CellKey
		if err := rows.Scan(&cell.Day, &cell.TimeSlot); err != nil {
			return nil, fmt.Errorf("scan teacher cell: %w", err)
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}
