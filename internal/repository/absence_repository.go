package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smartcampus/scs-api/internal/models"
)

// AbsenceRepository persists teacher absence records.
type AbsenceRepository struct {
	db *sqlx.DB
}

// NewAbsenceRepository constructs an AbsenceRepository.
func NewAbsenceRepository(db *sqlx.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

const absenceColumns = "id, teacher_id, department_id, absence_date, reason, substitute_teacher_id, is_handled, created_at"

// Insert stores a new absence record.
func (r *AbsenceRepository) Insert(ctx context.Context, absence *models.TeacherAbsence) error {
	if absence.ID == "" {
		absence.ID = uuid.NewString()
	}
	if absence.CreatedAt.IsZero() {
		absence.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO teacher_absences (id, teacher_id, department_id, absence_date, reason, substitute_teacher_id, is_handled, created_at) VALUES (:id, :teacher_id, :department_id, :absence_date, :reason, :substitute_teacher_id, :is_handled, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, absence); err != nil {
		return fmt.Errorf("insert absence: %w", err)
	}
	return nil
}

// FindByID returns one absence record.
func (r *AbsenceRepository) FindByID(ctx context.Context, id string) (*models.TeacherAbsence, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_absences WHERE id = $1", absenceColumns)
	var absence models.TeacherAbsence
	if err := r.db.GetContext(ctx, &absence, query, id); err != nil {
		return nil, fmt.Errorf("find absence: %w", err)
	}
	return &absence, nil
}

// MarkHandled records the substitute assigned to cover an absence.
func (r *AbsenceRepository) MarkHandled(ctx context.Context, id, substituteTeacherID string) error {
	const query = `UPDATE teacher_absences SET is_handled = TRUE, substitute_teacher_id = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, substituteTeacherID)
	if err != nil {
		return fmt.Errorf("mark absence handled: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("absence rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("absence %s not found", id)
	}
	return nil
}

// ListByDepartment returns absence records for one department, newest first.
// Pass unhandledOnly to restrict the list to absences still waiting for a
// substitute.
func (r *AbsenceRepository) ListByDepartment(ctx context.Context, departmentID string, unhandledOnly bool) ([]models.TeacherAbsence, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_absences WHERE department_id = $1", absenceColumns)
	if unhandledOnly {
		query += " AND is_handled = FALSE"
	}
	query += " ORDER BY absence_date DESC, created_at DESC"

	var absences []models.TeacherAbsence
	if err := r.db.SelectContext(ctx, &absences, query, departmentID); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return absences, nil
}
