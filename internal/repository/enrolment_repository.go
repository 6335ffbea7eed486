package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cms-report-api/internal/models"
)

// EnrolmentRepository reads enrolments.
type EnrolmentRepository struct {
	db *sqlx.DB
}

// NewEnrolmentRepository constructs the repository.
func NewEnrolmentRepository(db *sqlx.DB) *EnrolmentRepository {
	return &EnrolmentRepository{db: db}
}

// ListByStudent returns a student's enrolments in ID order.
func (r *EnrolmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrolment, error) {
	const query = `SELECT id, student_id, module_id, status FROM enrolments WHERE student_id = $1 ORDER BY id`
	var enrolments []models.Enrolment
	if err := r.db.SelectContext(ctx, &enrolments, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrolments by student: %w", err)
	}
	return enrolments, nil
}

// CountByModule returns how many enrolments reference the module.
func (r *EnrolmentRepository) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM enrolments WHERE module_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, moduleID); err != nil {
		return 0, fmt.Errorf("count enrolments by module: %w", err)
	}
	return total, nil
}
