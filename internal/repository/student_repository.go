package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cms-report-api/internal/models"
)

// StudentRepository reads students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID returns the student and true, or false when no such student exists.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (models.Student, bool, error) {
	const query = `SELECT id, name, email, course_id FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, false, nil
		}
		return models.Student{}, false, fmt.Errorf("find student %d: %w", id, err)
	}
	return student, true, nil
}
