package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cms-report-api/internal/models"
)

// GradeRepository reads grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// FindByStudentAndModule returns the grade for the pair. Duplicate rows are
// not expected; if present the lowest ID wins.
func (r *GradeRepository) FindByStudentAndModule(ctx context.Context, studentID, moduleID int64) (models.Grade, bool, error) {
	const query = `SELECT id, student_id, module_id, grade FROM grades WHERE student_id = $1 AND module_id = $2 ORDER BY id LIMIT 1`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, studentID, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Grade{}, false, nil
		}
		return models.Grade{}, false, fmt.Errorf("find grade: %w", err)
	}
	return grade, true, nil
}
