package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cms-report-api/internal/models"
)

// LecturerRepository reads lecturers.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository constructs the repository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// FindByID returns the lecturer and true, or false when no such lecturer exists.
func (r *LecturerRepository) FindByID(ctx context.Context, id int64) (models.Lecturer, bool, error) {
	const query = `SELECT id, name, email, role, teaching_types FROM lecturers WHERE id = $1`
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lecturer{}, false, nil
		}
		return models.Lecturer{}, false, fmt.Errorf("find lecturer %d: %w", id, err)
	}
	return lecturer, true, nil
}
