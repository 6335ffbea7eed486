package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cms-report-api/internal/models"
)

const moduleColumns = `id, course_id, name, lecturer_id, room`

// ModuleRepository reads modules.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// ListByCourse returns the modules of a course in ID order.
func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Module, error) {
	const query = `SELECT ` + moduleColumns + ` FROM modules WHERE course_id = $1 ORDER BY id`
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, query, courseID); err != nil {
		return nil, fmt.Errorf("list modules by course: %w", err)
	}
	return modules, nil
}

// ListByLecturer returns the modules taught by a lecturer in ID order.
func (r *ModuleRepository) ListByLecturer(ctx context.Context, lecturerID int64) ([]models.Module, error) {
	const query = `SELECT ` + moduleColumns + ` FROM modules WHERE lecturer_id = $1 ORDER BY id`
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, query, lecturerID); err != nil {
		return nil, fmt.Errorf("list modules by lecturer: %w", err)
	}
	return modules, nil
}

// FindByID returns the module and true, or false when no such module exists.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (models.Module, bool, error) {
	const query = `SELECT ` + moduleColumns + ` FROM modules WHERE id = $1`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Module{}, false, nil
		}
		return models.Module{}, false, fmt.Errorf("find module %d: %w", id, err)
	}
	return module, true, nil
}
