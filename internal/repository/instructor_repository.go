package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/msaedi/instructly-sub007/internal/models"
)

// InstructorRepository reads instructor records. Roster management is owned
// elsewhere; the engine only needs existence and timezone.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// FindByID returns the instructor with the given id.
func (r *InstructorRepository) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	const query = `SELECT id, name, email, timezone, active, created_at, updated_at FROM instructors WHERE id = $1`
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}
