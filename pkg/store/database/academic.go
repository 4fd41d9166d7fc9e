package database

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/store"
)

var _ store.AcademicYearStore = (*academicYearStore)(nil)

type academicYearStore struct{}

// CreateAcademicYear implements store.AcademicYearStore.
func (s *academicYearStore) CreateAcademicYear(ctx context.Context, h db.Handler, name string) (models.AcademicYear, error) {
	query := h.Rebind(`
		INSERT INTO
		  academic_years (name)
		VALUES
		  (?) RETURNING id;
	`)

	var id int64
	if err := h.GetContext(ctx, &id, query, name); err != nil {
		return models.AcademicYear{}, err
	}

	return s.GetAcademicYearByID(ctx, h, id)
}

// GetAcademicYearByID implements store.AcademicYearStore.
func (*academicYearStore) GetAcademicYearByID(ctx context.Context, h db.Handler, id int64) (models.AcademicYear, error) {
	var m models.AcademicYear
	query := h.Rebind(`SELECT * FROM academic_years WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}
