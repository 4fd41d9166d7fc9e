package store

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
)

// AcademicYearStore is a store for academic years.
type AcademicYearStore interface {
	CreateAcademicYear(ctx context.Context, h db.Handler, name string) (models.AcademicYear, error)
	GetAcademicYearByID(ctx context.Context, h db.Handler, id int64) (models.AcademicYear, error)
}
