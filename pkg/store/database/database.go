// Package database implements the feewise stores on a relational database.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*orgStore
	*feeTypeStore
	*feeItemStore
	*academicYearStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		orgStore:          &orgStore{},
		feeTypeStore:      &feeTypeStore{},
		feeItemStore:      &feeItemStore{},
		academicYearStore: &academicYearStore{},
	}

	return s
}
