// Package backend implements the feewise fee-type and fee-item lifecycle
// engine on top of the store layer.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/feewise/feewise/pkg/config"
	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/store"
)

// Backend handles fee type, fee item, and organization membership management
// and operations.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache
}

// New returns a new feewise backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  store.FromContext(ctx),
		logger: logger,
	}

	b.cache = newCache(b, 1000)

	return b
}
