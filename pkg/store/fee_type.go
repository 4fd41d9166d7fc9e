package store

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
)

// CreateFeeTypeOptions are the optional fields for creating a fee type.
type CreateFeeTypeOptions struct {
	OwnerOrgID  *int64
	Code        string
	Description string
	IsPrivate   bool
}

// UpdateFeeTypeParams are the updatable fee type fields. Nil fields are left
// untouched.
type UpdateFeeTypeParams struct {
	Name        *string
	Code        *string
	Description *string
	IsPrivate   *bool
}

// IsEmpty reports whether no fields are set.
func (p UpdateFeeTypeParams) IsEmpty() bool {
	return p.Name == nil && p.Code == nil && p.Description == nil && p.IsPrivate == nil
}

// FeeTypeFilter scopes a fee type listing. When OrgID is set the listing
// includes that organization's private fee types next to the global ones.
type FeeTypeFilter struct {
	OrgID          *int64
	IncludeDeleted bool
	IncludePrivate bool
}

// FeeTypeStore is a store for fee type records.
type FeeTypeStore interface {
	CreateFeeType(ctx context.Context, h db.Handler, name string, opts CreateFeeTypeOptions) (models.FeeType, error)
	GetFeeTypeByID(ctx context.Context, h db.Handler, id int64) (models.FeeType, error)
	ListFeeTypes(ctx context.Context, h db.Handler, filter FeeTypeFilter) ([]models.FeeType, error)
	// ListEnabledFeeTypes returns the union of the organization's enabled
	// set and the fee types it owns, deleted rows last.
	ListEnabledFeeTypes(ctx context.Context, h db.Handler, org int64) ([]models.FeeType, error)
	UpdateFeeType(ctx context.Context, h db.Handler, id int64, params UpdateFeeTypeParams) error
	// SetFeeTypeDeleted flips the soft-delete flag, stamping or clearing
	// deleted_at accordingly.
	SetFeeTypeDeleted(ctx context.Context, h db.Handler, id int64, deleted bool) error
	// ActiveFeeTypeNameExists reports whether a non-deleted fee type other
	// than excludeID uses name within the owner organization. A zero owner
	// means the global namespace.
	ActiveFeeTypeNameExists(ctx context.Context, h db.Handler, owner int64, name string, excludeID int64) (bool, error)
	FeeTypeStats(ctx context.Context, h db.Handler, org *int64) (proto.FeeTypeStats, error)
}
