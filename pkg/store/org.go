package store

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
)

// OrgStore is a store for organizations and their enabled fee type sets.
//
// The enabled set is a pure many-to-many relation between organizations and
// fee types; it never implies ownership. All mutations run on the caller's
// handler and perform no independent commits, so enabled-set changes paired
// with fee type row changes must share a transaction.
type OrgStore interface {
	CreateOrg(ctx context.Context, h db.Handler, name string) (models.Organization, error)
	GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error)
	ListOrgs(ctx context.Context, h db.Handler) ([]models.Organization, error)
	CreateBranch(ctx context.Context, h db.Handler, org int64, name string) (models.Branch, error)

	// EnabledFeeTypeIDs returns the ids in the organization's enabled set.
	EnabledFeeTypeIDs(ctx context.Context, h db.Handler, org int64) ([]int64, error)
	// IsFeeTypeEnabled reports whether the fee type is in the
	// organization's enabled set.
	IsFeeTypeEnabled(ctx context.Context, h db.Handler, org, feeType int64) (bool, error)
	// AddEnabledFeeTypes unions ids into the organization's enabled set.
	// Adding an id that is already present is a no-op.
	AddEnabledFeeTypes(ctx context.Context, h db.Handler, org int64, ids ...int64) error
	// RemoveEnabledFeeType removes the fee type from the organization's
	// enabled set. Removing an absent id is a no-op.
	RemoveEnabledFeeType(ctx context.Context, h db.Handler, org, feeType int64) error
	// RemoveEnabledFeeTypeForAll removes the fee type from every
	// organization's enabled set.
	RemoveEnabledFeeTypeForAll(ctx context.Context, h db.Handler, feeType int64) error
}
