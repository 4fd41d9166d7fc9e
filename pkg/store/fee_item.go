package store

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
)

// CreateFeeItemParams are the fields for creating a fee item. A nil
// IsMandatory defaults to true.
type CreateFeeItemParams struct {
	OrgID          int64
	BranchID       *int64
	AcademicYearID int64
	FeeTypeID      int64
	Name           string
	AmountPaise    int64
	IsMandatory    *bool
	EnabledGrades  []string
}

// UpdateFeeItemParams are the updatable fee item fields. Nil fields are left
// untouched. EnabledGrades, when set, replaces the whole grade set.
type UpdateFeeItemParams struct {
	Name           *string
	AmountPaise    *int64
	IsMandatory    *bool
	FeeTypeID      *int64
	BranchID       *int64
	AcademicYearID *int64
	EnabledGrades  *[]string
}

// IsEmpty reports whether no fields are set.
func (p UpdateFeeItemParams) IsEmpty() bool {
	return p.Name == nil && p.AmountPaise == nil && p.IsMandatory == nil &&
		p.FeeTypeID == nil && p.BranchID == nil && p.AcademicYearID == nil &&
		p.EnabledGrades == nil
}

// FeeItemFilter scopes a fee item listing.
type FeeItemFilter struct {
	OrgID          *int64
	BranchID       *int64
	AcademicYearID *int64
	FeeTypeID      *int64
	IncludeDeleted bool
}

// FeeItemStatsFilter scopes fee item statistics.
type FeeItemStatsFilter struct {
	OrgID    *int64
	BranchID *int64
}

// FeeItemStore is a store for fee item records.
type FeeItemStore interface {
	CreateFeeItem(ctx context.Context, h db.Handler, params CreateFeeItemParams) (models.FeeItem, error)
	GetFeeItemByID(ctx context.Context, h db.Handler, id int64) (models.FeeItemDetails, error)
	ListFeeItems(ctx context.Context, h db.Handler, filter FeeItemFilter) ([]models.FeeItemDetails, error)
	UpdateFeeItem(ctx context.Context, h db.Handler, id int64, params UpdateFeeItemParams) error
	// DeleteFeeItem soft-deletes the fee item. There is no restore.
	DeleteFeeItem(ctx context.Context, h db.Handler, id int64) error
	FeeItemGrades(ctx context.Context, h db.Handler, item int64) ([]string, error)
	// CountFeeItemsByType counts non-deleted fee items in the organization
	// referencing the fee type.
	CountFeeItemsByType(ctx context.Context, h db.Handler, org, feeType int64) (int64, error)
	FeeItemStats(ctx context.Context, h db.Handler, filter FeeItemStatsFilter) (proto.FeeItemStats, error)
}
