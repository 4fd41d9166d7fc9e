package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/store"
	"github.com/feewise/feewise/pkg/utils"
)

// CreateFeeItem creates a fee item for an organization. The referenced fee
// type, academic year, and organization must exist; the amount is in paise
// and must not be negative.
func (d *Backend) CreateFeeItem(ctx context.Context, params store.CreateFeeItemParams) (models.FeeItemDetails, error) {
	params.Name = utils.SanitizeName(params.Name)
	if params.Name == "" {
		return models.FeeItemDetails{}, proto.ErrMissingName
	}
	if params.AmountPaise < 0 {
		return models.FeeItemDetails{}, proto.ErrInvalidAmount
	}
	for _, g := range params.EnabledGrades {
		if err := utils.ValidateGrade(g); err != nil {
			return models.FeeItemDetails{}, fmt.Errorf("%w: %s", proto.ErrInvalidGrade, err)
		}
	}

	if _, err := d.Organization(ctx, params.OrgID); err != nil {
		return models.FeeItemDetails{}, err
	}
	ft, err := d.FeeType(ctx, params.FeeTypeID)
	if err != nil {
		return models.FeeItemDetails{}, err
	}

	owner := proto.OwnershipOf(ft.OwnerOrgID)
	if owner.Private && owner.OwnerID != params.OrgID {
		return models.FeeItemDetails{}, proto.ErrNotOwner
	}

	if _, err := d.store.GetAcademicYearByID(ctx, d.db, params.AcademicYearID); err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return models.FeeItemDetails{}, proto.ErrAcademicYearNotFound
		}
		return models.FeeItemDetails{}, err
	}

	var item models.FeeItem
	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			var err error
			item, err = d.store.CreateFeeItem(ctx, tx, params)
			return err
		}),
	); err != nil {
		return models.FeeItemDetails{}, err
	}

	d.logger.Info("fee item created", "name", item.Name, "id", item.ID, "org", params.OrgID)
	return d.FeeItem(ctx, item.ID)
}

// FeeItem returns a fee item with its joined fee type, branch, and academic
// year names.
func (d *Backend) FeeItem(ctx context.Context, id int64) (models.FeeItemDetails, error) {
	item, err := d.store.GetFeeItemByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return models.FeeItemDetails{}, proto.ErrFeeItemNotFound
		}
		return models.FeeItemDetails{}, err
	}
	return item, nil
}

// FeeItems returns fee items matching the filter.
func (d *Backend) FeeItems(ctx context.Context, filter store.FeeItemFilter) ([]models.FeeItemDetails, error) {
	items, err := d.store.ListFeeItems(ctx, d.db, filter)
	return items, db.WrapError(err)
}

// FeeItemGrades returns the grades a fee item applies to.
func (d *Backend) FeeItemGrades(ctx context.Context, id int64) ([]string, error) {
	if _, err := d.FeeItem(ctx, id); err != nil {
		return nil, err
	}

	grades, err := d.store.FeeItemGrades(ctx, d.db, id)
	return grades, db.WrapError(err)
}

// UpdateFeeItem updates a fee item in place.
func (d *Backend) UpdateFeeItem(ctx context.Context, id int64, params store.UpdateFeeItemParams) (models.FeeItemDetails, error) {
	if params.IsEmpty() {
		return models.FeeItemDetails{}, proto.ErrNoFields
	}
	if params.Name != nil {
		name := utils.SanitizeName(*params.Name)
		if name == "" {
			return models.FeeItemDetails{}, proto.ErrMissingName
		}
		params.Name = &name
	}
	if params.AmountPaise != nil && *params.AmountPaise < 0 {
		return models.FeeItemDetails{}, proto.ErrInvalidAmount
	}
	if params.EnabledGrades != nil {
		for _, g := range *params.EnabledGrades {
			if err := utils.ValidateGrade(g); err != nil {
				return models.FeeItemDetails{}, fmt.Errorf("%w: %s", proto.ErrInvalidGrade, err)
			}
		}
	}

	item, err := d.FeeItem(ctx, id)
	if err != nil {
		return models.FeeItemDetails{}, err
	}

	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			if params.FeeTypeID != nil {
				ft, err := d.store.GetFeeTypeByID(ctx, tx, *params.FeeTypeID)
				if err != nil {
					if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
						return proto.ErrFeeTypeNotFound
					}
					return err
				}
				owner := proto.OwnershipOf(ft.OwnerOrgID)
				if owner.Private && owner.OwnerID != item.OrgID {
					return proto.ErrNotOwner
				}
			}
			if params.AcademicYearID != nil {
				if _, err := d.store.GetAcademicYearByID(ctx, tx, *params.AcademicYearID); err != nil {
					if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
						return proto.ErrAcademicYearNotFound
					}
					return err
				}
			}
			return d.store.UpdateFeeItem(ctx, tx, id, params)
		}),
	); err != nil {
		return models.FeeItemDetails{}, err
	}

	return d.FeeItem(ctx, id)
}

// DeleteFeeItem soft-deletes a fee item. Deleted fee items cannot be
// restored.
func (d *Backend) DeleteFeeItem(ctx context.Context, id int64) error {
	if _, err := d.FeeItem(ctx, id); err != nil {
		return err
	}

	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return d.store.DeleteFeeItem(ctx, tx, id)
		}),
	); err != nil {
		return err
	}

	d.logger.Info("fee item deleted", "id", id)
	return nil
}

// FeeItemStats returns aggregate fee item figures, scoped by the filter.
func (d *Backend) FeeItemStats(ctx context.Context, filter store.FeeItemStatsFilter) (proto.FeeItemStats, error) {
	if filter.OrgID != nil {
		if _, err := d.Organization(ctx, *filter.OrgID); err != nil {
			return proto.FeeItemStats{}, err
		}
	}

	stats, err := d.store.FeeItemStats(ctx, d.db, filter)
	return stats, db.WrapError(err)
}
