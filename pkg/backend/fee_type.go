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

// CreateFeeType creates a new fee type. When opts.OwnerOrgID is set the type
// is private to that organization and is enabled for it in the same
// transaction, so the owner never observes an owned-but-disabled type.
func (d *Backend) CreateFeeType(ctx context.Context, name string, opts store.CreateFeeTypeOptions) (models.FeeType, error) {
	name = utils.SanitizeName(name)
	if name == "" {
		return models.FeeType{}, proto.ErrMissingName
	}
	if err := utils.ValidateFeeTypeCode(opts.Code); err != nil {
		return models.FeeType{}, fmt.Errorf("%w: %s", proto.ErrInvalidCode, err)
	}

	var ft models.FeeType
	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			if opts.OwnerOrgID != nil {
				if _, err := d.store.GetOrgByID(ctx, tx, *opts.OwnerOrgID); err != nil {
					return err
				}
			}

			var err error
			ft, err = d.store.CreateFeeType(ctx, tx, name, opts)
			if err != nil {
				return err
			}

			if opts.OwnerOrgID != nil {
				return d.store.AddEnabledFeeTypes(ctx, tx, *opts.OwnerOrgID, ft.ID)
			}
			return nil
		}),
	); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.FeeType{}, proto.ErrOrgNotFound
		}
		return models.FeeType{}, err
	}

	d.logger.Info("fee type created", "name", ft.Name, "id", ft.ID, "private", ft.IsPrivate)
	return ft, nil
}

// FeeType returns a fee type by id.
func (d *Backend) FeeType(ctx context.Context, id int64) (models.FeeType, error) {
	if ft, ok := d.cache.Get(id); ok {
		return ft, nil
	}

	ft, err := d.store.GetFeeTypeByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return models.FeeType{}, proto.ErrFeeTypeNotFound
		}
		return models.FeeType{}, err
	}

	d.cache.Set(id, ft)
	return ft, nil
}

// FeeTypes returns fee types matching the filter.
func (d *Backend) FeeTypes(ctx context.Context, filter store.FeeTypeFilter) ([]models.FeeType, error) {
	fts, err := d.store.ListFeeTypes(ctx, d.db, filter)
	return fts, db.WrapError(err)
}

// EnabledFeeTypes returns the fee types visible to an organization: the union
// of its enabled set and the private types it owns, deleted rows last.
func (d *Backend) EnabledFeeTypes(ctx context.Context, org int64) ([]models.FeeType, error) {
	if _, err := d.Organization(ctx, org); err != nil {
		return nil, err
	}

	fts, err := d.store.ListEnabledFeeTypes(ctx, d.db, org)
	return fts, db.WrapError(err)
}

// UpdateFeeType updates a fee type in place.
func (d *Backend) UpdateFeeType(ctx context.Context, id int64, params store.UpdateFeeTypeParams) (models.FeeType, error) {
	if params.IsEmpty() {
		return models.FeeType{}, proto.ErrNoFields
	}
	if params.Name != nil {
		name := utils.SanitizeName(*params.Name)
		if name == "" {
			return models.FeeType{}, proto.ErrMissingName
		}
		params.Name = &name
	}
	if params.Code != nil {
		if err := utils.ValidateFeeTypeCode(*params.Code); err != nil {
			return models.FeeType{}, fmt.Errorf("%w: %s", proto.ErrInvalidCode, err)
		}
	}

	if _, err := d.FeeType(ctx, id); err != nil {
		return models.FeeType{}, err
	}

	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return d.store.UpdateFeeType(ctx, tx, id, params)
		}),
	); err != nil {
		return models.FeeType{}, err
	}

	d.cache.Delete(id)
	return d.FeeType(ctx, id)
}

// CheckRemoval reports what removing the fee type from the organization would
// do, without doing it. Private types owned by the organization are deleted
// outright; global types are only struck from its enabled set.
func (d *Backend) CheckRemoval(ctx context.Context, org, feeType int64) (proto.RemovalCheck, error) {
	ft, err := d.FeeType(ctx, feeType)
	if err != nil {
		return proto.RemovalCheck{}, err
	}
	if _, err := d.Organization(ctx, org); err != nil {
		return proto.RemovalCheck{}, err
	}

	owner := proto.OwnershipOf(ft.OwnerOrgID)
	if owner.Private && owner.OwnerID != org {
		return proto.RemovalCheck{}, proto.ErrNotOwner
	}

	usage, err := d.store.CountFeeItemsByType(ctx, d.db, org, ft.ID)
	if err != nil {
		return proto.RemovalCheck{}, db.WrapError(err)
	}

	check := proto.RemovalCheck{
		WillDelete:  owner.Private,
		IsPrivate:   owner.Private,
		HasUsage:    usage > 0,
		UsageCount:  usage,
		FeeTypeName: ft.Name,
	}
	check.Message = removalMessage(check)
	return check, nil
}

// RemoveOrDelete removes a fee type from the organization's view. For a
// private type owned by the organization this soft-deletes the row and clears
// it from every enabled set; for a global type it only removes the enabled-set
// row, leaving other organizations untouched. Both paths run in one
// transaction.
func (d *Backend) RemoveOrDelete(ctx context.Context, org, feeType int64) (proto.RemovalCheck, error) {
	check, err := d.CheckRemoval(ctx, org, feeType)
	if err != nil {
		return proto.RemovalCheck{}, err
	}

	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			if check.WillDelete {
				if err := d.store.RemoveEnabledFeeTypeForAll(ctx, tx, feeType); err != nil {
					return err
				}
				return d.store.SetFeeTypeDeleted(ctx, tx, feeType, true)
			}
			return d.store.RemoveEnabledFeeType(ctx, tx, org, feeType)
		}),
	); err != nil {
		return proto.RemovalCheck{}, err
	}

	d.cache.Delete(feeType)
	d.logger.Info("fee type removed", "id", feeType, "org", org, "deleted", check.WillDelete)
	return check, nil
}

// RestoreFeeType undoes a removal. A private type is undeleted and re-enabled
// for its owner, or for orgID when given. A global type is re-added to orgID's
// enabled set; without orgID its row is left as is.
func (d *Backend) RestoreFeeType(ctx context.Context, feeType int64, orgID *int64) (models.FeeType, error) {
	ft, err := d.FeeType(ctx, feeType)
	if err != nil {
		return models.FeeType{}, err
	}

	owner := proto.OwnershipOf(ft.OwnerOrgID)

	var target *int64
	switch {
	case orgID != nil:
		target = orgID
	case owner.Private:
		target = &owner.OwnerID
	}

	if owner.Private && !ft.IsDeleted {
		return models.FeeType{}, proto.ErrNotDeleted
	}

	if err := db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			if owner.Private {
				taken, err := d.store.ActiveFeeTypeNameExists(ctx, tx, owner.OwnerID, ft.Name, ft.ID)
				if err != nil {
					return err
				}
				if taken {
					return proto.ErrNameTaken
				}
				if err := d.store.SetFeeTypeDeleted(ctx, tx, feeType, false); err != nil {
					return err
				}
			}
			if target != nil {
				if _, err := d.store.GetOrgByID(ctx, tx, *target); err != nil {
					return err
				}
				return d.store.AddEnabledFeeTypes(ctx, tx, *target, feeType)
			}
			return nil
		}),
	); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.FeeType{}, proto.ErrOrgNotFound
		}
		return models.FeeType{}, err
	}

	d.cache.Delete(feeType)
	d.logger.Info("fee type restored", "id", feeType)
	return d.FeeType(ctx, feeType)
}

// FeeTypeStats returns aggregate fee type counts, scoped to an organization
// when org is set.
func (d *Backend) FeeTypeStats(ctx context.Context, org *int64) (proto.FeeTypeStats, error) {
	if org != nil {
		if _, err := d.Organization(ctx, *org); err != nil {
			return proto.FeeTypeStats{}, err
		}
	}

	stats, err := d.store.FeeTypeStats(ctx, d.db, org)
	return stats, db.WrapError(err)
}

func removalMessage(c proto.RemovalCheck) string {
	verb := "removed from this organization"
	if c.WillDelete {
		verb = "deleted"
	}
	if !c.HasUsage {
		return fmt.Sprintf("%q will be %s.", c.FeeTypeName, verb)
	}
	noun := "fee items reference"
	if c.UsageCount == 1 {
		noun = "fee item references"
	}
	return fmt.Sprintf("%d %s %q; it will be %s.", c.UsageCount, noun, c.FeeTypeName, verb)
}
