package backend

import (
	"context"
	"errors"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/utils"
)

// CreateOrganization creates a new organization.
func (d *Backend) CreateOrganization(ctx context.Context, name string) (models.Organization, error) {
	name = utils.SanitizeName(name)
	if name == "" {
		return models.Organization{}, proto.ErrMissingName
	}

	org, err := d.store.CreateOrg(ctx, d.db, name)
	return org, db.WrapError(err)
}

// Organization returns an organization by id.
func (d *Backend) Organization(ctx context.Context, id int64) (models.Organization, error) {
	org, err := d.store.GetOrgByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return models.Organization{}, proto.ErrOrgNotFound
		}
		return models.Organization{}, err
	}
	return org, nil
}

// Organizations returns all organizations ordered by name.
func (d *Backend) Organizations(ctx context.Context) ([]models.Organization, error) {
	orgs, err := d.store.ListOrgs(ctx, d.db)
	return orgs, db.WrapError(err)
}

// CreateBranch creates a branch for an organization.
func (d *Backend) CreateBranch(ctx context.Context, org int64, name string) (models.Branch, error) {
	name = utils.SanitizeName(name)
	if name == "" {
		return models.Branch{}, proto.ErrMissingName
	}
	if _, err := d.Organization(ctx, org); err != nil {
		return models.Branch{}, err
	}

	b, err := d.store.CreateBranch(ctx, d.db, org, name)
	return b, db.WrapError(err)
}

// CreateAcademicYear creates an academic year.
func (d *Backend) CreateAcademicYear(ctx context.Context, name string) (models.AcademicYear, error) {
	name = utils.SanitizeName(name)
	if name == "" {
		return models.AcademicYear{}, proto.ErrMissingName
	}

	ay, err := d.store.CreateAcademicYear(ctx, d.db, name)
	return ay, db.WrapError(err)
}

// AcademicYear returns an academic year by id.
func (d *Backend) AcademicYear(ctx context.Context, id int64) (models.AcademicYear, error) {
	ay, err := d.store.GetAcademicYearByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return models.AcademicYear{}, proto.ErrAcademicYearNotFound
		}
		return models.AcademicYear{}, err
	}
	return ay, nil
}

// EnableFeeTypes unions the given fee type ids into the organization's
// enabled set. Ids already present are left alone.
func (d *Backend) EnableFeeTypes(ctx context.Context, org int64, ids ...int64) error {
	if _, err := d.Organization(ctx, org); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := d.FeeType(ctx, id); err != nil {
			return err
		}
	}

	return db.WrapError(
		d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			return d.store.AddEnabledFeeTypes(ctx, tx, org, ids...)
		}),
	)
}

// EnabledFeeTypeIDs returns the ids in the organization's enabled set.
func (d *Backend) EnabledFeeTypeIDs(ctx context.Context, org int64) ([]int64, error) {
	if _, err := d.Organization(ctx, org); err != nil {
		return nil, err
	}

	ids, err := d.store.EnabledFeeTypeIDs(ctx, d.db, org)
	return ids, db.WrapError(err)
}
