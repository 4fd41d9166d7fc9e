package database

import (
	"context"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/store"
)

var _ store.OrgStore = (*orgStore)(nil)

type orgStore struct{}

// CreateOrg implements store.OrgStore.
func (s *orgStore) CreateOrg(ctx context.Context, h db.Handler, name string) (models.Organization, error) {
	query := h.Rebind(`
		INSERT INTO
		  organizations (name, updated_at)
		VALUES
		  (?, CURRENT_TIMESTAMP) RETURNING id;
	`)

	var id int64
	if err := h.GetContext(ctx, &id, query, name); err != nil {
		return models.Organization{}, err
	}

	return s.GetOrgByID(ctx, h, id)
}

// GetOrgByID implements store.OrgStore.
func (*orgStore) GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error) {
	var m models.Organization
	query := h.Rebind(`SELECT * FROM organizations WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}

// ListOrgs implements store.OrgStore.
func (*orgStore) ListOrgs(ctx context.Context, h db.Handler) ([]models.Organization, error) {
	var m []models.Organization
	query := h.Rebind(`SELECT * FROM organizations ORDER BY name;`)
	err := h.SelectContext(ctx, &m, query)
	return m, err
}

// CreateBranch implements store.OrgStore.
func (*orgStore) CreateBranch(ctx context.Context, h db.Handler, org int64, name string) (models.Branch, error) {
	query := h.Rebind(`
		INSERT INTO
		  branches (org_id, name)
		VALUES
		  (?, ?) RETURNING id;
	`)

	var id int64
	if err := h.GetContext(ctx, &id, query, org, name); err != nil {
		return models.Branch{}, err
	}

	var m models.Branch
	query = h.Rebind(`SELECT * FROM branches WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}

// EnabledFeeTypeIDs implements store.OrgStore.
func (*orgStore) EnabledFeeTypeIDs(ctx context.Context, h db.Handler, org int64) ([]int64, error) {
	var ids []int64
	query := h.Rebind(`
		SELECT
		  fee_type_id
		FROM
		  organization_fee_types
		WHERE
		  org_id = ?
		ORDER BY
		  fee_type_id;
	`)
	err := h.SelectContext(ctx, &ids, query, org)
	return ids, err
}

// IsFeeTypeEnabled implements store.OrgStore.
func (*orgStore) IsFeeTypeEnabled(ctx context.Context, h db.Handler, org, feeType int64) (bool, error) {
	var enabled bool
	query := h.Rebind(`
		SELECT EXISTS (
		  SELECT 1
		  FROM organization_fee_types
		  WHERE org_id = ? AND fee_type_id = ?
		);
	`)
	err := h.GetContext(ctx, &enabled, query, org, feeType)
	return enabled, err
}

// AddEnabledFeeTypes implements store.OrgStore.
//
// The unique constraint on (org_id, fee_type_id) makes this naturally
// idempotent and safe under concurrent transactions.
func (*orgStore) AddEnabledFeeTypes(ctx context.Context, h db.Handler, org int64, ids ...int64) error {
	query := h.Rebind(`
		INSERT INTO
		  organization_fee_types (org_id, fee_type_id)
		VALUES
		  (?, ?)
		ON CONFLICT (org_id, fee_type_id) DO NOTHING;
	`)

	for _, id := range ids {
		if _, err := h.ExecContext(ctx, query, org, id); err != nil {
			return err
		}
	}

	return nil
}

// RemoveEnabledFeeType implements store.OrgStore.
func (*orgStore) RemoveEnabledFeeType(ctx context.Context, h db.Handler, org, feeType int64) error {
	query := h.Rebind(`
		DELETE FROM organization_fee_types
		WHERE
		  org_id = ?
		  AND fee_type_id = ?;
	`)
	_, err := h.ExecContext(ctx, query, org, feeType)
	return err
}

// RemoveEnabledFeeTypeForAll implements store.OrgStore.
func (*orgStore) RemoveEnabledFeeTypeForAll(ctx context.Context, h db.Handler, feeType int64) error {
	query := h.Rebind(`
		DELETE FROM organization_fee_types
		WHERE
		  fee_type_id = ?;
	`)
	_, err := h.ExecContext(ctx, query, feeType)
	return err
}
