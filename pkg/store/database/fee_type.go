package database

import (
	"context"
	"strings"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/store"
)

var _ store.FeeTypeStore = (*feeTypeStore)(nil)

type feeTypeStore struct{}

// CreateFeeType implements store.FeeTypeStore.
func (s *feeTypeStore) CreateFeeType(ctx context.Context, h db.Handler, name string, opts store.CreateFeeTypeOptions) (models.FeeType, error) {
	isPrivate := opts.IsPrivate || opts.OwnerOrgID != nil

	query := h.Rebind(`
		INSERT INTO
		  fee_types (owner_org_id, code, name, description, is_private, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;
	`)

	var id int64
	if err := h.GetContext(ctx, &id, query,
		opts.OwnerOrgID, nullableString(opts.Code), name, nullableString(opts.Description), isPrivate,
	); err != nil {
		return models.FeeType{}, err
	}

	return s.GetFeeTypeByID(ctx, h, id)
}

// GetFeeTypeByID implements store.FeeTypeStore.
func (*feeTypeStore) GetFeeTypeByID(ctx context.Context, h db.Handler, id int64) (models.FeeType, error) {
	var m models.FeeType
	query := h.Rebind(`SELECT * FROM fee_types WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}

// ListFeeTypes implements store.FeeTypeStore.
func (*feeTypeStore) ListFeeTypes(ctx context.Context, h db.Handler, filter store.FeeTypeFilter) ([]models.FeeType, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if !filter.IncludeDeleted {
		where = append(where, "is_deleted = false")
	}
	if filter.OrgID != nil {
		where = append(where, "(owner_org_id IS NULL OR owner_org_id = ?)")
		args = append(args, *filter.OrgID)
	}
	if !filter.IncludePrivate {
		where = append(where, "is_private = false")
	}

	query := h.Rebind(`
		SELECT *
		FROM fee_types
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC;
	`)

	var m []models.FeeType
	err := h.SelectContext(ctx, &m, query, args...)
	return m, err
}

// ListEnabledFeeTypes implements store.FeeTypeStore.
//
// The result is the union of the organization's enabled set and the fee
// types it owns, so deleted private types remain visible for restore.
func (*feeTypeStore) ListEnabledFeeTypes(ctx context.Context, h db.Handler, org int64) ([]models.FeeType, error) {
	var m []models.FeeType
	query := h.Rebind(`
		SELECT ft.*
		FROM fee_types ft
		WHERE
		  ft.id IN (
		    SELECT fee_type_id
		    FROM organization_fee_types
		    WHERE org_id = ?
		  )
		  OR ft.owner_org_id = ?
		ORDER BY ft.is_deleted ASC, ft.name ASC;
	`)
	err := h.SelectContext(ctx, &m, query, org, org)
	return m, err
}

// UpdateFeeType implements store.FeeTypeStore.
func (*feeTypeStore) UpdateFeeType(ctx context.Context, h db.Handler, id int64, params store.UpdateFeeTypeParams) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}

	if params.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *params.Name)
	}
	if params.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, *params.Code)
	}
	if params.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *params.Description)
	}
	if params.IsPrivate != nil {
		sets = append(sets, "is_private = ?")
		args = append(args, *params.IsPrivate)
	}

	args = append(args, id)
	query := h.Rebind(`
		UPDATE fee_types
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = ?;
	`)
	_, err := h.ExecContext(ctx, query, args...)
	return err
}

// SetFeeTypeDeleted implements store.FeeTypeStore.
func (*feeTypeStore) SetFeeTypeDeleted(ctx context.Context, h db.Handler, id int64, deleted bool) error {
	var query string
	if deleted {
		query = h.Rebind(`
			UPDATE fee_types
			SET
			  is_deleted = true,
			  deleted_at = CURRENT_TIMESTAMP,
			  updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;
		`)
	} else {
		query = h.Rebind(`
			UPDATE fee_types
			SET
			  is_deleted = false,
			  deleted_at = NULL,
			  updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;
		`)
	}
	_, err := h.ExecContext(ctx, query, id)
	return err
}

// ActiveFeeTypeNameExists implements store.FeeTypeStore.
func (*feeTypeStore) ActiveFeeTypeNameExists(ctx context.Context, h db.Handler, owner int64, name string, excludeID int64) (bool, error) {
	var exists bool
	query := h.Rebind(`
		SELECT EXISTS (
		  SELECT 1
		  FROM fee_types
		  WHERE
		    COALESCE(owner_org_id, 0) = ?
		    AND name = ?
		    AND is_deleted = false
		    AND id <> ?
		);
	`)
	err := h.GetContext(ctx, &exists, query, owner, name, excludeID)
	return exists, err
}

// FeeTypeStats implements store.FeeTypeStore.
func (*feeTypeStore) FeeTypeStats(ctx context.Context, h db.Handler, org *int64) (proto.FeeTypeStats, error) {
	var stats proto.FeeTypeStats
	if org != nil {
		query := h.Rebind(`
			SELECT
			  COUNT(*) AS total,
			  COALESCE(SUM(CASE WHEN is_private THEN 1 ELSE 0 END), 0) AS private,
			  COALESCE(SUM(CASE WHEN is_private THEN 0 ELSE 1 END), 0) AS global,
			  COALESCE(SUM(CASE WHEN owner_org_id = ? THEN 1 ELSE 0 END), 0) AS org_owned
			FROM fee_types
			WHERE
			  is_deleted = false
			  AND (owner_org_id IS NULL OR owner_org_id = ?);
		`)
		err := h.GetContext(ctx, &stats, query, *org, *org)
		return stats, err
	}

	query := h.Rebind(`
		SELECT
		  COUNT(*) AS total,
		  COALESCE(SUM(CASE WHEN is_private THEN 1 ELSE 0 END), 0) AS private,
		  COALESCE(SUM(CASE WHEN is_private THEN 0 ELSE 1 END), 0) AS global,
		  0 AS org_owned
		FROM fee_types
		WHERE is_deleted = false;
	`)
	err := h.GetContext(ctx, &stats, query)
	return stats, err
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
