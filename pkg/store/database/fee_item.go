package database

import (
	"context"
	"strings"

	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/models"
	"github.com/feewise/feewise/pkg/proto"
	"github.com/feewise/feewise/pkg/store"
)

var _ store.FeeItemStore = (*feeItemStore)(nil)

type feeItemStore struct{}

const feeItemDetailsQuery = `
	SELECT
	  fi.*,
	  ft.name AS fee_type_name,
	  b.name AS branch_name,
	  ay.name AS academic_year_name
	FROM fee_items fi
	JOIN fee_types ft ON ft.id = fi.fee_type_id
	LEFT JOIN branches b ON b.id = fi.branch_id
	JOIN academic_years ay ON ay.id = fi.academic_year_id
`

// CreateFeeItem implements store.FeeItemStore.
func (s *feeItemStore) CreateFeeItem(ctx context.Context, h db.Handler, params store.CreateFeeItemParams) (models.FeeItem, error) {
	mandatory := true
	if params.IsMandatory != nil {
		mandatory = *params.IsMandatory
	}

	query := h.Rebind(`
		INSERT INTO
		  fee_items (org_id, branch_id, academic_year_id, fee_type_id, name, amount_paise, is_mandatory, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;
	`)

	var id int64
	if err := h.GetContext(ctx, &id, query,
		params.OrgID, params.BranchID, params.AcademicYearID, params.FeeTypeID,
		params.Name, params.AmountPaise, mandatory,
	); err != nil {
		return models.FeeItem{}, err
	}

	if err := s.replaceGrades(ctx, h, id, params.EnabledGrades); err != nil {
		return models.FeeItem{}, err
	}

	var m models.FeeItem
	query = h.Rebind(`SELECT * FROM fee_items WHERE id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}

// GetFeeItemByID implements store.FeeItemStore.
func (*feeItemStore) GetFeeItemByID(ctx context.Context, h db.Handler, id int64) (models.FeeItemDetails, error) {
	var m models.FeeItemDetails
	query := h.Rebind(feeItemDetailsQuery + `WHERE fi.id = ?;`)
	err := h.GetContext(ctx, &m, query, id)
	return m, err
}

// ListFeeItems implements store.FeeItemStore.
func (*feeItemStore) ListFeeItems(ctx context.Context, h db.Handler, filter store.FeeItemFilter) ([]models.FeeItemDetails, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if !filter.IncludeDeleted {
		where = append(where, "fi.is_deleted = false")
	}
	if filter.OrgID != nil {
		where = append(where, "fi.org_id = ?")
		args = append(args, *filter.OrgID)
	}
	if filter.BranchID != nil {
		where = append(where, "fi.branch_id = ?")
		args = append(args, *filter.BranchID)
	}
	if filter.AcademicYearID != nil {
		where = append(where, "fi.academic_year_id = ?")
		args = append(args, *filter.AcademicYearID)
	}
	if filter.FeeTypeID != nil {
		where = append(where, "fi.fee_type_id = ?")
		args = append(args, *filter.FeeTypeID)
	}

	query := h.Rebind(feeItemDetailsQuery + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY fi.created_at DESC, fi.id DESC;
	`)

	var m []models.FeeItemDetails
	err := h.SelectContext(ctx, &m, query, args...)
	return m, err
}

// UpdateFeeItem implements store.FeeItemStore.
func (s *feeItemStore) UpdateFeeItem(ctx context.Context, h db.Handler, id int64, params store.UpdateFeeItemParams) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}

	if params.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *params.Name)
	}
	if params.AmountPaise != nil {
		sets = append(sets, "amount_paise = ?")
		args = append(args, *params.AmountPaise)
	}
	if params.IsMandatory != nil {
		sets = append(sets, "is_mandatory = ?")
		args = append(args, *params.IsMandatory)
	}
	if params.FeeTypeID != nil {
		sets = append(sets, "fee_type_id = ?")
		args = append(args, *params.FeeTypeID)
	}
	if params.BranchID != nil {
		sets = append(sets, "branch_id = ?")
		args = append(args, *params.BranchID)
	}
	if params.AcademicYearID != nil {
		sets = append(sets, "academic_year_id = ?")
		args = append(args, *params.AcademicYearID)
	}

	args = append(args, id)
	query := h.Rebind(`
		UPDATE fee_items
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = ?;
	`)
	if _, err := h.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	if params.EnabledGrades != nil {
		return s.replaceGrades(ctx, h, id, *params.EnabledGrades)
	}

	return nil
}

// DeleteFeeItem implements store.FeeItemStore.
func (*feeItemStore) DeleteFeeItem(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`
		UPDATE fee_items
		SET
		  is_deleted = true,
		  updated_at = CURRENT_TIMESTAMP
		WHERE id = ?;
	`)
	_, err := h.ExecContext(ctx, query, id)
	return err
}

// FeeItemGrades implements store.FeeItemStore.
func (*feeItemStore) FeeItemGrades(ctx context.Context, h db.Handler, item int64) ([]string, error) {
	var grades []string
	query := h.Rebind(`
		SELECT grade_id
		FROM fee_item_grades
		WHERE fee_item_id = ?
		ORDER BY grade_id;
	`)
	err := h.SelectContext(ctx, &grades, query, item)
	return grades, err
}

// CountFeeItemsByType implements store.FeeItemStore.
func (*feeItemStore) CountFeeItemsByType(ctx context.Context, h db.Handler, org, feeType int64) (int64, error) {
	var count int64
	query := h.Rebind(`
		SELECT COUNT(*)
		FROM fee_items
		WHERE
		  org_id = ?
		  AND fee_type_id = ?
		  AND is_deleted = false;
	`)
	err := h.GetContext(ctx, &count, query, org, feeType)
	return count, err
}

// FeeItemStats implements store.FeeItemStore.
func (*feeItemStore) FeeItemStats(ctx context.Context, h db.Handler, filter store.FeeItemStatsFilter) (proto.FeeItemStats, error) {
	where := []string{"fi.is_deleted = false"}
	args := []interface{}{}

	if filter.OrgID != nil {
		where = append(where, "fi.org_id = ?")
		args = append(args, *filter.OrgID)
	}
	if filter.BranchID != nil {
		where = append(where, "fi.branch_id = ?")
		args = append(args, *filter.BranchID)
	}

	var agg struct {
		Total int64   `db:"total"`
		Avg   float64 `db:"avg_amount"`
		Min   int64   `db:"min_amount"`
		Max   int64   `db:"max_amount"`
	}
	query := h.Rebind(`
		SELECT
		  COUNT(*) AS total,
		  COALESCE(AVG(fi.amount_paise), 0) AS avg_amount,
		  COALESCE(MIN(fi.amount_paise), 0) AS min_amount,
		  COALESCE(MAX(fi.amount_paise), 0) AS max_amount
		FROM fee_items fi
		WHERE ` + strings.Join(where, " AND ") + `;
	`)
	if err := h.GetContext(ctx, &agg, query, args...); err != nil {
		return proto.FeeItemStats{}, err
	}

	var byType []proto.FeeTypeCount
	query = h.Rebind(`
		SELECT
		  fi.fee_type_id,
		  ft.name AS fee_type_name,
		  COUNT(*) AS count
		FROM fee_items fi
		JOIN fee_types ft ON ft.id = fi.fee_type_id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY fi.fee_type_id, ft.name
		ORDER BY COUNT(*) DESC, ft.name ASC;
	`)
	if err := h.SelectContext(ctx, &byType, query, args...); err != nil {
		return proto.FeeItemStats{}, err
	}

	return proto.FeeItemStats{
		Total:          agg.Total,
		ByType:         byType,
		AvgAmountPaise: agg.Avg,
		MinAmountPaise: agg.Min,
		MaxAmountPaise: agg.Max,
	}, nil
}

func (*feeItemStore) replaceGrades(ctx context.Context, h db.Handler, item int64, grades []string) error {
	query := h.Rebind(`DELETE FROM fee_item_grades WHERE fee_item_id = ?;`)
	if _, err := h.ExecContext(ctx, query, item); err != nil {
		return err
	}

	query = h.Rebind(`
		INSERT INTO
		  fee_item_grades (fee_item_id, grade_id)
		VALUES
		  (?, ?)
		ON CONFLICT (fee_item_id, grade_id) DO NOTHING;
	`)
	for _, g := range grades {
		if _, err := h.ExecContext(ctx, query, item, g); err != nil {
			return err
		}
	}

	return nil
}
