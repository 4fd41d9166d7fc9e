package models

import (
	"database/sql"
	"time"
)

// FeeItem represents a concrete charge instance of a fee type, scoped to an
// organization, optionally a branch, and an academic year. Amounts are in
// paise, the smallest currency unit.
type FeeItem struct {
	ID             int64         `db:"id"`
	OrgID          int64         `db:"org_id"`
	BranchID       sql.NullInt64 `db:"branch_id"`
	AcademicYearID int64         `db:"academic_year_id"`
	FeeTypeID      int64         `db:"fee_type_id"`
	Name           string        `db:"name"`
	AmountPaise    int64         `db:"amount_paise"`
	IsMandatory    bool          `db:"is_mandatory"`
	IsDeleted      bool          `db:"is_deleted"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

// FeeItemGrade is a row in the fee item grade set. Grade identifiers are
// opaque at this layer.
type FeeItemGrade struct {
	ID        int64  `db:"id"`
	FeeItemID int64  `db:"fee_item_id"`
	GradeID   string `db:"grade_id"`
}

// FeeItemDetails is a fee item joined with display fields from its fee type,
// branch, and academic year.
type FeeItemDetails struct {
	FeeItem
	FeeTypeName      string         `db:"fee_type_name"`
	BranchName       sql.NullString `db:"branch_name"`
	AcademicYearName string         `db:"academic_year_name"`
}
