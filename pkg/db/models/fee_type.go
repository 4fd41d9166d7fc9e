package models

import (
	"database/sql"
	"time"
)

// FeeType represents a category of billable charge. A fee type is either
// global (owned by no organization and shared across all tenants) or private
// (owned by exactly one organization).
type FeeType struct {
	ID          int64          `db:"id"`
	OwnerOrgID  sql.NullInt64  `db:"owner_org_id"`
	Code        sql.NullString `db:"code"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	IsPrivate   bool           `db:"is_private"`
	IsDeleted   bool           `db:"is_deleted"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
