package models

import (
	"database/sql"
	"time"
)

// Organization represents a tenant in the registry.
type Organization struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OrganizationFeeType is a row in the enabled-set relation. It records that
// an organization has opted into a fee type, independent of ownership.
type OrganizationFeeType struct {
	ID        int64     `db:"id"`
	OrgID     int64     `db:"org_id"`
	FeeTypeID int64     `db:"fee_type_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Branch represents a branch of an organization.
type Branch struct {
	ID        int64     `db:"id"`
	OrgID     int64     `db:"org_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// AcademicYear represents an academic year fee items are scoped to.
type AcademicYear struct {
	ID        int64        `db:"id"`
	Name      string       `db:"name"`
	StartsOn  sql.NullTime `db:"starts_on"`
	EndsOn    sql.NullTime `db:"ends_on"`
	CreatedAt time.Time    `db:"created_at"`
}
