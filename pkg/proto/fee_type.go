package proto

import "database/sql"

// Ownership is the ownership variant of a fee type, computed once from the
// owner column and switched on wherever private and global types diverge.
type Ownership struct {
	Private bool
	OwnerID int64
}

// OwnershipOf returns the ownership variant for an owner column value.
func OwnershipOf(ownerOrgID sql.NullInt64) Ownership {
	if ownerOrgID.Valid {
		return Ownership{Private: true, OwnerID: ownerOrgID.Int64}
	}
	return Ownership{}
}

// RemovalCheck is the read-only decision of what removing a fee type from an
// organization would do. Global types are only struck from the acting
// organization's enabled set; private types are soft-deleted everywhere.
type RemovalCheck struct {
	WillDelete  bool
	IsPrivate   bool
	HasUsage    bool
	UsageCount  int64
	FeeTypeName string
	Message     string
}

// FeeTypeStats are aggregate counts over visible fee types.
type FeeTypeStats struct {
	Total    int64 `db:"total"`
	Private  int64 `db:"private"`
	Global   int64 `db:"global"`
	OrgOwned int64 `db:"org_owned"`
}
