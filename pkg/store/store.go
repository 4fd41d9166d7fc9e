// Package store defines the feewise storage interfaces.
package store

// Store is an interface for managing organizations, fee types, and fee
// items.
type Store interface {
	OrgStore
	FeeTypeStore
	FeeItemStore
	AcademicYearStore
}
