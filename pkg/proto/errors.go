// Package proto defines the feewise domain types and errors shared across
// layers.
package proto

import (
	"errors"
)

var (
	// ErrFeeTypeNotFound is returned when a fee type is not found.
	ErrFeeTypeNotFound = errors.New("fee type not found")
	// ErrFeeItemNotFound is returned when a fee item is not found.
	ErrFeeItemNotFound = errors.New("fee item not found")
	// ErrOrgNotFound is returned when an organization is not found.
	ErrOrgNotFound = errors.New("organization not found")
	// ErrAcademicYearNotFound is returned when an academic year is not found.
	ErrAcademicYearNotFound = errors.New("academic year not found")
	// ErrNotOwner is returned when an organization attempts to delete a
	// private fee type it does not own.
	ErrNotOwner = errors.New("fee type is owned by another organization")
	// ErrNameTaken is returned when restoring a fee type whose name is
	// already used by another active fee type of the same owner.
	ErrNameTaken = errors.New("fee type name already in use")
	// ErrMissingName is returned when a required name is empty.
	ErrMissingName = errors.New("name is required")
	// ErrNoFields is returned when an update carries no fields.
	ErrNoFields = errors.New("no fields to update")
	// ErrNotDeleted is returned when restoring a fee type that is not
	// deleted.
	ErrNotDeleted = errors.New("fee type is not deleted")
	// ErrInvalidAmount is returned when a fee item amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")
	// ErrInvalidCode is returned when a fee type code is malformed.
	ErrInvalidCode = errors.New("invalid fee type code")
	// ErrInvalidGrade is returned when a grade label is malformed.
	ErrInvalidGrade = errors.New("invalid grade")
)
