package domain

import (
	"fmt"
	"strings"
)

// StorageCode discriminates the constraint failures a store can report.
type StorageCode string

const (
	StorageUniqueViolation     StorageCode = "unique_violation"
	StorageForeignKeyViolation StorageCode = "foreign_key_violation"
	StorageNotFound            StorageCode = "not_found"
)

// StorageError is the structured failure raised by store implementations for
// constraint violations and missing rows. Fields carries the offending column
// names when the driver reports them (unique violations only).
type StorageError struct {
	Code   StorageCode
	Fields []string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("storage: %s", e.Code)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FieldList joins the reported columns for client-facing messages.
func (e *StorageError) FieldList() string {
	if len(e.Fields) == 0 {
		return "Unknown field(s)"
	}
	return strings.Join(e.Fields, ", ")
}
