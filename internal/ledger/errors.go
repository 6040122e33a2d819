package ledger

import (
	"errors"
	"fmt"
)

// Validation errors: caller-fixable input problems. Nothing is written when
// one of these is returned.
var (
	// ErrNoCompany is returned when an operation is invoked without a company id.
	ErrNoCompany = errors.New("no company selected")

	// ErrEmptyEntries is returned for a voucher draft with no accounting entries.
	ErrEmptyEntries = errors.New("voucher must have at least one entry")

	// ErrUnbalanced is returned when the Dr and Cr totals of a draft differ.
	ErrUnbalanced = errors.New("debit and credit totals do not match")

	// ErrNonPositiveAmount is returned for an entry amount of zero.
	ErrNonPositiveAmount = errors.New("entry amount must be strictly positive")

	// ErrLedgerNotInCompany is returned when an entry references a ledger that
	// does not exist or belongs to another company.
	ErrLedgerNotInCompany = errors.New("ledger does not exist in this company")
)

// ErrNotFound is returned by Store implementations for a missing record.
var ErrNotFound = errors.New("record not found")

var validationErrs = []error{
	ErrNoCompany, ErrEmptyEntries, ErrUnbalanced, ErrNonPositiveAmount, ErrLedgerNotInCompany,
}

// IsValidation reports whether err is a caller-fixable validation failure.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IntegrityError marks a data problem discovered during aggregation or read:
// an orphan ledger, a cycle in the group tree. The report is aborted rather
// than silently producing a wrong total.
type IntegrityError struct {
	Kind     string // "orphan_ledger", "group_cycle"
	LedgerID uint
	GroupID  uint
	Msg      string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation (%s): %s", e.Kind, e.Msg)
}

// StoreError wraps any failure of the underlying record store. The core never
// retries; that is the caller's decision.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
