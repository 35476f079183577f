package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("stock entry not found")

// ValidationError: malformed input to a ledger operation. Reported to the
// caller as-is, never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Shortage: one requested line the ledger cannot cover right now.
type Shortage struct {
	EntryID     uint   `json:"entryId,omitempty"`
	ProductCode string `json:"productId"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// InsufficientStockError carries every offending line so the caller can tell
// the admin exactly which quantities to adjust.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.ProductCode, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
