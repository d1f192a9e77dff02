package reservation

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/table-reservations/internal/httperr"
)

var (
	ErrInvalidInterval   = httperr.ErrBusiness("invalid_interval")
	ErrInvalidPartySize  = httperr.ErrBusiness("invalid_party_size")
	ErrSlotTaken         = httperr.ErrBusiness("slot_taken")
	ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")
	ErrNotFound          = httperr.ErrBusiness("reservation_not_found")
	ErrAlreadyTerminal   = httperr.ErrBusiness("already_terminal")
	ErrTableNotFound     = httperr.ErrBusiness("table_not_found")
	ErrCustomerNotFound  = httperr.ErrBusiness("customer_not_found")
	ErrForbidden         = httperr.ErrBusiness("forbidden")
)

// ErrTxConflict marks a transaction aborted by a serialization failure or
// deadlock. Such transactions may be run again.
var ErrTxConflict = errors.New("transaction conflict")

// StoreError wraps a persistence failure on the booking path.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
