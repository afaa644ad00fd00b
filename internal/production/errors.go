package production

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransition: start was attempted on an order that is no
	// longer scheduled.
	ErrInvalidTransition = errors.New("order already started or completed")
	// ErrAlreadyCompleted: complete was attempted on a terminal order.
	ErrAlreadyCompleted = errors.New("order already completed")
)

// InsufficientStockError aborts a completion before any write happens.
type InsufficientStockError struct {
	MaterialID string
	Required   decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for material %s. Required: %s, Available: %s",
		e.MaterialID, e.Required.String(), e.Available.String())
}
