package application

import (
	"errors"
	"fmt"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

// ErrInvalidInput signals the request violated a creation invariant.
// Nothing is written to the ledger when it is returned.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrMissingBuyer) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidReference) ||
		errors.Is(err, domain.ErrInvalidPaymentType) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// isNoOp reports whether a reconciliation lookup miss should be
// swallowed: webhook deliveries are retried and must stay idempotent.
func isNoOp(err error) bool {
	return errors.Is(err, ports.ErrNotFound) || errors.Is(err, ports.ErrSessionNotFound)
}
