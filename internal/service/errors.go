package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VedantKadlaKK/bookverse/internal/catalog"
)

var (
	ErrBookNotFound      = catalog.ErrBookNotFound
	ErrItemNotInCart     = errors.New("item not found in cart")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrNoCheckout        = errors.New("no checkout in progress")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal transition of order status")
	ErrQuantityLimit     = errors.New("quantity exceeds the per-line limit")
)

// ValidationError lists the customer fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please fill all fields: missing %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
