package orderControllers

import "fmt"

// EmptyCartError is returned when checkout is attempted with no cart lines.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string { return "cart is empty" }

// ProductNotFoundError is returned when a cart line references a product
// that no longer exists.
type ProductNotFoundError struct {
	ProductID uint
	Name      string
}

func (e *ProductNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %s not found", e.Name)
	}
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError carries the live availability so the storefront can
// tell the customer exactly what is short.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// UnauthorizedActionError is returned when a user touches an order that is
// not theirs and they are not an admin.
type UnauthorizedActionError struct {
	Action string
}

func (e *UnauthorizedActionError) Error() string {
	return "not authorized to " + e.Action
}
