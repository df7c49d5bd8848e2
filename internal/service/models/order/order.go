package order

import (
	"time"
)

// Order represents a customer purchase header. Immutable after creation.
type Order struct {
	ID        int64     `json:"orderId"`
	CreatedAt time.Time `json:"orderDate"`
}
