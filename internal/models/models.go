package models

import (
	"time"
)

// User - a staff member (admin or employee)
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string     `json:"-"` // Never return this in JSON
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"`                         // 'admin' or 'employee'
	Status       string     `gorm:"default:active" json:"status"` // 'active' or 'inactive'
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRole reports whether the role is one the system knows.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// Product - the inventory. Quantity is the single source of truth for stock:
// it changes only through catalog edits, sale creation and restock orders
// entering "shipped".
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	BuyPrice    float64   `json:"buy_price"`
	SellPrice   float64   `json:"sell_price"`
	Quantity    int       `json:"quantity"`
	Barcode     string    `gorm:"uniqueIndex;size:64" json:"barcode"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Sale - one immutable line-item transaction. A checkout with N products
// creates N rows; there is no basket entity.
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `json:"product_id"`
	UserID        uint      `json:"user_id"` // Who processed it
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"` // quantity * sell_price at time of sale
	PaymentMethod string    `gorm:"size:20" json:"payment_method"`
	Timestamp     time.Time `json:"timestamp"`
}

const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentMobile = "mobile"
)

// ValidPaymentMethod reports whether the payment method is accepted at the till.
func ValidPaymentMethod(method string) bool {
	return method == PaymentCash || method == PaymentCard || method == PaymentMobile
}

// OrderStatus is the restock order state machine. "shipped" means goods were
// received; it and "cancelled" are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus rejects anything outside the four known values.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// orderTransitions is the full transition table. Terminal states have no
// outgoing edges, so re-applying "shipped" can never increment stock twice.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
}

// CanTransition reports whether the state machine allows moving to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order - an internal restock order used to replenish inventory.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `json:"user_id"` // Who created it
	Status    OrderStatus `gorm:"size:20;default:pending" json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem - one product line of a restock order. PriceAtOrder is the unit
// price captured at creation and never changes afterwards.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `json:"order_id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// ActivityLog - append-only audit trail. Rows are never updated or deleted.
type ActivityLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"user_id"`
	ActionType    string    `gorm:"size:50" json:"action_type"`
	ActionDetails string    `json:"action_details"`
	IPAddress     string    `gorm:"size:45" json:"ip_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// Action type tags for the activity log.
const (
	ActionLogin            = "LOGIN"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionSaleCreate       = "SALE_CREATE"
	ActionOrderCreate      = "ORDER_CREATE"
	ActionOrderStatus      = "ORDER_STATUS_CHANGE"
	ActionOrderDelete      = "ORDER_DELETE"
	ActionUserCreate       = "USER_CREATE"
	ActionUserUpdate       = "USER_UPDATE"
	ActionUserDelete       = "USER_DELETE"
	ActionUserStatusChange = "USER_STATUS_CHANGE"
)
