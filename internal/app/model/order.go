package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type OrderStatus string // order lifecycle status

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, waiting for the artisan
	OrderStatusAccepted  OrderStatus = "accepted"  // accepted by the artisan
	OrderStatusRefused   OrderStatus = "refused"   // refused by the artisan
	OrderStatusShipped   OrderStatus = "shipped"   // handed to the carrier
	OrderStatusDelivered OrderStatus = "delivered" // received by the client
)

// ErrInvalidTransition is returned when an order status change does not
// follow the lifecycle. Callers wrap it with the attempted from/to pair.
var ErrInvalidTransition = errors.New("invalid order status transition")

// orderTransitions is the full lifecycle: pending splits into accepted or
// refused, accepted moves through shipped to delivered. Refused and
// delivered are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAccepted, OrderStatusRefused},
	OrderStatusAccepted:  {OrderStatusShipped},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusRefused:   {},
	OrderStatusDelivered: {},
}

// ParseOrderStatus validates a raw status value
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
	}
	return status, nil
}

// CanTransitionTo reports whether the lifecycle allows moving to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// TransitionTo validates and applies a status change on the order
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ClientID        uint           `gorm:"not null;index" json:"client_id"`
	TotalPrice      float64        `gorm:"not null" json:"total_price"` // frozen at checkout, rounded to cents
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentProvider string         `gorm:"type:varchar(50)" json:"payment_provider,omitempty"`
	PaymentIntentID string         `gorm:"type:varchar(100);index" json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Client     User        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ContainsArtisan reports whether any line of the order belongs to the
// given artisan. Artisans may only manage orders that include their work.
func (o *Order) ContainsArtisan(artisanID uint) bool {
	for _, item := range o.OrderItems {
		if item.ArtisanID == artisanID {
			return true
		}
	}
	return false
}

// OrderItem is one frozen line of an order. UnitPrice is the discounted
// unit price at checkout time; later product edits never change it.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ArtisanID uint           `gorm:"not null;index" json:"artisan_id"` // snapshot of the product's artisan
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
