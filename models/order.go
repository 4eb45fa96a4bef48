package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment stage of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded,
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsPaid reports whether orders in this status have been paid for.
func (s OrderStatus) IsPaid() bool {
	return s == StatusProcessing || s == StatusShipped || s == StatusDelivered
}

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentPayPal         PaymentMethod = "PayPal"
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentBankTransfer   PaymentMethod = "Bank Transfer"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []PaymentMethod{
	PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery, PaymentBankTransfer,
}

// Valid reports whether m is one of the enumerated payment methods.
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of a product at order time.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product" validate:"required"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price" validate:"gte=0"`
	Quantity int                `bson:"quantity" json:"quantity" validate:"min=1"`
}

// ShippingAddress is where an order is delivered. Governorate is the region.
type ShippingAddress struct {
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city" validate:"required"`
	PostalCode  string `bson:"postalCode" json:"postalCode"`
	Country     string `bson:"country" json:"country" validate:"required"`
	Governorate string `bson:"governorate" json:"governorate"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User            primitive.ObjectID `bson:"user" json:"user" validate:"required"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems" validate:"min=1,dive"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod" validate:"oneof='Credit Card' PayPal 'Cash on Delivery' 'Bank Transfer'"`
	ItemsPrice      float64            `bson:"itemsPrice" json:"itemsPrice" validate:"gte=0"`
	TaxPrice        float64            `bson:"taxPrice" json:"taxPrice" validate:"gte=0"`
	ShippingPrice   float64            `bson:"shippingPrice" json:"shippingPrice" validate:"gte=0"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice" validate:"gte=0"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	Status          OrderStatus        `bson:"status" json:"status" validate:"oneof=Pending Processing Shipped Delivered Cancelled Refunded"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ErrInvalidOrder is wrapped by every Validate failure.
var ErrInvalidOrder = errors.New("invalid order")

// moneyTolerance absorbs float noise left after rounding to cents.
const moneyTolerance = 0.005

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validate checks the field constraints declared in the struct tags, then the
// pricing and lifecycle rules that span several fields.
func (o *Order) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	itemsPrice := 0.0
	for _, it := range o.OrderItems {
		itemsPrice += it.Price * float64(it.Quantity)
	}
	if math.Abs(o.ItemsPrice-itemsPrice) > moneyTolerance {
		return fmt.Errorf("%w: itemsPrice %.2f does not match line items %.2f", ErrInvalidOrder, o.ItemsPrice, itemsPrice)
	}
	want := math.Round((itemsPrice+o.TaxPrice+o.ShippingPrice)*100) / 100
	if math.Abs(o.TotalPrice-want) > moneyTolerance {
		return fmt.Errorf("%w: totalPrice %.2f, expected %.2f", ErrInvalidOrder, o.TotalPrice, want)
	}
	if o.IsPaid != o.Status.IsPaid() {
		return fmt.Errorf("%w: isPaid=%t inconsistent with status %s", ErrInvalidOrder, o.IsPaid, o.Status)
	}
	if o.IsDelivered != (o.Status == StatusDelivered) {
		return fmt.Errorf("%w: isDelivered=%t inconsistent with status %s", ErrInvalidOrder, o.IsDelivered, o.Status)
	}
	if (o.PaidAt != nil) != o.IsPaid {
		return fmt.Errorf("%w: paidAt presence does not match isPaid", ErrInvalidOrder)
	}
	if (o.DeliveredAt != nil) != o.IsDelivered {
		return fmt.Errorf("%w: deliveredAt presence does not match isDelivered", ErrInvalidOrder)
	}
	if o.PaidAt != nil && o.PaidAt.Before(o.CreatedAt) {
		return fmt.Errorf("%w: paidAt before createdAt", ErrInvalidOrder)
	}
	if o.DeliveredAt != nil {
		if o.DeliveredAt.Before(o.CreatedAt) {
			return fmt.Errorf("%w: deliveredAt before createdAt", ErrInvalidOrder)
		}
		if o.PaidAt != nil && o.DeliveredAt.Before(*o.PaidAt) {
			return fmt.Errorf("%w: deliveredAt before paidAt", ErrInvalidOrder)
		}
	}
	return nil
}
