package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
)

// Rand is the source of every random draw made by the generator.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

const (
	TaxRate               = 0.19
	FreeShippingThreshold = 1000.0
	FlatShippingPrice     = 15.0

	MinItemsPerOrder = 1
	MaxItemsPerOrder = 4
	MinQuantity      = 1
	MaxQuantity      = 3
	MinHouseNumber   = 1
	MaxHouseNumber   = 200

	MinPaymentDelayDays  = 0
	MaxPaymentDelayDays  = 2
	MinDeliveryDelayDays = 3
	MaxDeliveryDelayDays = 10

	// RecentOrderDays is the age below which orders lean towards early lifecycle states.
	RecentOrderDays = 3
)

const day = 24 * time.Hour

var (
	ErrEmptyCatalog  = errors.New("product catalog is empty")
	ErrNoCustomers   = errors.New("no customer accounts to place orders")
	ErrNoLocations   = errors.New("no shipping locations configured")
	ErrInvalidWindow = errors.New("order date window is empty")
)

// Generator produces synthetic orders. It is not safe for concurrent use.
type Generator struct {
	rng       Rand
	now       func() time.Time
	locations []catalog.Location
	streets   []string
}

// NewGenerator builds a generator over the given address tables. now may be nil for time.Now.
func NewGenerator(rng Rand, now func() time.Time, locations []catalog.Location, streets []string) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rng:       rng,
		now:       now,
		locations: append([]catalog.Location(nil), locations...),
		streets:   append([]string(nil), streets...),
	}
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pricing holds the monetary fields derived from an order's line items.
type Pricing struct {
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
}

// ComputePricing applies the 19% tax and the free-shipping threshold.
func ComputePricing(items []models.OrderItem) Pricing {
	itemsPrice := 0.0
	for _, it := range items {
		itemsPrice += it.Price * float64(it.Quantity)
	}
	shipping := FlatShippingPrice
	if itemsPrice > FreeShippingThreshold {
		shipping = 0
	}
	tax := RoundMoney(itemsPrice * TaxRate)
	return Pricing{
		ItemsPrice:    itemsPrice,
		TaxPrice:      tax,
		ShippingPrice: shipping,
		TotalPrice:    RoundMoney(itemsPrice + tax + shipping),
	}
}

// StatusForAge maps an order age in whole days and a uniform draw in [0,1) to a status.
func StatusForAge(ageDays int, u float64) models.OrderStatus {
	if ageDays < RecentOrderDays {
		switch {
		case u < 0.4:
			return models.StatusPending
		case u < 0.7:
			return models.StatusProcessing
		case u < 0.9:
			return models.StatusShipped
		default:
			return models.StatusDelivered
		}
	}
	switch {
	case u < 0.75:
		return models.StatusDelivered
	case u < 0.85:
		return models.StatusShipped
	case u < 0.92:
		return models.StatusCancelled
	case u < 0.97:
		return models.StatusRefunded
	default:
		return models.StatusProcessing
	}
}

// AgeInDays is the number of whole days between orderDate and now.
func AgeInDays(orderDate, now time.Time) int {
	return int(math.Floor(now.Sub(orderDate).Hours() / 24))
}

// DeriveStatus samples a lifecycle status for an order placed at orderDate.
func (g *Generator) DeriveStatus(orderDate time.Time) models.OrderStatus {
	return StatusForAge(AgeInDays(orderDate, g.now()), g.rng.Float64())
}

// RandomInt returns a uniform integer in [min, max].
func (g *Generator) RandomInt(min, max int) int {
	return min + g.rng.IntN(max-min+1)
}

// RandomDate returns a uniform instant in [start, end).
func (g *Generator) RandomDate(start, end time.Time) time.Time {
	span := end.Sub(start)
	return start.Add(time.Duration(g.rng.Float64() * float64(span)))
}

// ShippingAddress composes an address from a sampled location and street.
func (g *Generator) ShippingAddress() models.ShippingAddress {
	loc := g.locations[g.rng.IntN(len(g.locations))]
	number := g.RandomInt(MinHouseNumber, MaxHouseNumber)
	street := g.streets[g.rng.IntN(len(g.streets))]
	return models.ShippingAddress{
		Address:     strconv.Itoa(number) + " " + street,
		City:        loc.City,
		PostalCode:  loc.PostalCode,
		Country:     catalog.Country,
		Governorate: loc.Governorate,
	}
}

// pickProducts draws count catalog indexes, rejecting repeats until the catalog is exhausted.
// Once every product is used, duplicates are accepted rather than looping forever.
func (g *Generator) pickProducts(catalogSize, count int, each func(idx int)) {
	used := make(map[int]struct{}, count)
	for j := 0; j < count; j++ {
		var idx int
		for {
			idx = g.rng.IntN(catalogSize)
			if _, dup := used[idx]; !dup || len(used) >= catalogSize {
				break
			}
		}
		used[idx] = struct{}{}
		each(idx)
	}
}

// GenerateOrder builds one order for customer placed at orderDate.
func (g *Generator) GenerateOrder(customer models.User, products []models.Product, orderDate time.Time) (models.Order, error) {
	if len(products) == 0 {
		return models.Order{}, ErrEmptyCatalog
	}
	if len(g.locations) == 0 || len(g.streets) == 0 {
		return models.Order{}, ErrNoLocations
	}

	numItems := g.RandomInt(MinItemsPerOrder, MaxItemsPerOrder)
	items := make([]models.OrderItem, 0, numItems)
	g.pickProducts(len(products), numItems, func(idx int) {
		p := products[idx]
		items = append(items, models.OrderItem{
			Product:  p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: g.RandomInt(MinQuantity, MaxQuantity),
		})
	})

	pricing := ComputePricing(items)
	status := g.DeriveStatus(orderDate)
	isPaid := status.IsPaid()
	isDelivered := status == models.StatusDelivered

	var paidAt, deliveredAt *time.Time
	if isPaid {
		t := orderDate.Add(time.Duration(g.RandomInt(MinPaymentDelayDays, MaxPaymentDelayDays)) * day)
		paidAt = &t
	}
	if isDelivered {
		t := orderDate.Add(time.Duration(g.RandomInt(MinDeliveryDelayDays, MaxDeliveryDelayDays)) * day)
		deliveredAt = &t
	}

	updatedAt := orderDate
	switch {
	case deliveredAt != nil:
		updatedAt = *deliveredAt
	case paidAt != nil:
		updatedAt = *paidAt
	}

	address := g.ShippingAddress()
	method := models.PaymentMethods[g.rng.IntN(len(models.PaymentMethods))]

	return models.Order{
		User:            customer.ID,
		OrderItems:      items,
		ShippingAddress: address,
		PaymentMethod:   method,
		ItemsPrice:      pricing.ItemsPrice,
		TaxPrice:        pricing.TaxPrice,
		ShippingPrice:   pricing.ShippingPrice,
		TotalPrice:      pricing.TotalPrice,
		IsPaid:          isPaid,
		PaidAt:          paidAt,
		IsDelivered:     isDelivered,
		DeliveredAt:     deliveredAt,
		Status:          status,
		CreatedAt:       orderDate,
		UpdatedAt:       updatedAt,
	}, nil
}

// GenerateOrders builds n orders, each for a uniformly chosen customer on a uniform date in [start, end).
func (g *Generator) GenerateOrders(customers []models.User, products []models.Product, n int, start, end time.Time) ([]models.Order, error) {
	if n <= 0 {
		return nil, nil
	}
	if len(customers) == 0 {
		return nil, ErrNoCustomers
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrInvalidWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	orders := make([]models.Order, 0, n)
	for i := 0; i < n; i++ {
		customer := customers[g.rng.IntN(len(customers))]
		orderDate := g.RandomDate(start, end)
		o, err := g.GenerateOrder(customer, products, orderDate)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
