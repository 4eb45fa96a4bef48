package services_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- helpers ----

var fixedNow = time.Date(2025, time.January, 13, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// scriptedRand replays fixed draws, then falls back to zeros.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func withIDs(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID()
		out[i] = p
	}
	return out
}

func newGenerator(rng services.Rand) *services.Generator {
	return services.NewGenerator(rng, clock, catalog.Locations(), catalog.StreetNames())
}

func customer() models.User {
	return models.User{ID: primitive.NewObjectID(), Name: "Ahmed Ben Ali"}
}

// ---- pricing ----

func TestComputePricing_FlatShippingBelowThreshold(t *testing.T) {
	p := services.ComputePricing([]models.OrderItem{{Price: 100, Quantity: 2}, {Price: 49.99, Quantity: 1}})

	assert.InDelta(t, 249.99, p.ItemsPrice, 1e-9)
	assert.Equal(t, 47.5, p.TaxPrice)
	assert.Equal(t, 15.0, p.ShippingPrice)
	assert.Equal(t, 312.49, p.TotalPrice)
}

func TestComputePricing_FreeShippingAboveThreshold(t *testing.T) {
	p := services.ComputePricing([]models.OrderItem{{Price: 1200, Quantity: 1}})

	assert.Equal(t, 0.0, p.ShippingPrice)
	assert.Equal(t, 228.0, p.TaxPrice)
	assert.Equal(t, 1428.0, p.TotalPrice)
}

func TestComputePricing_ExactlyThresholdPaysShipping(t *testing.T) {
	p := services.ComputePricing([]models.OrderItem{{Price: 500, Quantity: 2}})

	assert.Equal(t, 15.0, p.ShippingPrice)
	assert.Equal(t, 1205.0, p.TotalPrice)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 1.24, services.RoundMoney(1.236))
	assert.Equal(t, 10.0, services.RoundMoney(9.999))
	assert.Equal(t, 0.0, services.RoundMoney(0))
}

// ---- status ----

func TestStatusForAge_Boundaries(t *testing.T) {
	cases := []struct {
		age  int
		u    float64
		want models.OrderStatus
	}{
		{0, 0.0, models.StatusPending},
		{2, 0.39, models.StatusPending},
		{2, 0.4, models.StatusProcessing},
		{1, 0.7, models.StatusShipped},
		{1, 0.9, models.StatusDelivered},
		{3, 0.0, models.StatusDelivered},
		{3, 0.75, models.StatusShipped},
		{30, 0.85, models.StatusCancelled},
		{30, 0.92, models.StatusRefunded},
		{30, 0.97, models.StatusProcessing},
		{-1, 0.1, models.StatusPending},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.StatusForAge(tc.age, tc.u), "age=%d u=%v", tc.age, tc.u)
	}
}

func TestAgeInDays_Floors(t *testing.T) {
	assert.Equal(t, 2, services.AgeInDays(fixedNow.Add(-71*time.Hour), fixedNow))
	assert.Equal(t, 3, services.AgeInDays(fixedNow.Add(-72*time.Hour), fixedNow))
	assert.Equal(t, -1, services.AgeInDays(fixedNow.Add(time.Hour), fixedNow))
}

func assertFrequencies(t *testing.T, orderDate time.Time, want map[models.OrderStatus]float64) {
	t.Helper()
	const draws = 100000
	g := newGenerator(seeded(42))
	counts := map[models.OrderStatus]int{}
	for i := 0; i < draws; i++ {
		counts[g.DeriveStatus(orderDate)]++
	}
	for status, p := range want {
		got := float64(counts[status]) / draws
		assert.InDelta(t, p, got, 0.01, "status %s", status)
	}
	total := 0
	for status, n := range counts {
		_, expected := want[status]
		assert.True(t, expected, "unexpected status %s", status)
		total += n
	}
	assert.Equal(t, draws, total)
}

func TestDeriveStatus_RecentOrderFrequencies(t *testing.T) {
	assertFrequencies(t, fixedNow.Add(-24*time.Hour), map[models.OrderStatus]float64{
		models.StatusPending:    0.4,
		models.StatusProcessing: 0.3,
		models.StatusShipped:    0.2,
		models.StatusDelivered:  0.1,
	})
}

func TestDeriveStatus_OldOrderFrequencies(t *testing.T) {
	assertFrequencies(t, fixedNow.Add(-30*24*time.Hour), map[models.OrderStatus]float64{
		models.StatusDelivered:  0.75,
		models.StatusShipped:    0.10,
		models.StatusCancelled:  0.07,
		models.StatusRefunded:   0.05,
		models.StatusProcessing: 0.03,
	})
}

// ---- orders ----

func TestGenerateOrders_Invariants(t *testing.T) {
	g := newGenerator(seeded(7))
	products := withIDs(catalog.Products())
	customers := []models.User{customer(), customer(), customer()}

	orders, err := g.GenerateOrders(customers, products, 2000, services.DefaultStartDate, fixedNow)
	require.NoError(t, err)
	require.Len(t, orders, 2000)

	for i, o := range orders {
		require.NoError(t, o.Validate(), "order %d", i)

		assert.InDelta(t, services.RoundMoney(o.ItemsPrice+o.TaxPrice+o.ShippingPrice), o.TotalPrice, 1e-9)
		if o.ItemsPrice > services.FreeShippingThreshold {
			assert.Equal(t, 0.0, o.ShippingPrice)
		} else {
			assert.Equal(t, services.FlatShippingPrice, o.ShippingPrice)
		}

		assert.Equal(t, o.Status.IsPaid(), o.IsPaid)
		assert.Equal(t, o.Status == models.StatusDelivered, o.IsDelivered)
		assert.Equal(t, o.IsPaid, o.PaidAt != nil)
		assert.Equal(t, o.IsDelivered, o.DeliveredAt != nil)
		if o.PaidAt != nil {
			assert.False(t, o.PaidAt.Before(o.CreatedAt))
		}
		if o.DeliveredAt != nil && o.PaidAt != nil {
			assert.False(t, o.DeliveredAt.Before(*o.PaidAt))
		}

		assert.GreaterOrEqual(t, len(o.OrderItems), services.MinItemsPerOrder)
		assert.LessOrEqual(t, len(o.OrderItems), services.MaxItemsPerOrder)
		seen := map[primitive.ObjectID]bool{}
		for _, it := range o.OrderItems {
			assert.False(t, seen[it.Product], "duplicate product in order %d", i)
			seen[it.Product] = true
			assert.GreaterOrEqual(t, it.Quantity, services.MinQuantity)
			assert.LessOrEqual(t, it.Quantity, services.MaxQuantity)
		}

		assert.Equal(t, catalog.Country, o.ShippingAddress.Country)
		assert.True(t, o.PaymentMethod.Valid())
		assert.False(t, o.CreatedAt.Before(services.DefaultStartDate))
		assert.True(t, o.CreatedAt.Before(fixedNow))

		switch {
		case o.DeliveredAt != nil:
			assert.Equal(t, *o.DeliveredAt, o.UpdatedAt)
		case o.PaidAt != nil:
			assert.Equal(t, *o.PaidAt, o.UpdatedAt)
		default:
			assert.Equal(t, o.CreatedAt, o.UpdatedAt)
		}
	}
}

func TestGenerateOrders_SameSeedSameOrders(t *testing.T) {
	products := withIDs(catalog.Products())
	customers := []models.User{customer(), customer()}

	a, err := newGenerator(seeded(99)).GenerateOrders(customers, products, 50, services.DefaultStartDate, services.DefaultEndDate)
	require.NoError(t, err)
	b, err := newGenerator(seeded(99)).GenerateOrders(customers, products, 50, services.DefaultStartDate, services.DefaultEndDate)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateOrder_ScriptedDraws(t *testing.T) {
	products := withIDs(catalog.Products())[:3]
	rng := &scriptedRand{
		// items=2, product 1 qty 2, product 2 qty 1, paid after 1 day, location 0, house 41, street 3, PayPal
		ints:   []int{1, 1, 1, 2, 0, 1, 0, 0, 40, 3, 1},
		floats: []float64{0.5},
	}
	orderDate := fixedNow.Add(-10 * 24 * time.Hour)
	c := customer()

	o, err := newGenerator(rng).GenerateOrder(c, products, orderDate)
	require.NoError(t, err)

	require.Len(t, o.OrderItems, 2)
	assert.Equal(t, products[1].ID, o.OrderItems[0].Product)
	assert.Equal(t, 2, o.OrderItems[0].Quantity)
	assert.Equal(t, products[2].ID, o.OrderItems[1].Product)
	assert.Equal(t, 1, o.OrderItems[1].Quantity)

	assert.Equal(t, models.StatusDelivered, o.Status)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, orderDate.Add(24*time.Hour), *o.PaidAt)
	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, orderDate.Add(3*24*time.Hour), *o.DeliveredAt)
	assert.Equal(t, *o.DeliveredAt, o.UpdatedAt)

	loc := catalog.Locations()[0]
	assert.Equal(t, "41 "+catalog.StreetNames()[3], o.ShippingAddress.Address)
	assert.Equal(t, loc.City, o.ShippingAddress.City)
	assert.Equal(t, loc.PostalCode, o.ShippingAddress.PostalCode)
	assert.Equal(t, loc.Governorate, o.ShippingAddress.Governorate)
	assert.Equal(t, models.PaymentPayPal, o.PaymentMethod)
	assert.Equal(t, c.ID, o.User)
}

func TestGenerateOrder_DuplicatesOnceCatalogExhausted(t *testing.T) {
	products := withIDs(catalog.Products())[:2]
	// four items from a two-product catalog: 0, 0 (rejected), 1, then repeats are accepted
	rng := &scriptedRand{ints: []int{3, 0, 0, 0, 1, 0, 0, 0, 1, 0}}

	o, err := newGenerator(rng).GenerateOrder(customer(), products, fixedNow)
	require.NoError(t, err)

	require.Len(t, o.OrderItems, 4)
	assert.Equal(t, products[0].ID, o.OrderItems[0].Product)
	assert.Equal(t, products[1].ID, o.OrderItems[1].Product)
	assert.Equal(t, products[0].ID, o.OrderItems[2].Product)
	assert.Equal(t, products[1].ID, o.OrderItems[3].Product)
	assert.NoError(t, o.Validate())
}

func TestGenerateOrder_EmptyCatalog(t *testing.T) {
	_, err := newGenerator(seeded(1)).GenerateOrder(customer(), nil, fixedNow)
	assert.ErrorIs(t, err, services.ErrEmptyCatalog)
}

func TestGenerateOrders_NoCustomers(t *testing.T) {
	_, err := newGenerator(seeded(1)).GenerateOrders(nil, withIDs(catalog.Products()), 5, services.DefaultStartDate, services.DefaultEndDate)
	assert.ErrorIs(t, err, services.ErrNoCustomers)
}

func TestGenerateOrders_EmptyWindow(t *testing.T) {
	_, err := newGenerator(seeded(1)).GenerateOrders([]models.User{customer()}, withIDs(catalog.Products()), 5, fixedNow, fixedNow)
	assert.ErrorIs(t, err, services.ErrInvalidWindow)
}

func TestRandomDate_StaysInWindow(t *testing.T) {
	g := newGenerator(seeded(3))
	start, end := services.DefaultStartDate, services.DefaultEndDate
	minSeen, maxSeen := end, start
	for i := 0; i < 10000; i++ {
		d := g.RandomDate(start, end)
		require.False(t, d.Before(start))
		require.True(t, d.Before(end))
		if d.Before(minSeen) {
			minSeen = d
		}
		if d.After(maxSeen) {
			maxSeen = d
		}
	}
	span := end.Sub(start).Hours()
	assert.Less(t, math.Abs(minSeen.Sub(start).Hours()), span*0.01)
	assert.Less(t, math.Abs(end.Sub(maxSeen).Hours()), span*0.01)
}
