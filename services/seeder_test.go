package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	apperrors "github.com/mohamedhosni23/apple-store-bi-project/common/errors"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- in-memory repositories ----

type memUserRepo struct {
	docs      []models.User
	deleteErr error
	insertErr error
	indexed   bool
}

func (m *memUserRepo) DeleteAll(_ context.Context) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	n := int64(len(m.docs))
	m.docs = nil
	return n, nil
}
func (m *memUserRepo) InsertMany(_ context.Context, users []models.User) ([]models.User, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	out := make([]models.User, len(users))
	for i, u := range users {
		u.ID = primitive.NewObjectID()
		out[i] = u
	}
	m.docs = append(m.docs, out...)
	return out, nil
}
func (m *memUserRepo) FindAll(_ context.Context) ([]models.User, error) { return m.docs, nil }
func (m *memUserRepo) EnsureIndexes(_ context.Context) error {
	m.indexed = true
	return nil
}

type memProductRepo struct {
	docs []models.Product
}

func (m *memProductRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.docs))
	m.docs = nil
	return n, nil
}
func (m *memProductRepo) InsertMany(_ context.Context, products []models.Product) ([]models.Product, error) {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.ID = primitive.NewObjectID()
		out[i] = p
	}
	m.docs = append(m.docs, out...)
	return out, nil
}
func (m *memProductRepo) FindAll(_ context.Context) ([]models.Product, error) { return m.docs, nil }

type memOrderRepo struct {
	docs      []models.Order
	insertErr error
	schema    bool
}

func (m *memOrderRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.docs))
	m.docs = nil
	return n, nil
}
func (m *memOrderRepo) InsertMany(_ context.Context, orders []models.Order) ([]models.Order, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		o.ID = primitive.NewObjectID()
		out[i] = o
	}
	m.docs = append(m.docs, out...)
	return out, nil
}
func (m *memOrderRepo) FindAll(_ context.Context) ([]models.Order, error) { return m.docs, nil }
func (m *memOrderRepo) EnsureSchema(_ context.Context) error {
	m.schema = true
	return nil
}
func (m *memOrderRepo) Summarize(_ context.Context) (*models.KPISummary, error) {
	return &models.KPISummary{TotalOrders: int64(len(m.docs))}, nil
}

// ---- side channels ----

type recordingSNS struct {
	topic      string
	eventTypes []string
	messages   [][]byte
	err        error
}

func (r *recordingSNS) PublishEvent(_ context.Context, topic, eventType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.topic = topic
	r.eventTypes = append(r.eventTypes, eventType)
	r.messages = append(r.messages, b)
	return r.err
}

type recordingMetrics struct {
	values  map[string]float64
	latency map[string]time.Duration
	err     error
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{values: map[string]float64{}, latency: map[string]time.Duration{}}
}

func (r *recordingMetrics) RecordValue(_ context.Context, name string, value float64, _ map[string]string) error {
	r.values[name] = value
	return r.err
}
func (r *recordingMetrics) RecordLatency(_ context.Context, name string, d time.Duration, _ map[string]string) error {
	r.latency[name] = d
	return r.err
}
func (r *recordingMetrics) IsEnabled() bool { return true }

// ---- helper ----

type fixture struct {
	users    *memUserRepo
	products *memProductRepo
	orders   *memOrderRepo
	sns      *recordingSNS
	metrics  *recordingMetrics
	svc      services.SeedService
}

func smallReference() catalog.Reference {
	full := catalog.Default()
	return catalog.Reference{
		Users: []catalog.UserSeed{
			{Name: "Admin Principal", Email: "admin@applestoresousse.tn", Password: "admin123", IsAdmin: true},
			{Name: "Ahmed Ben Ali", Email: "ahmed.benali@gmail.com", Password: "password123"},
		},
		Products:  full.Products[:3],
		Locations: full.Locations,
		Streets:   full.Streets,
	}
}

func newFixture(t *testing.T, ref catalog.Reference) *fixture {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	f := &fixture{
		users:    &memUserRepo{},
		products: &memProductRepo{},
		orders:   &memOrderRepo{},
		sns:      &recordingSNS{},
		metrics:  newRecordingMetrics(),
	}
	f.svc = services.NewSeedService(services.SeederDeps{
		Users:       f.users,
		Products:    f.products,
		Orders:      f.orders,
		Hasher:      &prefixHasher{},
		Rand:        seeded(2024),
		Now:         clock,
		Reference:   ref,
		SNS:         f.sns,
		SNSTopicArn: "arn:aws:sns:eu-west-1:000000000000:seed-events",
		Metrics:     f.metrics,
		Logger:      logger,
	})
	return f
}

// ---- tests ----

func TestRunSeed_SmallStore(t *testing.T) {
	f := newFixture(t, smallReference())

	summary, err := f.svc.RunSeed(context.Background(), services.SeedOptions{RunID: "run-1", OrderCount: 10})
	require.NoError(t, err)

	require.Len(t, f.users.docs, 2)
	require.Len(t, f.products.docs, 3)
	require.Len(t, f.orders.docs, 10)
	assert.True(t, f.users.indexed)
	assert.True(t, f.orders.schema)

	var customerID primitive.ObjectID
	for _, u := range f.users.docs {
		assert.Equal(t, "hashed:"+map[bool]string{true: "admin123", false: "password123"}[u.IsAdmin], u.Password)
		if !u.IsAdmin {
			customerID = u.ID
		}
	}

	productIDs := map[primitive.ObjectID]bool{}
	for _, p := range f.products.docs {
		productIDs[p.ID] = true
	}

	revenue := 0.0
	for _, o := range f.orders.docs {
		assert.Equal(t, customerID, o.User)
		assert.True(t, o.Status.Valid())
		assert.True(t, o.PaymentMethod.Valid())
		for _, it := range o.OrderItems {
			assert.True(t, productIDs[it.Product])
		}
		if o.Status != models.StatusPending && o.Status != models.StatusCancelled && o.Status != models.StatusRefunded {
			revenue += o.TotalPrice
		}
	}

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.Users)
	assert.Equal(t, 1, summary.Admins)
	assert.Equal(t, 1, summary.Customers)
	assert.Equal(t, 3, summary.Products)
	assert.Equal(t, 10, summary.Orders)
	assert.InDelta(t, revenue, summary.Revenue, 0.005)

	total := 0
	for _, c := range summary.ByStatus {
		total += c.Count
	}
	assert.Equal(t, 10, total)
}

func TestRunSeed_ReplacesPreviousData(t *testing.T) {
	f := newFixture(t, smallReference())
	ctx := context.Background()

	_, err := f.svc.RunSeed(ctx, services.SeedOptions{OrderCount: 5})
	require.NoError(t, err)
	_, err = f.svc.RunSeed(ctx, services.SeedOptions{OrderCount: 7})
	require.NoError(t, err)

	assert.Len(t, f.users.docs, 2)
	assert.Len(t, f.products.docs, 3)
	assert.Len(t, f.orders.docs, 7)
}

func TestResetStore_TwiceLeavesStoreEmpty(t *testing.T) {
	f := newFixture(t, smallReference())
	ctx := context.Background()
	_, err := f.svc.RunSeed(ctx, services.SeedOptions{OrderCount: 3})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.svc.ResetStore(ctx))
		assert.Empty(t, f.users.docs)
		assert.Empty(t, f.products.docs)
		assert.Empty(t, f.orders.docs)
	}
}

func TestResetStore_DeleteFailure(t *testing.T) {
	f := newFixture(t, smallReference())
	f.users.deleteErr = errors.New("connection reset")

	err := f.svc.ResetStore(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrDatabaseQuery)
	assert.ErrorContains(t, err, "connection reset")
}

func TestLoadBaseEntities_UsesGivenReference(t *testing.T) {
	f := newFixture(t, catalog.Reference{})
	ref := smallReference()

	users, products, err := f.svc.LoadBaseEntities(context.Background(), ref)
	require.NoError(t, err)

	require.Len(t, users, 2)
	require.Len(t, products, 3)
	for i, u := range users {
		assert.False(t, u.ID.IsZero())
		assert.Equal(t, ref.Users[i].Email, u.Email)
	}
	assert.Equal(t, ref.Products[0].Name, products[0].Name)
}

func TestRunSeed_NoCustomersIsValidationError(t *testing.T) {
	ref := smallReference()
	ref.Users = ref.Users[:1]
	f := newFixture(t, ref)

	_, err := f.svc.RunSeed(context.Background(), services.SeedOptions{OrderCount: 1})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, services.ErrNoCustomers)
	assert.Empty(t, f.orders.docs)
}

func TestRunSeed_ZeroOrders(t *testing.T) {
	f := newFixture(t, smallReference())

	summary, err := f.svc.RunSeed(context.Background(), services.SeedOptions{OrderCount: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Orders)
	assert.Equal(t, 0.0, summary.Revenue)
}

func TestRunSeed_InsertFailureAborts(t *testing.T) {
	f := newFixture(t, smallReference())
	f.orders.insertErr = errors.New("write concern timeout")

	summary, err := f.svc.RunSeed(context.Background(), services.SeedOptions{OrderCount: 4})

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrDatabaseQuery)
	assert.Equal(t, 500, apperrors.From(err).Code)
}

func TestAnnounce_PublishesEventAndMetrics(t *testing.T) {
	f := newFixture(t, smallReference())
	summary, err := f.svc.RunSeed(context.Background(), services.SeedOptions{RunID: "run-9", OrderCount: 4})
	require.NoError(t, err)

	f.svc.Announce(context.Background(), summary)

	require.Len(t, f.sns.messages, 1)
	assert.Equal(t, "arn:aws:sns:eu-west-1:000000000000:seed-events", f.sns.topic)
	assert.Equal(t, []string{models.EventSeedCompleted}, f.sns.eventTypes)
	var event models.SeedCompletedEvent
	require.NoError(t, json.Unmarshal(f.sns.messages[0], &event))
	assert.Equal(t, models.EventSeedCompleted, event.EventType)
	assert.Equal(t, "run-9", event.RunID)
	assert.Equal(t, 4, event.Orders)

	assert.Equal(t, 4.0, f.metrics.values["SeedOrdersCreated"])
	assert.Equal(t, summary.Revenue, f.metrics.values["SeedRecognizedRevenue"])
	assert.Contains(t, f.metrics.latency, "SeedDuration")
}

func TestAnnounce_SideChannelFailuresAreSwallowed(t *testing.T) {
	f := newFixture(t, smallReference())
	f.sns.err = errors.New("throttled")
	f.metrics.err = errors.New("throttled")

	assert.NotPanics(t, func() {
		f.svc.Announce(context.Background(), &services.Summary{Orders: 1})
	})
	assert.Len(t, f.sns.messages, 1)
}
