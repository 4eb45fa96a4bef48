package services_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"github.com/mohamedhosni23/apple-store-bi-project/services"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_CountsAndRevenue(t *testing.T) {
	users := []models.User{{IsAdmin: true}, {}, {}}
	products := []models.Product{{}, {}}
	orders := []models.Order{
		{Status: models.StatusPending, TotalPrice: 100},
		{Status: models.StatusProcessing, TotalPrice: 10.25},
		{Status: models.StatusShipped, TotalPrice: 20.5},
		{Status: models.StatusDelivered, TotalPrice: 30.1},
		{Status: models.StatusDelivered, TotalPrice: 1},
		{Status: models.StatusCancelled, TotalPrice: 500},
		{Status: models.StatusRefunded, TotalPrice: 700},
	}

	s := services.Summarize(users, products, orders)

	assert.Equal(t, 3, s.Users)
	assert.Equal(t, 1, s.Admins)
	assert.Equal(t, 2, s.Customers)
	assert.Equal(t, 2, s.Products)
	assert.Equal(t, 7, s.Orders)
	assert.Equal(t, 61.85, s.Revenue)
	assert.Equal(t, 2, s.Count(models.StatusDelivered))
	assert.Equal(t, 1, s.Count(models.StatusRefunded))

	statuses := make([]models.OrderStatus, 0, len(s.ByStatus))
	for _, c := range s.ByStatus {
		statuses = append(statuses, c.Status)
	}
	assert.Equal(t, models.OrderStatuses, statuses)
}

func TestSummary_Print(t *testing.T) {
	s := services.Summarize([]models.User{{IsAdmin: true}, {}}, []models.Product{{}}, []models.Order{
		{Status: models.StatusShipped, TotalPrice: 1234.5},
	})
	s.Duration = 1500 * time.Millisecond

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "Users:     2 (1 admins, 1 customers)")
	assert.Contains(t, out, "Orders:    1")
	assert.Contains(t, out, "Shipped:")
	assert.Contains(t, out, "Revenue:   1234.50 TND")
	assert.Contains(t, out, "Duration:  1.5s")
	assert.Less(t, strings.Index(out, "Pending:"), strings.Index(out, "Refunded:"))
}

func TestSummary_RunRecord(t *testing.T) {
	s := services.Summarize([]models.User{{IsAdmin: true}, {}}, []models.Product{{}}, []models.Order{
		{Status: models.StatusShipped, TotalPrice: 99.5},
		{Status: models.StatusPending, TotalPrice: 10},
	})
	s.RunID = "run-7"
	s.Duration = 2 * time.Second
	finished := time.Date(2025, 1, 13, 13, 0, 0, 0, time.FixedZone("CET", 3600))

	rec := s.RunRecord(finished)

	assert.Equal(t, "run-7", rec.RunID)
	assert.Equal(t, models.RunKindSeed, rec.Kind)
	assert.Equal(t, time.UTC, rec.FinishedAt.Location())
	assert.Equal(t, int64(2000), rec.DurationMS)
	assert.Equal(t, int64(2), rec.Counts["orders"])
	assert.Equal(t, int64(1), rec.Counts["status:Shipped"])
	assert.Equal(t, int64(0), rec.Counts["status:Refunded"])
	assert.Equal(t, 99.5, rec.Revenue)
}
