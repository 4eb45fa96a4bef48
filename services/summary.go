package services

import (
	"fmt"
	"io"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
)

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int                `json:"count"`
}

// Summary describes what a seed run persisted.
type Summary struct {
	RunID     string        `json:"runId"`
	Users     int           `json:"users"`
	Admins    int           `json:"admins"`
	Customers int           `json:"customers"`
	Products  int           `json:"products"`
	Orders    int           `json:"orders"`
	ByStatus  []StatusCount `json:"byStatus"`
	Revenue   float64       `json:"revenue"`
	Duration  time.Duration `json:"duration"`
}

// Summarize counts the persisted entities. Statuses are reported in lifecycle order and
// revenue sums the total of every paid order.
func Summarize(users []models.User, products []models.Product, orders []models.Order) Summary {
	s := Summary{
		Users:    len(users),
		Products: len(products),
		Orders:   len(orders),
	}
	for _, u := range users {
		if u.IsAdmin {
			s.Admins++
		}
	}
	s.Customers = s.Users - s.Admins

	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	revenue := 0.0
	for _, o := range orders {
		counts[o.Status]++
		if o.Status.IsPaid() {
			revenue += o.TotalPrice
		}
	}
	s.ByStatus = make([]StatusCount, 0, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: st, Count: counts[st]})
	}
	s.Revenue = RoundMoney(revenue)
	return s
}

// Count returns the number of orders in status st.
func (s Summary) Count(st models.OrderStatus) int {
	for _, c := range s.ByStatus {
		if c.Status == st {
			return c.Count
		}
	}
	return 0
}

// Print writes the human-readable report shown at the end of a seed run.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "Seed summary")
	fmt.Fprintf(w, "  Users:     %d (%d admins, %d customers)\n", s.Users, s.Admins, s.Customers)
	fmt.Fprintf(w, "  Products:  %d\n", s.Products)
	fmt.Fprintf(w, "  Orders:    %d\n", s.Orders)
	fmt.Fprintln(w, "  Orders by status:")
	for _, c := range s.ByStatus {
		fmt.Fprintf(w, "    %-11s %d\n", c.Status+":", c.Count)
	}
	fmt.Fprintf(w, "  Revenue:   %.2f TND\n", s.Revenue)
	if s.Duration > 0 {
		fmt.Fprintf(w, "  Duration:  %s\n", s.Duration.Round(time.Millisecond))
	}
}

// RunRecord is the ledger entry for this seed run.
func (s *Summary) RunRecord(finishedAt time.Time) *models.RunRecord {
	counts := map[string]int64{
		"users":    int64(s.Users),
		"products": int64(s.Products),
		"orders":   int64(s.Orders),
	}
	for _, c := range s.ByStatus {
		counts["status:"+string(c.Status)] = int64(c.Count)
	}
	return &models.RunRecord{
		RunID:      s.RunID,
		Kind:       models.RunKindSeed,
		FinishedAt: finishedAt.UTC(),
		DurationMS: s.Duration.Milliseconds(),
		Counts:     counts,
		Revenue:    s.Revenue,
	}
}
