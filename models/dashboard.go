package models

import "time"

// KPISummary backs the four headline cards of the analytics dashboard.
type KPISummary struct {
	TotalRevenue    float64   `json:"totalRevenue"`
	TotalOrders     int64     `json:"totalOrders"`
	ProductsSold    int64     `json:"productsSold"`
	ActiveCustomers int64     `json:"activeCustomers"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// EmbedConfig tells the dashboard page which hosted report to frame.
type EmbedConfig struct {
	EmbedURL string `json:"embedUrl"`
	Title    string `json:"title"`
}
