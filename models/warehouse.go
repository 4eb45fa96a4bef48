package models

import "time"

// Star-schema rows loaded into the analytics warehouse. Surrogate keys are
// assigned by the transform, not by the database.

type DimCustomer struct {
	CustomerID       int       `gorm:"column:customer_id;primaryKey;autoIncrement:false" json:"customer_id"`
	MongoID          string    `gorm:"column:mongo_id;size:50" json:"mongo_id"`
	CustomerName     string    `gorm:"column:customer_name;size:100;not null" json:"customer_name"`
	Email            string    `gorm:"column:email;size:100" json:"email"`
	RegistrationDate time.Time `gorm:"column:registration_date;type:date" json:"registration_date"`
	IsActive         bool      `gorm:"column:is_active" json:"is_active"`
}

func (DimCustomer) TableName() string { return "dim_customer" }

type DimProduct struct {
	ProductID     int     `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	MongoID       string  `gorm:"column:mongo_id;size:50" json:"mongo_id"`
	ProductName   string  `gorm:"column:product_name;size:200;not null" json:"product_name"`
	Brand         string  `gorm:"column:brand;size:50" json:"brand"`
	Category      string  `gorm:"column:category;size:50" json:"category"`
	CurrentPrice  float64 `gorm:"column:current_price;type:decimal(10,2)" json:"current_price"`
	Description   string  `gorm:"column:description;type:text" json:"description"`
	StockQuantity int     `gorm:"column:stock_quantity" json:"stock_quantity"`
}

func (DimProduct) TableName() string { return "dim_product" }

type DimTime struct {
	TimeID     int       `gorm:"column:time_id;primaryKey;autoIncrement:false" json:"time_id"`
	FullDate   time.Time `gorm:"column:full_date;type:date;not null" json:"full_date"`
	Day        int       `gorm:"column:day" json:"day"`
	Month      int       `gorm:"column:month" json:"month"`
	MonthName  string    `gorm:"column:month_name;size:20" json:"month_name"`
	Quarter    int       `gorm:"column:quarter" json:"quarter"`
	Year       int       `gorm:"column:year" json:"year"`
	DayOfWeek  int       `gorm:"column:day_of_week" json:"day_of_week"` // Monday = 0
	DayName    string    `gorm:"column:day_name;size:20" json:"day_name"`
	IsWeekend  bool      `gorm:"column:is_weekend" json:"is_weekend"`
	WeekOfYear int       `gorm:"column:week_of_year" json:"week_of_year"`
}

func (DimTime) TableName() string { return "dim_time" }

type DimLocation struct {
	LocationID  int    `gorm:"column:location_id;primaryKey;autoIncrement:false" json:"location_id"`
	City        string `gorm:"column:city;size:100" json:"city"`
	Governorate string `gorm:"column:governorate;size:100" json:"governorate"`
	PostalCode  string `gorm:"column:postal_code;size:10" json:"postal_code"`
	Country     string `gorm:"column:country;size:50" json:"country"`
}

func (DimLocation) TableName() string { return "dim_location" }

type FactSale struct {
	SaleID         int     `gorm:"column:sale_id;primaryKey;autoIncrement:false" json:"sale_id"`
	TimeID         int     `gorm:"column:time_id;index" json:"time_id"`
	ProductID      int     `gorm:"column:product_id;index" json:"product_id"`
	CustomerID     int     `gorm:"column:customer_id;index" json:"customer_id"`
	LocationID     int     `gorm:"column:location_id;index" json:"location_id"`
	OrderMongoID   string  `gorm:"column:order_mongo_id;size:50" json:"order_mongo_id"`
	Quantity       int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice      float64 `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalAmount    float64 `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	TaxAmount      float64 `gorm:"column:tax_amount;type:decimal(10,2)" json:"tax_amount"`
	ShippingAmount float64 `gorm:"column:shipping_amount;type:decimal(10,2)" json:"shipping_amount"`
	PaymentMethod  string  `gorm:"column:payment_method;size:50" json:"payment_method"`
	OrderStatus    string  `gorm:"column:order_status;size:50" json:"order_status"`
	IsPaid         bool    `gorm:"column:is_paid" json:"is_paid"`
	IsDelivered    bool    `gorm:"column:is_delivered" json:"is_delivered"`
}

func (FactSale) TableName() string { return "fact_sales" }

// StarSchema is the full output of one transform pass.
type StarSchema struct {
	Customers []DimCustomer
	Products  []DimProduct
	Times     []DimTime
	Locations []DimLocation
	Sales     []FactSale
}

// WarehouseReport is what validation reads back from the warehouse.
type WarehouseReport struct {
	TableCounts   map[string]int64  `json:"table_counts"`
	PaidRevenue   float64           `json:"paid_revenue"`
	TopCategories []CategoryRevenue `json:"top_categories"`
	TopProducts   []ProductUnits    `json:"top_products"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type ProductUnits struct {
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
}
