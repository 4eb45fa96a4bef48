package services

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mohamedhosni23/apple-store-bi-project/catalog"
	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallbacks applied when a source field is blank.
const (
	UnknownCustomerName  = "Unknown"
	UnknownCustomerEmail = "unknown@email.com"
	DefaultBrand         = "Apple"
	DefaultCategory      = "Other"
	UnknownPlace         = "Unknown"
	UnknownPostalCode    = "0000"

	// DefaultLocationID is used for sales whose address matches no location row.
	DefaultLocationID = 1

	maxDescriptionRunes = 500
	dateKey             = "2006-01-02"
)

// Transform turns the operational collections into warehouse rows.
// Surrogate keys are 1-based and follow input order.
func Transform(users []models.User, products []models.Product, orders []models.Order) *models.StarSchema {
	title := cases.Title(language.Und)
	schema := &models.StarSchema{
		Customers: transformCustomers(users, title),
		Products:  transformProducts(products, title),
		Times:     transformTimes(orders),
		Locations: transformLocations(orders),
	}
	schema.Sales = transformSales(orders, schema)
	return schema
}

func transformCustomers(users []models.User, title cases.Caser) []models.DimCustomer {
	rows := make([]models.DimCustomer, 0, len(users))
	for _, u := range models.Customers(users) {
		name := title.String(strings.TrimSpace(u.Name))
		if name == "" {
			name = UnknownCustomerName
		}
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" {
			email = UnknownCustomerEmail
		}
		rows = append(rows, models.DimCustomer{
			CustomerID:       len(rows) + 1,
			MongoID:          u.ID.Hex(),
			CustomerName:     name,
			Email:            email,
			RegistrationDate: calendarDate(u.CreatedAt),
			IsActive:         true,
		})
	}
	return rows
}

func transformProducts(products []models.Product, title cases.Caser) []models.DimProduct {
	rows := make([]models.DimProduct, 0, len(products))
	for i, p := range products {
		brand := title.String(strings.TrimSpace(p.Brand))
		if brand == "" {
			brand = DefaultBrand
		}
		category := title.String(strings.TrimSpace(p.Category))
		if category == "" {
			category = DefaultCategory
		}
		rows = append(rows, models.DimProduct{
			ProductID:     i + 1,
			MongoID:       p.ID.Hex(),
			ProductName:   strings.TrimSpace(p.Name),
			Brand:         brand,
			Category:      category,
			CurrentPrice:  p.Price,
			Description:   truncateRunes(p.Description, maxDescriptionRunes),
			StockQuantity: p.CountInStock,
		})
	}
	return rows
}

func transformTimes(orders []models.Order) []models.DimTime {
	seen := make(map[string]time.Time)
	for _, o := range orders {
		d := calendarDate(o.CreatedAt)
		seen[d.Format(dateKey)] = d
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]models.DimTime, 0, len(dates))
	for i, d := range dates {
		_, week := d.ISOWeek()
		dow := isoWeekday(d)
		rows = append(rows, models.DimTime{
			TimeID:     i + 1,
			FullDate:   d,
			Day:        d.Day(),
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			DayOfWeek:  dow,
			DayName:    d.Weekday().String(),
			IsWeekend:  dow >= 5,
			WeekOfYear: week,
		})
	}
	return rows
}

func transformLocations(orders []models.Order) []models.DimLocation {
	seen := make(map[string]struct{})
	var rows []models.DimLocation
	for _, o := range orders {
		addr := o.ShippingAddress
		if addr.City == "" {
			continue
		}
		key := locationKey(addr.City, addr.Governorate)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, models.DimLocation{
			LocationID:  len(rows) + 1,
			City:        addr.City,
			Governorate: orDefault(addr.Governorate, UnknownPlace),
			PostalCode:  orDefault(addr.PostalCode, UnknownPostalCode),
			Country:     orDefault(addr.Country, catalog.Country),
		})
	}
	return rows
}

// transformSales emits one fact per line item. Orders of unknown customers and items of
// unknown products are dropped. Tax and shipping are split evenly over the order's items.
func transformSales(orders []models.Order, schema *models.StarSchema) []models.FactSale {
	customers := make(map[string]int, len(schema.Customers))
	for _, c := range schema.Customers {
		customers[c.MongoID] = c.CustomerID
	}
	products := make(map[string]int, len(schema.Products))
	for _, p := range schema.Products {
		products[p.MongoID] = p.ProductID
	}
	times := make(map[string]int, len(schema.Times))
	for _, t := range schema.Times {
		times[t.FullDate.Format(dateKey)] = t.TimeID
	}
	locations := make(map[string]int, len(schema.Locations))
	for _, l := range schema.Locations {
		locations[locationKey(l.City, l.Governorate)] = l.LocationID
	}

	var rows []models.FactSale
	for _, o := range orders {
		customerID, ok := customers[o.User.Hex()]
		if !ok || len(o.OrderItems) == 0 {
			continue
		}
		locationID, ok := locations[locationKey(o.ShippingAddress.City, o.ShippingAddress.Governorate)]
		if !ok {
			locationID = DefaultLocationID
		}
		timeID := times[calendarDate(o.CreatedAt).Format(dateKey)]
		share := float64(len(o.OrderItems))

		for _, it := range o.OrderItems {
			productID, ok := products[it.Product.Hex()]
			if !ok {
				continue
			}
			rows = append(rows, models.FactSale{
				SaleID:         len(rows) + 1,
				TimeID:         timeID,
				ProductID:      productID,
				CustomerID:     customerID,
				LocationID:     locationID,
				OrderMongoID:   o.ID.Hex(),
				Quantity:       it.Quantity,
				UnitPrice:      it.Price,
				TotalAmount:    RoundMoney(it.Price * float64(it.Quantity)),
				TaxAmount:      RoundMoney(o.TaxPrice / share),
				ShippingAmount: RoundMoney(o.ShippingPrice / share),
				PaymentMethod:  string(o.PaymentMethod),
				OrderStatus:    string(o.Status),
				IsPaid:         o.IsPaid,
				IsDelivered:    o.IsDelivered,
			})
		}
	}
	return rows
}

// calendarDate is the UTC day t falls on.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isoWeekday numbers days from Monday = 0 to Sunday = 6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func locationKey(city, governorate string) string {
	return city + "-" + governorate
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
