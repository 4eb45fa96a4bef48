package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	aws_pkg "github.com/mohamedhosni23/apple-store-bi-project/pkg/aws"
)

// DefaultExportDir is where CSV snapshots land when no directory is configured.
const DefaultExportDir = "./dw_export"

const csvContentType = "text/csv"

// CSVTable is one warehouse table rendered as CSV records.
type CSVTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Bytes encodes the table with a header line.
func (t CSVTable) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVTables renders the star schema in load order.
func CSVTables(s *models.StarSchema) []CSVTable {
	customers := CSVTable{Name: "dim_customer", Header: []string{"customer_id", "mongo_id", "customer_name", "email", "registration_date", "is_active"}}
	for _, c := range s.Customers {
		customers.Rows = append(customers.Rows, []string{
			itoa(c.CustomerID), c.MongoID, c.CustomerName, c.Email, c.RegistrationDate.Format(dateKey), btoa(c.IsActive),
		})
	}

	products := CSVTable{Name: "dim_product", Header: []string{"product_id", "mongo_id", "product_name", "brand", "category", "current_price", "description", "stock_quantity"}}
	for _, p := range s.Products {
		products.Rows = append(products.Rows, []string{
			itoa(p.ProductID), p.MongoID, p.ProductName, p.Brand, p.Category, ftoa(p.CurrentPrice), p.Description, itoa(p.StockQuantity),
		})
	}

	times := CSVTable{Name: "dim_time", Header: []string{"time_id", "full_date", "day", "month", "month_name", "quarter", "year", "day_of_week", "day_name", "is_weekend", "week_of_year"}}
	for _, t := range s.Times {
		times.Rows = append(times.Rows, []string{
			itoa(t.TimeID), t.FullDate.Format(dateKey), itoa(t.Day), itoa(t.Month), t.MonthName, itoa(t.Quarter),
			itoa(t.Year), itoa(t.DayOfWeek), t.DayName, btoa(t.IsWeekend), itoa(t.WeekOfYear),
		})
	}

	locations := CSVTable{Name: "dim_location", Header: []string{"location_id", "city", "governorate", "postal_code", "country"}}
	for _, l := range s.Locations {
		locations.Rows = append(locations.Rows, []string{itoa(l.LocationID), l.City, l.Governorate, l.PostalCode, l.Country})
	}

	sales := CSVTable{Name: "fact_sales", Header: []string{"sale_id", "time_id", "product_id", "customer_id", "location_id", "order_mongo_id",
		"quantity", "unit_price", "total_amount", "tax_amount", "shipping_amount", "payment_method", "order_status", "is_paid", "is_delivered"}}
	for _, f := range s.Sales {
		sales.Rows = append(sales.Rows, []string{
			itoa(f.SaleID), itoa(f.TimeID), itoa(f.ProductID), itoa(f.CustomerID), itoa(f.LocationID), f.OrderMongoID,
			itoa(f.Quantity), ftoa(f.UnitPrice), ftoa(f.TotalAmount), ftoa(f.TaxAmount), ftoa(f.ShippingAmount),
			f.PaymentMethod, f.OrderStatus, btoa(f.IsPaid), btoa(f.IsDelivered),
		})
	}

	return []CSVTable{customers, products, times, locations, sales}
}

// Exporter writes CSV snapshots to disk and optionally mirrors them to S3.
type Exporter struct {
	Dir      string
	Uploader aws_pkg.ObjectUploader
	Bucket   string
	Prefix   string
}

// ExportResult lists what an export produced.
type ExportResult struct {
	Files    []string
	Uploaded []string
}

// Export writes one <table>.csv per table into e.Dir, then uploads each when a bucket is set.
func (e *Exporter) Export(ctx context.Context, s *models.StarSchema) (*ExportResult, error) {
	dir := e.Dir
	if dir == "" {
		dir = DefaultExportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	res := &ExportResult{}
	for _, t := range CSVTables(s) {
		body, err := t.Bytes()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.Name, err)
		}
		file := filepath.Join(dir, t.Name+".csv")
		if err := os.WriteFile(file, body, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", file, err)
		}
		res.Files = append(res.Files, file)

		if e.Uploader == nil || e.Bucket == "" {
			continue
		}
		key := path.Join(e.Prefix, t.Name+".csv")
		if err := e.Uploader.Upload(ctx, e.Bucket, key, csvContentType, body); err != nil {
			return nil, fmt.Errorf("upload %s: %w", t.Name, err)
		}
		res.Uploaded = append(res.Uploaded, key)
	}
	return res, nil
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func btoa(v bool) string { return strconv.FormatBool(v) }
