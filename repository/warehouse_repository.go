package repository

import (
	"context"
	"fmt"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"gorm.io/gorm"
)

// DefaultBatchSize bounds the rows per INSERT statement.
const DefaultBatchSize = 500

type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// warehouseTables lists the star schema with the fact table first so drops respect references.
func warehouseTables() []interface{} {
	return []interface{}{
		&models.FactSale{},
		&models.DimTime{},
		&models.DimProduct{},
		&models.DimCustomer{},
		&models.DimLocation{},
	}
}

// WarehouseTableNames returns the table names in the order they are reported.
func WarehouseTableNames() []string {
	return []string{"dim_customer", "dim_product", "dim_time", "dim_location", "fact_sales"}
}

// ResetSchema drops and recreates every star-schema table.
func (r *GormWarehouseRepository) ResetSchema(ctx context.Context) error {
	m := r.db.WithContext(ctx).Migrator()
	for _, t := range warehouseTables() {
		if err := m.DropTable(t); err != nil {
			return fmt.Errorf("drop warehouse table: %w", err)
		}
	}
	tables := warehouseTables()
	// dimensions before facts
	for i := len(tables) - 1; i >= 0; i-- {
		if err := m.AutoMigrate(tables[i]); err != nil {
			return fmt.Errorf("create warehouse table: %w", err)
		}
	}
	return nil
}

// Load inserts dimensions then facts inside one transaction.
func (r *GormWarehouseRepository) Load(ctx context.Context, schema *models.StarSchema, batchSize int) error {
	if schema == nil {
		return fmt.Errorf("nil star schema")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(schema.Customers) > 0 {
			if err := tx.CreateInBatches(schema.Customers, batchSize).Error; err != nil {
				return fmt.Errorf("load dim_customer: %w", err)
			}
		}
		if len(schema.Products) > 0 {
			if err := tx.CreateInBatches(schema.Products, batchSize).Error; err != nil {
				return fmt.Errorf("load dim_product: %w", err)
			}
		}
		if len(schema.Times) > 0 {
			if err := tx.CreateInBatches(schema.Times, batchSize).Error; err != nil {
				return fmt.Errorf("load dim_time: %w", err)
			}
		}
		if len(schema.Locations) > 0 {
			if err := tx.CreateInBatches(schema.Locations, batchSize).Error; err != nil {
				return fmt.Errorf("load dim_location: %w", err)
			}
		}
		if len(schema.Sales) > 0 {
			if err := tx.CreateInBatches(schema.Sales, batchSize).Error; err != nil {
				return fmt.Errorf("load fact_sales: %w", err)
			}
		}
		return nil
	})
}

// Report reads back row counts, paid revenue, and the top categories and products.
func (r *GormWarehouseRepository) Report(ctx context.Context, topN int) (*models.WarehouseReport, error) {
	db := r.db.WithContext(ctx)
	report := &models.WarehouseReport{TableCounts: make(map[string]int64)}

	for _, name := range WarehouseTableNames() {
		var n int64
		if err := db.Table(name).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		report.TableCounts[name] = n
	}

	if err := db.Table("fact_sales").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("is_paid = ?", true).
		Scan(&report.PaidRevenue).Error; err != nil {
		return nil, fmt.Errorf("sum paid revenue: %w", err)
	}

	if err := db.Table("fact_sales AS f").
		Select("p.category AS category, SUM(f.total_amount) AS revenue").
		Joins("JOIN dim_product AS p ON f.product_id = p.product_id").
		Where("f.is_paid = ?", true).
		Group("p.category").
		Order("revenue DESC").
		Limit(topN).
		Scan(&report.TopCategories).Error; err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}

	if err := db.Table("fact_sales AS f").
		Select("p.product_name AS product_name, SUM(f.quantity) AS units_sold").
		Joins("JOIN dim_product AS p ON f.product_id = p.product_id").
		Group("p.product_name").
		Order("units_sold DESC").
		Limit(topN).
		Scan(&report.TopProducts).Error; err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	return report, nil
}
