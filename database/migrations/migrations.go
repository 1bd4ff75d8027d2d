// Package migrations registers the POS schema with pkg/migration.
// Import it for side effects wherever migrations run.
package migrations

import (
	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000100_create_branches_table", &createTable{model: &models.Branch{}, table: "branches"})
	migration.Register("20260101000200_create_users_table", &createTable{model: &models.User{}, table: "users"})
	migration.Register("20260101000300_create_products_table", &createTable{model: &models.Product{}, table: "products"})
	migration.Register("20260101000400_create_inventory_table", &createTable{model: &models.StockRecord{}, table: "inventory"})
	migration.Register("20260101000500_create_sales_table", &createTable{model: &models.Sale{}, table: "sales"})
	migration.Register("20260101000600_create_sale_items_table", &createTable{model: &models.SaleLineItem{}, table: "sale_items"})
	migration.Register("20260101000700_create_alerts_table", &createTable{model: &models.Alert{}, table: "alerts"})
}

// createTable creates the table for model and drops it on rollback.
type createTable struct {
	model interface{}
	table string
}

func (m *createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m *createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.table)
}
