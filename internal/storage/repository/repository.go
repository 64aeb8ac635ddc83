// Package repository reads the external store (products, inventory, market
// prices) through GORM. The panel never writes these tables; they are owned
// by the dashboard's CRUD surface.
package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/paineldocafe/panel/internal/domain"
)

type productModel struct {
	ID   string `gorm:"primaryKey;column:id"`
	Slug string `gorm:"column:slug"`
	Name string `gorm:"column:name"`
	Unit string `gorm:"column:unit"`
}

func (productModel) TableName() string { return "products" }

type inventoryModel struct {
	ID            string       `gorm:"primaryKey;column:id"`
	UserID        string       `gorm:"column:user_id"`
	ProductID     string       `gorm:"column:product_id"`
	Quantity      int64        `gorm:"column:quantity"`
	HarvestSeason string       `gorm:"column:harvest_season"`
	Product       productModel `gorm:"foreignKey:ProductID"`
}

func (inventoryModel) TableName() string { return "user_inventory" }

type marketPriceModel struct {
	ID            string          `gorm:"primaryKey;column:id"`
	ProductID     string          `gorm:"column:product_id"`
	PricePerBag   decimal.Decimal `gorm:"column:price_per_bag"`
	Scenario      string          `gorm:"column:scenario"`
	EffectiveDate time.Time       `gorm:"column:effective_date"`
}

func (marketPriceModel) TableName() string { return "market_prices" }

// Store is the read-side adapter over the external MySQL store.
type Store struct {
	db     *gorm.DB
	userID string
}

// Open connects to the external store and scopes inventory reads to userID.
func Open(dsn, userID string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to external store")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "access underlying sql.DB")
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{db: db, userID: userID}, nil
}

// Products returns the product reference data.
func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "query products")
	}

	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, domain.Product{ID: m.ID, Slug: m.Slug, Name: m.Name, Unit: m.Unit})
	}
	return products, nil
}

// Inventory returns the user's inventory joined with products, newest
// harvest seasons first.
func (s *Store) Inventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	query := s.db.WithContext(ctx).Preload("Product").Order("harvest_season DESC")
	if s.userID != "" {
		query = query.Where("user_id = ?", s.userID)
	}

	var models []inventoryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "query inventory")
	}

	records := make([]domain.InventoryRecord, 0, len(models))
	for _, m := range models {
		records = append(records, domain.InventoryRecord{
			ID:            m.ID,
			ProductID:     m.ProductID,
			ProductName:   m.Product.Name,
			Quantity:      m.Quantity,
			HarvestSeason: m.HarvestSeason,
		})
	}
	return records, nil
}

// MarketPrices returns all candidate price records.
func (s *Store) MarketPrices(ctx context.Context) ([]domain.MarketPriceRecord, error) {
	var models []marketPriceModel
	if err := s.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "query market prices")
	}

	records := make([]domain.MarketPriceRecord, 0, len(models))
	for _, m := range models {
		records = append(records, domain.MarketPriceRecord{
			ProductID:     m.ProductID,
			PricePerBag:   m.PricePerBag,
			Scenario:      domain.Scenario(m.Scenario),
			EffectiveDate: m.EffectiveDate,
		})
	}
	return records, nil
}
