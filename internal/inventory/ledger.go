package inventory

import (
	"errors"
	"strings"

	"electromart-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is the source of truth for quantity-on-hand and rate per
// stock-keeping unit. Every quantity change goes through a conditional
// UPDATE so concurrent writers cannot drive an entry negative.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

type CreateEntryInput struct {
	ProductCode string
	ProductName string
	CategoryID  *uint
	Quantity    int
	Rate        decimal.Decimal
}

// Create appends a new stock entry. Duplicate product codes are allowed;
// each entry is its own unit of stock.
func (l *Ledger) Create(in CreateEntryInput) (*models.StockEntry, error) {
	in.ProductCode = strings.TrimSpace(in.ProductCode)
	in.ProductName = strings.TrimSpace(in.ProductName)

	if in.ProductCode == "" {
		return nil, &ValidationError{Msg: "productId is required"}
	}
	if in.ProductName == "" {
		return nil, &ValidationError{Msg: "productName is required"}
	}
	if in.Quantity < 0 {
		return nil, &ValidationError{Msg: "quantity cannot be negative"}
	}
	if in.Rate.IsNegative() {
		return nil, &ValidationError{Msg: "rate cannot be negative"}
	}

	entry := models.StockEntry{
		ProductCode: in.ProductCode,
		ProductName: in.ProductName,
		CategoryID:  in.CategoryID,
		Quantity:    in.Quantity,
		Rate:        in.Rate,
	}

	if err := l.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Adjust applies a partial update: deltaQuantity is added to the quantity on
// hand (positive restock, negative correction), newRate replaces the unit
// rate. A delta that would drive the quantity below zero is rejected and the
// entry is left unchanged.
func (l *Ledger) Adjust(id uint, deltaQuantity *int, newRate *decimal.Decimal) (*models.StockEntry, error) {
	var entry models.StockEntry
	if err := l.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if newRate != nil && newRate.IsNegative() {
		return nil, &ValidationError{Msg: "rate cannot be negative"}
	}

	if deltaQuantity != nil && *deltaQuantity != 0 {
		res := l.db.Model(&models.StockEntry{}).
			Where("id = ? AND quantity + ? >= 0", id, *deltaQuantity).
			Update("quantity", gorm.Expr("quantity + ?", *deltaQuantity))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// the guard failed: the delta would have gone negative
			return nil, &InsufficientStockError{Shortages: []Shortage{{
				EntryID:     entry.ID,
				ProductCode: entry.ProductCode,
				Requested:   -*deltaQuantity,
				Available:   entry.Quantity,
			}}}
		}
	}

	if newRate != nil {
		if err := l.db.Model(&models.StockEntry{}).Where("id = ?", id).Update("rate", *newRate).Error; err != nil {
			return nil, err
		}
	}

	if err := l.db.Preload("Category").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes an entry unconditionally. There is no referential check
// against drafts or historical bills.
func (l *Ledger) Remove(id uint) error {
	var entry models.StockEntry
	if err := l.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return l.db.Delete(&entry).Error
}

func (l *Ledger) Get(id uint) (*models.StockEntry, error) {
	var entry models.StockEntry
	if err := l.db.Preload("Category").First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List returns every entry in insertion order.
func (l *Ledger) List() ([]models.StockEntry, error) {
	var entries []models.StockEntry
	if err := l.db.Preload("Category").Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
