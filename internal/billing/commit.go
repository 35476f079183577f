package billing

import (
	"errors"
	"strings"

	"electromart-backend/internal/inventory"
	"electromart-backend/internal/models"

	"gorm.io/gorm"
)

// CommitService is the only path by which a draft becomes a durable Bill.
// Deduction and Bill persistence happen in one transaction: either every
// line is deducted and the Bill is written, or nothing changes.
type CommitService struct {
	db *gorm.DB
}

func NewCommitService(db *gorm.DB) *CommitService {
	return &CommitService{db: db}
}

// Commit re-validates availability for every line at commit time (not
// add-time) and decrements matching stock entries with a conditional UPDATE,
// so two commits racing for the last units cannot both succeed. On any
// shortage the transaction rolls back and the error lists every short line.
func (s *CommitService) Commit(draft *Draft) (*models.Bill, error) {
	if len(draft.Items) == 0 {
		return nil, &ValidationError{Msg: "bill must contain at least one item"}
	}
	if strings.TrimSpace(draft.CustomerName) == "" {
		return nil, &ValidationError{Msg: "customerName is required"}
	}
	if strings.TrimSpace(draft.CustomerPhone) == "" {
		return nil, &ValidationError{Msg: "customerPhone is required"}
	}

	var bill *models.Bill

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var shortages []inventory.Shortage

		for _, item := range draft.Items {
			// Duplicate product codes are allowed in the ledger; the
			// oldest matching entry is the one a bill draws from.
			var entry models.StockEntry
			err := tx.Where("product_code = ?", item.ProductCode).Order("id asc").First(&entry).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				shortages = append(shortages, inventory.Shortage{
					ProductCode: item.ProductCode,
					Requested:   item.Quantity,
					Available:   0,
				})
				continue
			}
			if err != nil {
				return err
			}

			if len(shortages) > 0 {
				// Already failing: keep evaluating the rest read-only so
				// the error enumerates every short line.
				if entry.Quantity < item.Quantity {
					shortages = append(shortages, inventory.Shortage{
						EntryID:     entry.ID,
						ProductCode: entry.ProductCode,
						Requested:   item.Quantity,
						Available:   entry.Quantity,
					})
				}
				continue
			}

			res := tx.Model(&models.StockEntry{}).
				Where("id = ? AND quantity >= ?", entry.ID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Short, or a concurrent commit got there first. Re-read
				// for the real availability.
				if err := tx.First(&entry, entry.ID).Error; err != nil {
					return err
				}
				shortages = append(shortages, inventory.Shortage{
					EntryID:     entry.ID,
					ProductCode: entry.ProductCode,
					Requested:   item.Quantity,
					Available:   entry.Quantity,
				})
			}
		}

		if len(shortages) > 0 {
			return &inventory.InsufficientStockError{Shortages: shortages}
		}

		b := models.Bill{
			CustomerName:    draft.CustomerName,
			CustomerPhone:   draft.CustomerPhone,
			CustomerAddress: draft.CustomerAddress,
			InvoiceDate:     draft.InvoiceDate,
			Discount:        draft.Discount,
			Tax:             draft.Tax,
			Total:           draft.Total(),
		}
		b.Items = make([]models.BillItem, 0, len(draft.Items))
		for _, item := range draft.Items {
			b.Items = append(b.Items, models.BillItem{
				ProductCode: item.ProductCode,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
			})
		}

		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		bill = &b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bill, nil
}

// ListBills returns the append-only bill collection, oldest first. Callers
// reverse for display.
func (s *CommitService) ListBills() ([]models.Bill, error) {
	var bills []models.Bill
	if err := s.db.Preload("Items").Order("id asc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}
