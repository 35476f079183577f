package billing

import (
	"strings"
	"time"

	"electromart-backend/internal/inventory"

	"github.com/shopspring/decimal"
)

// LineItem is a snapshot of a stock entry at selection time. Later ledger
// edits do not retroactively change an already-added line.
type LineItem struct {
	ProductCode string
	ProductName string
	Quantity    int
	Rate        decimal.Decimal
}

// Draft is an in-progress invoice owned by a single admin session. It holds
// no database state of its own; items are validated against the ledger on
// admission but stock is only deducted at commit time.
type Draft struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	InvoiceDate     time.Time
	Items           []LineItem
	Discount        decimal.Decimal
	Tax             decimal.Decimal
}

func NewDraft() *Draft {
	return &Draft{
		InvoiceDate: time.Now(),
		Discount:    decimal.Zero,
		Tax:         decimal.Zero,
	}
}

func (d *Draft) SetCustomer(name, phone, address string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return &ValidationError{Msg: "customerName is required"}
	}
	if phone == "" {
		return &ValidationError{Msg: "customerPhone is required"}
	}
	d.CustomerName = name
	d.CustomerPhone = phone
	d.CustomerAddress = strings.TrimSpace(address)
	return nil
}

func (d *Draft) SetDate(t time.Time) {
	d.InvoiceDate = t
}

func (d *Draft) SetAdjustments(discount, tax decimal.Decimal) error {
	if discount.IsNegative() {
		return &ValidationError{Msg: "discount cannot be negative"}
	}
	if tax.IsNegative() {
		return &ValidationError{Msg: "tax cannot be negative"}
	}
	d.Discount = discount
	d.Tax = tax
	return nil
}

// AddItem admits a line after checking availability against the current
// ledger state. The check is advisory: stock is not reserved here, so a
// passed AddItem does not guarantee a later successful commit. Commit
// re-validates every line.
func (d *Draft) AddItem(ledger *inventory.Ledger, entryID uint, quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Msg: "quantity must be greater than zero"}
	}

	entry, err := ledger.Get(entryID)
	if err != nil {
		return err
	}

	if quantity > entry.Quantity {
		return &inventory.InsufficientStockError{Shortages: []inventory.Shortage{{
			EntryID:     entry.ID,
			ProductCode: entry.ProductCode,
			Requested:   quantity,
			Available:   entry.Quantity,
		}}}
	}

	d.Items = append(d.Items, LineItem{
		ProductCode: entry.ProductCode,
		ProductName: entry.ProductName,
		Quantity:    quantity,
		Rate:        entry.Rate,
	})
	return nil
}

// RemoveItem drops the line at index, preserving the order of the rest.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrIndexOutOfRange
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// Subtotal is the sum of quantity*rate over all lines.
func (d *Draft) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Total is subtotal + tax - discount. It may be negative when the discount
// exceeds subtotal+tax; that is surfaced to the admin as a data-entry
// warning, not rejected here.
func (d *Draft) Total() decimal.Decimal {
	return d.Subtotal().Add(d.Tax).Sub(d.Discount)
}
