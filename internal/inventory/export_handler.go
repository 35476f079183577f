package inventory

import (
	"fmt"

	"electromart-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/stock/export
// Current stock as an XLSX sheet for offline stock-taking.
func ExportStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := NewLedger(database.DB).List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock entries")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Stock"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"ID", "Product ID", "Product Name", "Category", "Quantity", "Rate"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, e := range entries {
			category := ""
			if e.Category != nil {
				category = e.Category.Name
			}
			values := []interface{}{e.ID, e.ProductCode, e.ProductName, category, e.Quantity, e.Rate.StringFixed(2)}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate export")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "stock.xlsx"))
		return c.Send(buf.Bytes())
	}
}
