package reporting

import (
	"fmt"

	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportCostReportsHandler streams the cost report as an xlsx workbook.
func ExportCostReportsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		reports, err := BuildCostReports(c.Context(), st, *user.FactoryID)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		headers := []string{"OrderID", "Product", "ProducedQty", "MaterialCost",
			"CostPerUnit", "SellingPrice", "Revenue", "Profit", "MarginPercent", "CompletedAt"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue("Sheet1", cell, h)
		}

		for i, r := range reports {
			row := i + 2
			completedAt := ""
			if r.CompletedAt != nil {
				completedAt = *r.CompletedAt
			}
			values := []any{r.OrderID, r.ProductName, r.ProducedQty, r.MaterialCost,
				r.CostPerUnit, r.SellingPrice, r.Revenue, r.Profit, r.MarginPercent, completedAt}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				f.SetCellValue("Sheet1", cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "cost-reports.xlsx"))
		return c.Send(buf.Bytes())
	}
}
