// Package receipt formats a persisted sale as a printable plain-text document.
// Pure presentation; it never touches the catalog.
package receipt

import (
	"fmt"
	"strings"

	"poshop/models"
)

const width = 42

// Render produces a fixed-width receipt from a sale's own snapshot fields, so
// the output stays correct even after the products on it change or disappear.
func Render(sale *models.Sale) string {
	var b strings.Builder

	line := strings.Repeat("=", width)
	b.WriteString(line + "\n")
	b.WriteString(center("SALES RECEIPT") + "\n")
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Sale:   %s\n", sale.ID)
	fmt.Fprintf(&b, "Date:   %s\n", sale.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Seller: %s\n", sale.SoldByName)
	b.WriteString(strings.Repeat("-", width) + "\n")

	for _, item := range sale.Items {
		b.WriteString(item.ProductName + "\n")
		fmt.Fprintf(&b, "  %d x %s%s\n",
			item.Quantity,
			item.Price.StringFixed(2),
			pad(item.Subtotal.StringFixed(2), item.Quantity, item.Price.StringFixed(2)),
		)
	}

	b.WriteString(strings.Repeat("-", width) + "\n")
	total := "TOTAL"
	amount := sale.TotalAmount.StringFixed(2)
	fmt.Fprintf(&b, "%s%s%s\n", total, strings.Repeat(" ", width-len(total)-len(amount)), amount)
	b.WriteString(line + "\n")

	return b.String()
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// pad right-aligns the subtotal on the quantity/price line.
func pad(subtotal string, qty int, price string) string {
	used := 2 + len(fmt.Sprint(qty)) + 3 + len(price)
	gap := width - used - len(subtotal)
	if gap < 1 {
		gap = 1
	}
	return strings.Repeat(" ", gap) + subtotal
}
