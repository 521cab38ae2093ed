package state

import (
	"strings"

	"e-shopping/internal/domain"
)

// CategoryAll selects every product regardless of category
const CategoryAll = "all"

// FilterProducts keeps the products of category (case-insensitive, "all" or
// blank keeps everything) whose name, description and category contain the
// trimmed search text, case-insensitively. The result is a new slice.
func FilterProducts(products []domain.Product, category, search string) []domain.Product {
	cat := strings.ToLower(category)
	if cat == "" {
		cat = CategoryAll
	}
	q := strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if cat != CategoryAll && strings.ToLower(p.Category) != cat {
			continue
		}
		if q != "" {
			hay := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Categories lists "all" followed by each distinct product category in the
// order it first appears
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	out := []string{CategoryAll}
	for _, p := range products {
		if p.Category == "" || seen[strings.ToLower(p.Category)] {
			continue
		}
		seen[strings.ToLower(p.Category)] = true
		out = append(out, p.Category)
	}
	return out
}

// CartCount sums the quantities of items
func CartCount(items []domain.CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Qty
	}
	return count
}

// CartTotal sums qty × price over items
func CartTotal(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += int64(it.Qty) * it.Product.Price
	}
	return total
}
