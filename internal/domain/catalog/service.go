// internal/domain/catalog/service.go
package catalog

import "errors"

// ErrProductNotFound is returned when a product id is not on the menu
var ErrProductNotFound = errors.New("product not found")

var byID = func() map[string]int {
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	return index
}()

// All returns the whole menu in display order
func All() []Product {
	return filter(func(Product) bool { return true })
}

// ByCategory returns the products of one category
func ByCategory(category Category) []Product {
	return filter(func(p Product) bool { return p.Category == category })
}

// Popular returns the products flagged as popular
func Popular() []Product {
	return filter(func(p Product) bool { return p.Popular })
}

// ByID looks a product up by id
func ByID(id string) (Product, bool) {
	i, ok := byID[id]
	if !ok {
		return Product{}, false
	}
	return clone(products[i]), true
}

// Get is ByID with an error for callers that propagate failures
func Get(id string) (Product, error) {
	p, ok := ByID(id)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func filter(keep func(Product) bool) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			result = append(result, clone(p))
		}
	}
	return result
}

// clone copies the optional pointer fields so callers cannot reach the menu
func clone(p Product) Product {
	if p.Rating != nil {
		r := *p.Rating
		p.Rating = &r
	}
	if p.ReviewCount != nil {
		n := *p.ReviewCount
		p.ReviewCount = &n
	}
	return p
}
