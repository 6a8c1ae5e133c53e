// internal/domain/catalog/entity.go
package catalog

// Category groups products on the menu
type Category string

const (
	CategorySandwich Category = "sandwich"
	CategoryPastry   Category = "pastry"
	CategorySnack    Category = "snack"
	CategorySweet    Category = "sweet"
	CategoryDrink    Category = "drink"
)

// Categories lists every category in menu order
func Categories() []Category {
	return []Category{CategorySandwich, CategoryPastry, CategorySnack, CategorySweet, CategoryDrink}
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents an item on the canteen menu
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"` // Price in cents
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Popular     bool     `json:"popular,omitempty"`
	IsNew       bool     `json:"isNew,omitempty"`
	IsEco       bool     `json:"isEco,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
}
