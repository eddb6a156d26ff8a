package entity

// Category representa una categoría de productos usada por las swap lists.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
