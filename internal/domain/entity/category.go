package entity

// Category categoría de medicamentos. Name es la clave única (sensible a mayúsculas).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
