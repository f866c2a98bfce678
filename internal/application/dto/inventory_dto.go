package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/recommendation"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// MedicineRequest body de POST/PUT /api/medicines. Los numéricos ausentes quedan en 0.
type MedicineRequest struct {
	Name          string           `json:"name" validate:"required"`
	Category      string           `json:"category" validate:"required"`
	Quantity      *int             `json:"quantity"`
	Unit          string           `json:"unit"`
	MinStockLevel *int             `json:"minStockLevel"`
	ExpiryDate    string           `json:"expiryDate" validate:"required"`
	Supplier      string           `json:"supplier" validate:"required"`
	Price         *decimal.Decimal `json:"price"`
}

// MedicineListResponse listado con el total de registros devueltos.
type MedicineListResponse struct {
	Items []entity.Medicine `json:"items"`
	Total int               `json:"total"`
}

// CategoryRequest body de POST /api/categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryAddedResponse Created=false cuando la categoría ya existía.
type CategoryAddedResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// RecommendationsResponse sugerencias recortadas al límite configurado.
type RecommendationsResponse struct {
	Items []recommendation.Recommendation `json:"items"`
	Limit int                             `json:"limit"`
}
