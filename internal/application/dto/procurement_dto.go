package dto

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// SupplierRequest alta o edición de proveedor.
type SupplierRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

// SupplierOrderRequest nueva orden. OrderNumber vacío se numera como ORD-<n>.
type SupplierOrderRequest struct {
	OrderNumber  string                     `json:"orderNumber"`
	SupplierName string                     `json:"supplierName" validate:"required"`
	Items        []entity.SupplierOrderItem `json:"items" validate:"required,min=1"`
	Date         string                     `json:"date"`
}

// OrderStatusRequest cambio de estado: Pending, Completed o Cancelled.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Completed Cancelled"`
}
