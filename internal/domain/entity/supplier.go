package entity

// Supplier proveedor o distribuidor.
type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Estados de una orden a proveedor.
const (
	OrderPending   = "Pending"
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
)

// SupplierOrderItem ítem pedido.
type SupplierOrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SupplierOrder orden de compra a un proveedor.
type SupplierOrder struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	Items        []SupplierOrderItem `json:"items"`
	SupplierName string              `json:"supplierName"`
	Status       string              `json:"status"`
	Date         string              `json:"date"` // YYYY-MM-DD
	DeliveredOn  string              `json:"deliveredOn,omitempty"`
	CancelledOn  string              `json:"cancelledOn,omitempty"`
}
