package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"` // CATEGORY_IN_USE: medicamentos que la referencian
}

// LimitRequest límite opcional para listados recientes.
type LimitRequest struct {
	Limit int `query:"limit"`
}

// ConfirmRequest las operaciones destructivas exigen confirm=true.
type ConfirmRequest struct {
	Confirm bool `query:"confirm"`
}

// DeletedResponse cantidad de documentos eliminados.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}
