package entity

// PharmacyProfile datos de la farmacia que encabezan los recibos.
type PharmacyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}
