package entity

// Roles de la farmacia.
const (
	RoleManager    = "manager"
	RoleStaff      = "staff"
	RoleOwner      = "owner"
	RolePharmacist = "pharmacist"
)

// IsValidRole indica si role pertenece al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleManager, RoleStaff, RoleOwner, RolePharmacist:
		return true
	}
	return false
}

// Actor identidad del operador de la sesión actual. El núcleo la trata como un dato opaco.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// UnknownActor se usa cuando no hay identidad disponible.
var UnknownActor = Actor{ID: "unknown", Name: "Unknown User", Role: "unknown"}
