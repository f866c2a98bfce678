package entity

import "time"

// User operador de la farmacia.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Title        string    `json:"title"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"passwordHash,omitempty"` // bcrypt; nunca sale por la API
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy,omitempty"`
}

// Actor identidad de sesión derivada del usuario.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Public copia sin el hash de contraseña.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
