package entity

import "time"

// User representa un usuario del sistema. Siempre referencia exactamente un Role.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // único, almacenado en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RoleID       int
	RoleName     string // resuelto vía JOIN con roles, no es columna de users
	CreatedAt    time.Time
}

// FullName devuelve el nombre para mostrar (firstName + lastName).
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
