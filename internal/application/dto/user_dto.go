package dto

// RegisterRequest entrada para registro (password en texto, se hashea en el use case).
// Claves camelCase: es el contrato que consume el frontend.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=4,max=100"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y proyección del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse proyección de un usuario (sin credenciales).
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // firstName + lastName
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"` // ISO-8601
}

// UpdateUserRoleRequest entrada para cambiar el rol de un usuario.
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
