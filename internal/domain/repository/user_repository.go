package repository

import "github.com/jhoicas/reservas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando la entidad no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error) // email en minúsculas
	List() ([]*entity.User, error)
	UpdateRole(userID string, roleID int) error
	Delete(id string) error
}
