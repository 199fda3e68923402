package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/reservas-api/internal/application/auth"
	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: consulta, cambio de rol
// y eliminación. Las mutaciones están protegidas por la tabla de capacidades.
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo}
}

// GetByID obtiene un usuario por ID. Devuelve ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol de un usuario. Requiere que el actor tenga la
// capacidad canChangeRole y que el nombre de rol exista como dato.
func (uc *UserUseCase) UpdateRole(actor policy.Actor, userID string, in dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	if !actor.Can(policy.CanChangeRole) {
		return nil, domain.ErrForbidden
	}
	roleName := strings.TrimSpace(in.Role)
	if roleName == "" {
		return nil, fmt.Errorf("%w: role es requerido", domain.ErrInvalidRoleData)
	}
	role, err := uc.roleRepo.GetByName(roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: el rol %q no existe", domain.ErrInvalidRoleData, roleName)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.userRepo.UpdateRole(user.ID, role.ID); err != nil {
		return nil, err
	}
	user.RoleID = role.ID
	user.RoleName = role.Name
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. Administración de cuentas: misma capacidad que
// el cambio de rol. La eliminación arrastra sus reservas (FK en cascada).
func (uc *UserUseCase) Delete(actor policy.Actor, userID string) error {
	if !actor.Can(policy.CanChangeRole) {
		return domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(userID)
}
