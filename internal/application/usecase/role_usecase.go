package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

// RoleUseCase casos de uso para roles. El conjunto de roles es abierto y vive
// en la BD; las capacidades administrativas de cada nombre las define policy.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roleRepo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo}
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List() ([]dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

// GetByID obtiene un rol por ID. Devuelve ErrRoleNotFound si no existe.
func (uc *RoleUseCase) GetByID(id int) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	resp := toRoleResponse(role)
	return &resp, nil
}

// Create añade un rol nuevo al conjunto abierto. Requiere canChangeRole
// (administración de cuentas y roles). Un rol recién creado no otorga
// capacidades administrativas hasta que la tabla de policy lo contemple.
func (uc *RoleUseCase) Create(actor policy.Actor, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if !actor.Can(policy.CanChangeRole) {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return nil, fmt.Errorf("%w: name debe tener entre 1 y 50 caracteres", domain.ErrInvalidRoleData)
	}
	existing, err := uc.roleRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el rol %q ya existe", domain.ErrInvalidRoleData, name)
	}
	role := &entity.Role{Name: name, Description: in.Description}
	if err := uc.roleRepo.Create(role); err != nil {
		return nil, err
	}
	resp := toRoleResponse(role)
	return &resp, nil
}

func toRoleResponse(r *entity.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}
