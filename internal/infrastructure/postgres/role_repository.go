package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db Querier) *RoleRepo {
	return &RoleRepo{db: db}
}

// Create persiste un rol nuevo y asigna su ID generado.
func (r *RoleRepo) Create(role *entity.Role) error {
	query := `INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRow(context.Background(), query, role.Name, role.Description).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el rol %q ya existe", domain.ErrInvalidRoleData, role.Name)
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id int) (*entity.Role, error) {
	return r.scanOne(`SELECT id, name, description FROM roles WHERE id = $1`, id)
}

// GetByName obtiene un rol por nombre (único).
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.scanOne(`SELECT id, name, description FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) scanOne(query string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(context.Background(), query, arg).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List devuelve todos los roles ordenados por ID.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.db.Query(context.Background(), `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}
