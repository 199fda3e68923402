package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación del puerto RoomRepository sobre PostgreSQL.
type RoomRepo struct {
	db Querier
}

// NewRoomRepository construye el adaptador de persistencia para salas.
func NewRoomRepository(db Querier) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = `id, name, capacity, amenities, price, created_at`

// Create persiste una nueva sala.
func (r *RoomRepo) Create(room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, name, capacity, amenities, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(context.Background(), query,
		room.ID, room.Name, room.Capacity, room.Amenities, room.Price, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByID obtiene una sala por ID.
func (r *RoomRepo) GetByID(id string) (*entity.Room, error) {
	return r.scanOne(`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

// LockByID obtiene la sala tomando FOR UPDATE sobre su fila. Dentro de una
// transacción esto serializa a los escritores concurrentes de la misma sala;
// fuera de una transacción el lock se libera de inmediato y equivale a GetByID.
func (r *RoomRepo) LockByID(id string) (*entity.Room, error) {
	return r.scanOne(`SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *RoomRepo) scanOne(query string, arg any) (*entity.Room, error) {
	var room entity.Room
	err := r.db.QueryRow(context.Background(), query, arg).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.Amenities, &room.Price, &room.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// List devuelve todas las salas ordenadas por nombre.
func (r *RoomRepo) List() ([]*entity.Room, error) {
	rows, err := r.db.Query(context.Background(), `SELECT `+roomColumns+` FROM rooms ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Amenities, &room.Price, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// Update actualiza una sala existente (amenities y price).
func (r *RoomRepo) Update(room *entity.Room) error {
	query := `UPDATE rooms SET amenities = $2, price = $3 WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, room.ID, room.Amenities, room.Price)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete elimina una sala por ID; sus reservas caen en cascada.
func (r *RoomRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
