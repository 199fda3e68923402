package repository

import (
	"time"

	"github.com/jhoicas/reservas-api/internal/domain/entity"
)

// BookingFilter restringe los listados de reservas. Campos en cero = sin filtro.
type BookingFilter struct {
	RoomID string
	UserID string
	From   *time.Time // fecha inclusive
	To     *time.Time // fecha inclusive
}

// BookingRepository define el puerto de persistencia para Booking.
type BookingRepository interface {
	Create(booking *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	// ListByRoomAndDate devuelve las reservas de una sala en una fecha,
	// el universo que examina el motor de disponibilidad.
	ListByRoomAndDate(roomID string, date time.Time) ([]*entity.Booking, error)
	// List devuelve reservas filtradas, ordenadas por fecha, hora de inicio e
	// id ascendente (orden estable para paginar sin duplicados).
	List(filter BookingFilter) ([]*entity.Booking, error)
	Update(booking *entity.Booking) error
	Delete(id string) error
	DeleteAll() error
}
