package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación del puerto BookingRepository sobre PostgreSQL.
// El nombre del dueño se resuelve con JOIN a users en todas las lecturas.
type BookingRepo struct {
	db Querier
}

// NewBookingRepository construye el adaptador de persistencia para reservas.
// db puede ser el pool o una transacción (el motor de disponibilidad exige tx).
func NewBookingRepository(db Querier) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `b.id, b.room_id, b.user_id,
	u.first_name || ' ' || u.last_name,
	b.date, b.start_time, b.end_time, b.title, b.participants, b.created_at`

const dateLayout = "2006-01-02"

// Create persiste una nueva reserva. Si el constraint de exclusión del
// esquema detecta un solape que el lock de fila no alcanzó a frenar, el
// error se traduce al mismo ErrTimeSlotNotAvailable del motor.
func (r *BookingRepo) Create(booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, user_id, date, start_time, end_time, title, participants, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(context.Background(), query,
		booking.ID, booking.RoomID, booking.UserID, booking.Date.Format(dateLayout),
		booking.StartTime, booking.EndTime, booking.Title, booking.Participants,
		booking.CreatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrTimeSlotNotAvailable
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *BookingRepo) GetByID(id string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`
	var b entity.Booking
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.RoomID, &b.UserID, &b.UserName,
		&b.Date, &b.StartTime, &b.EndTime, &b.Title, &b.Participants, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListByRoomAndDate devuelve las reservas de una sala en una fecha: el
// universo que examina el motor de disponibilidad.
func (r *BookingRepo) ListByRoomAndDate(roomID string, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE b.room_id = $1 AND b.date = $2
		ORDER BY b.start_time, b.id`
	return r.list(query, roomID, date.Format(dateLayout))
}

// List devuelve reservas filtradas, ordenadas por fecha, hora de inicio e id
// ascendente: orden estable y determinista para que los clientes paginen sin
// duplicados.
func (r *BookingRepo) List(filter repository.BookingFilter) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b JOIN users u ON u.id = b.user_id
		WHERE ($1 = '' OR b.room_id = $1)
		  AND ($2 = '' OR b.user_id = $2)
		  AND ($3::date IS NULL OR b.date >= $3)
		  AND ($4::date IS NULL OR b.date <= $4)
		ORDER BY b.date, b.start_time, b.id`
	var from, to any
	if filter.From != nil {
		from = filter.From.Format(dateLayout)
	}
	if filter.To != nil {
		to = filter.To.Format(dateLayout)
	}
	return r.list(query, filter.RoomID, filter.UserID, from, to)
}

func (r *BookingRepo) list(query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.UserID, &b.UserName,
			&b.Date, &b.StartTime, &b.EndTime, &b.Title, &b.Participants, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza una reserva existente.
func (r *BookingRepo) Update(booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET room_id = $2, date = $3, start_time = $4, end_time = $5, title = $6, participants = $7
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		booking.ID, booking.RoomID, booking.Date.Format(dateLayout),
		booking.StartTime, booking.EndTime, booking.Title, booking.Participants,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrTimeSlotNotAvailable
		}
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Delete elimina una reserva por ID (borrado duro).
func (r *BookingRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de reservas (reset administrativo).
func (r *BookingRepo) DeleteAll() error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM bookings`)
	if err != nil {
		return fmt.Errorf("delete bookings: %w", err)
	}
	return nil
}
