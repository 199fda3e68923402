package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrRoomNotFound    = errors.New("sala no encontrada")
	ErrBookingNotFound = errors.New("reserva no encontrada")
	ErrRoleNotFound    = errors.New("rol no encontrado")

	ErrInvalidUserData    = errors.New("datos de usuario inválidos")
	ErrInvalidRoomData    = errors.New("datos de sala inválidos")
	ErrInvalidBookingData = errors.New("datos de reserva inválidos")
	ErrInvalidRoleData    = errors.New("datos de rol inválidos")

	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrTimeSlotNotAvailable = errors.New("el horario no está disponible")

	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// BookingConflict identifica una reserva existente que bloquea el horario solicitado.
type BookingConflict struct {
	BookingID string
	StartTime string
	EndTime   string
}

// TimeSlotConflictError envuelve ErrTimeSlotNotAvailable con las reservas en conflicto,
// para que la capa HTTP pueda informar qué reserva bloquea el horario.
type TimeSlotConflictError struct {
	Conflicts []BookingConflict
}

// Error implementa error.
func (e *TimeSlotConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return ErrTimeSlotNotAvailable.Error()
	}
	c := e.Conflicts[0]
	return fmt.Sprintf("%s: conflicto con la reserva %s (%s-%s)",
		ErrTimeSlotNotAvailable.Error(), c.BookingID, c.StartTime, c.EndTime)
}

// Unwrap permite errors.Is(err, ErrTimeSlotNotAvailable).
func (e *TimeSlotConflictError) Unwrap() error {
	return ErrTimeSlotNotAvailable
}
