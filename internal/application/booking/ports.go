package booking

import (
	"context"

	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el chequeo de disponibilidad y
// la escritura posterior ocurren en el mismo alcance atómico: el perdedor de
// una carrera verificar-luego-insertar recibe ErrTimeSlotNotAvailable en vez
// de colarse como doble reserva.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bookingRepo repository.BookingRepository,
		roomRepo repository.RoomRepository,
		userRepo repository.UserRepository,
	) error) error
}
