package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room representa una sala de reuniones reservable.
// Eliminar una sala elimina en cascada sus reservas (FK en la BD).
type Room struct {
	ID        string
	Name      string
	Capacity  int             // entero positivo
	Amenities string          // texto libre: "Videoconferencia, Smart board, ..."
	Price     decimal.Decimal // precio por hora, no negativo
	CreatedAt time.Time
}
