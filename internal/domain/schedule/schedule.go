// Package schedule implementa el motor de disponibilidad: decide si un rango
// horario [inicio, fin) está libre en una sala dado el conjunto de reservas
// existentes de ese día. Es puro (sin efectos): el servicio de reservas lo
// evalúa dentro de la misma transacción que la escritura posterior.
package schedule

import (
	"fmt"

	"github.com/jhoicas/reservas-api/internal/domain"
)

const minutesPerDay = 24 * 60

// ParseClock convierte "HH:MM" (hora de pared, 00:00–23:59) a minutos desde
// medianoche. Formato estricto de cinco caracteres con cero a la izquierda.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: hora %q debe tener formato HH:MM", domain.ErrInvalidBookingData, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: hora %q debe tener formato HH:MM", domain.ErrInvalidBookingData, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: hora %q fuera de rango", domain.ErrInvalidBookingData, s)
	}
	return h*60 + m, nil
}

// FormatClock es el inverso de ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Range es un rango horario semiabierto [Start, End) en minutos desde medianoche.
type Range struct {
	Start int
	End   int
}

// NewRange valida y construye un rango a partir de "HH:MM". Falla con
// ErrInvalidBookingData si el formato es inválido o start >= end.
func NewRange(startTime, endTime string) (Range, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Range{}, err
	}
	if start >= end {
		return Range{}, fmt.Errorf("%w: la hora de inicio %s debe ser anterior a la de fin %s",
			domain.ErrInvalidBookingData, startTime, endTime)
	}
	if end > minutesPerDay {
		return Range{}, fmt.Errorf("%w: el rango excede el día", domain.ErrInvalidBookingData)
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps aplica la regla de solape semiabierto: dos rangos chocan si
// a.Start < b.End && b.Start < a.End. Reservas espalda con espalda
// (fin == inicio siguiente) NO chocan: se favorece el aprovechamiento de la
// sala sobre el tiempo de colchón.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Slot es una reserva existente vista por el motor: identidad + rango horario.
type Slot struct {
	BookingID string
	StartTime string
	EndTime   string
}

// FindConflicts devuelve los slots existentes que solapan con el candidato,
// excluyendo excludeBookingID (usado al revalidar la actualización de una
// reserva, que no debe chocar consigo misma). Slots con horas ilegibles se
// tratan como conflicto: mejor rechazar que dejar colar un doble booking.
func FindConflicts(existing []Slot, candidate Range, excludeBookingID string) []Slot {
	var conflicts []Slot
	for _, s := range existing {
		if excludeBookingID != "" && s.BookingID == excludeBookingID {
			continue
		}
		r, err := NewRange(s.StartTime, s.EndTime)
		if err != nil {
			conflicts = append(conflicts, s)
			continue
		}
		if candidate.Overlaps(r) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
