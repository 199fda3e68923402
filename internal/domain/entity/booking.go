package entity

import (
	"strings"
	"time"
)

// Booking representa una reserva de sala: un rango [StartTime, EndTime) dentro
// de un día. Invariante del sistema: dos reservas de la misma sala y fecha
// nunca se solapan (intervalos semiabiertos, fin == inicio siguiente permitido).
type Booking struct {
	ID           string
	RoomID       string
	UserID       string // dueño de la reserva
	UserName     string // resuelto vía JOIN con users, no es columna de bookings
	Date         time.Time
	StartTime    string // "HH:MM" (hora de pared del mismo día)
	EndTime      string // "HH:MM"
	Title        string
	Participants string // texto libre separado por comas, como viaja en la BD
	CreatedAt    time.Time
}

// ParticipantList separa Participants en una lista limpia para la proyección.
func (b *Booking) ParticipantList() []string {
	if strings.TrimSpace(b.Participants) == "" {
		return []string{}
	}
	parts := strings.Split(b.Participants, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinParticipants une una lista en el formato almacenado (separado por comas).
func JoinParticipants(participants []string) string {
	clean := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, ", ")
}
