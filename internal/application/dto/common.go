package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Conflicts detalla las reservas que bloquean el horario cuando
	// Code == "TIME_SLOT_NOT_AVAILABLE".
	Conflicts []ConflictDetail `json:"conflicts,omitempty"`
}

// ConflictDetail identifica una reserva en conflicto.
type ConflictDetail struct {
	BookingID string `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
