package dto

// CreateBookingRequest entrada para crear una reserva.
type CreateBookingRequest struct {
	RoomID       string   `json:"roomId" validate:"required"`
	Date         string   `json:"date" validate:"required"`      // "2006-01-02"
	StartTime    string   `json:"startTime" validate:"required"` // "HH:MM"
	EndTime      string   `json:"endTime" validate:"required"`   // "HH:MM"
	Title        string   `json:"title" validate:"required,max=255"`
	Participants []string `json:"participants"`
}

// UpdateBookingRequest entrada para actualizar una reserva; mismos campos que
// la creación, revalidados con la propia reserva excluida del chequeo de solape.
type UpdateBookingRequest struct {
	RoomID       string   `json:"roomId" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	StartTime    string   `json:"startTime" validate:"required"`
	EndTime      string   `json:"endTime" validate:"required"`
	Title        string   `json:"title" validate:"required,max=255"`
	Participants []string `json:"participants"`
}

// BookingResponse proyección de una reserva en el cable.
type BookingResponse struct {
	ID           string   `json:"id"`
	RoomID       string   `json:"roomId"`
	UserID       string   `json:"userId"`
	UserName     string   `json:"userName"`
	Date         string   `json:"date"` // ISO-8601 (solo fecha)
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	CreatedAt    string   `json:"createdAt"` // ISO-8601
}

// AvailabilityResponse salida de la consulta de disponibilidad de una sala.
type AvailabilityResponse struct {
	Available bool             `json:"available"`
	Conflicts []ConflictDetail `json:"conflicts,omitempty"`
}
