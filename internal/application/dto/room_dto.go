package dto

import "github.com/shopspring/decimal"

// CreateRoomRequest entrada para crear una sala.
type CreateRoomRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=255"`
	Capacity  int             `json:"capacity" validate:"required,min=1"`
	Amenities string          `json:"amenities"`
	Price     decimal.Decimal `json:"price" validate:"min=0"` // precio por hora
}

// UpdateRoomRequest entrada para editar una sala. Solo amenities y price son
// editables una vez que existen reservas; name y capacity quedan fijos.
type UpdateRoomRequest struct {
	Name      *string          `json:"name"`
	Capacity  *int             `json:"capacity"`
	Amenities *string          `json:"amenities"`
	Price     *decimal.Decimal `json:"price"`
}

// RoomResponse proyección de una sala.
type RoomResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Capacity  int             `json:"capacity"`
	Amenities string          `json:"amenities"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt string          `json:"createdAt"` // ISO-8601
}
