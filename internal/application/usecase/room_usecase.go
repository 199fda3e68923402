package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

// RoomUseCase casos de uso CRUD para salas. Las mutaciones requieren la
// capacidad canManageRooms.
type RoomUseCase struct {
	roomRepo repository.RoomRepository
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(roomRepo repository.RoomRepository) *RoomUseCase {
	return &RoomUseCase{roomRepo: roomRepo}
}

// Create crea una nueva sala.
func (uc *RoomUseCase) Create(actor policy.Actor, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if !actor.Can(policy.CanManageRooms) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidRoomData)
	}
	if in.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity debe ser positivo", domain.ErrInvalidRoomData)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidRoomData)
	}
	room := &entity.Room{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Capacity:  in.Capacity,
		Amenities: in.Amenities,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}
	if err := uc.roomRepo.Create(room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// GetByID obtiene una sala por ID. Devuelve ErrRoomNotFound si no existe.
func (uc *RoomUseCase) GetByID(id string) (*dto.RoomResponse, error) {
	room, err := uc.roomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	return toRoomResponse(room), nil
}

// List devuelve todas las salas.
func (uc *RoomUseCase) List() ([]dto.RoomResponse, error) {
	rooms, err := uc.roomRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, *toRoomResponse(r))
	}
	return out, nil
}

// Update edita una sala existente. Solo amenities y price: el nombre y la
// capacidad quedan fijos una vez creada la sala (las reservas ya emitidas
// dependen de ellos).
func (uc *RoomUseCase) Update(actor policy.Actor, id string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	if !actor.Can(policy.CanManageRooms) {
		return nil, domain.ErrForbidden
	}
	room, err := uc.roomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	if in.Name != nil || in.Capacity != nil {
		return nil, fmt.Errorf("%w: name y capacity no son editables", domain.ErrInvalidRoomData)
	}
	if in.Amenities != nil {
		room.Amenities = *in.Amenities
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidRoomData)
		}
		room.Price = *in.Price
	}
	if err := uc.roomRepo.Update(room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// Delete elimina una sala; sus reservas caen en cascada (FK en la BD).
func (uc *RoomUseCase) Delete(actor policy.Actor, id string) error {
	if !actor.Can(policy.CanManageRooms) {
		return domain.ErrForbidden
	}
	room, err := uc.roomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrRoomNotFound
	}
	return uc.roomRepo.Delete(id)
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	if r == nil {
		return nil
	}
	return &dto.RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Amenities: r.Amenities,
		Price:     r.Price,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
