package repository

import "github.com/jhoicas/reservas-api/internal/domain/entity"

// RoomRepository define el puerto de persistencia para Room.
type RoomRepository interface {
	Create(room *entity.Room) error
	GetByID(id string) (*entity.Room, error)
	// LockByID obtiene la sala tomando un lock de escritura sobre su fila.
	// Dentro de una transacción serializa a los escritores concurrentes de la
	// misma sala (la secuencia verificar-disponibilidad-e-insertar del motor).
	LockByID(id string) (*entity.Room, error)
	List() ([]*entity.Room, error)
	Update(room *entity.Room) error
	Delete(id string) error
}
