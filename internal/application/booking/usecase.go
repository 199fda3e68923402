package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
	"github.com/jhoicas/reservas-api/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

// BookingUseCase orquesta el ciclo de vida de las reservas: validación de
// entrada, existencia de sala y usuario, chequeo de disponibilidad y
// persistencia. Creación y actualización corren dentro de una transacción que
// toma lock sobre la fila de la sala, de modo que dos peticiones concurrentes
// por el mismo horario se serializan y exactamente una gana.
type BookingUseCase struct {
	txRunner    TxRunner
	bookingRepo repository.BookingRepository // lecturas fuera de transacción
	roomRepo    repository.RoomRepository
	loc         *time.Location // zona canónica para "la fecha no está en el pasado"
	now         func() time.Time
}

// NewBookingUseCase construye el caso de uso. loc es la zona canónica de la
// política de reservas; now es inyectable para tests (nil = time.Now).
func NewBookingUseCase(txRunner TxRunner, bookingRepo repository.BookingRepository, roomRepo repository.RoomRepository, loc *time.Location, now func() time.Time) *BookingUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &BookingUseCase{
		txRunner:    txRunner,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		loc:         loc,
		now:         now,
	}
}

// Create crea una reserva a nombre del actor autenticado.
func (uc *BookingUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	date, timeRange, err := uc.validateInput(in.Date, in.StartTime, in.EndTime, in.Title)
	if err != nil {
		return nil, err
	}

	newBooking := &entity.Booking{
		ID:           uuid.New().String(),
		RoomID:       in.RoomID,
		UserID:       actor.ID,
		Date:         date,
		StartTime:    schedule.FormatClock(timeRange.Start),
		EndTime:      schedule.FormatClock(timeRange.End),
		Title:        in.Title,
		Participants: entity.JoinParticipants(in.Participants),
		CreatedAt:    uc.now(),
	}

	err = uc.txRunner.Run(ctx, func(bookings repository.BookingRepository, rooms repository.RoomRepository, users repository.UserRepository) error {
		// Lock de la fila de la sala: serializa chequeo + insert por sala.
		room, err := rooms.LockByID(in.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrRoomNotFound
		}
		user, err := users.GetByID(actor.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		newBooking.UserName = user.FullName()

		if err := checkAvailability(bookings, in.RoomID, date, timeRange, ""); err != nil {
			return err
		}
		return bookings.Create(newBooking)
	})
	if err != nil {
		return nil, err
	}
	return toBookingResponse(newBooking), nil
}

// Update revalida y persiste los cambios de una reserva existente. El chequeo
// de disponibilidad excluye la propia reserva: solaparse con su horario
// anterior es válido. Solo el dueño o un rol con canDeleteAnyBooking puede
// modificar reservas ajenas.
func (uc *BookingUseCase) Update(ctx context.Context, actor policy.Actor, bookingID string, in dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	date, timeRange, err := uc.validateInput(in.Date, in.StartTime, in.EndTime, in.Title)
	if err != nil {
		return nil, err
	}

	var updated *entity.Booking
	err = uc.txRunner.Run(ctx, func(bookings repository.BookingRepository, rooms repository.RoomRepository, users repository.UserRepository) error {
		current, err := bookings.GetByID(bookingID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrBookingNotFound
		}
		if current.UserID != actor.ID && !actor.Can(policy.CanDeleteAnyBooking) {
			return domain.ErrForbidden
		}
		room, err := rooms.LockByID(in.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrRoomNotFound
		}
		if err := checkAvailability(bookings, in.RoomID, date, timeRange, bookingID); err != nil {
			return err
		}
		current.RoomID = in.RoomID
		current.Date = date
		current.StartTime = schedule.FormatClock(timeRange.Start)
		current.EndTime = schedule.FormatClock(timeRange.End)
		current.Title = in.Title
		current.Participants = entity.JoinParticipants(in.Participants)
		updated = current
		return bookings.Update(current)
	})
	if err != nil {
		return nil, err
	}
	return toBookingResponse(updated), nil
}

// Delete elimina una reserva de forma inmediata e irreversible. Permitido al
// dueño o a un rol con canDeleteAnyBooking.
func (uc *BookingUseCase) Delete(actor policy.Actor, bookingID string) error {
	b, err := uc.bookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrBookingNotFound
	}
	if b.UserID != actor.ID && !actor.Can(policy.CanDeleteAnyBooking) {
		return domain.ErrForbidden
	}
	return uc.bookingRepo.Delete(bookingID)
}

// GetByID obtiene la proyección de una reserva.
func (uc *BookingUseCase) GetByID(bookingID string) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	return toBookingResponse(b), nil
}

// ListFilter filtros opcionales para el listado de reservas.
type ListFilter struct {
	RoomID string
	UserID string
	From   string // "2006-01-02", inclusive
	To     string // "2006-01-02", inclusive
}

// List devuelve las reservas que cumplen todos los filtros provistos,
// ordenadas por fecha y hora de inicio ascendente (orden estable).
func (uc *BookingUseCase) List(filter ListFilter) ([]dto.BookingResponse, error) {
	repoFilter := repository.BookingFilter{
		RoomID: filter.RoomID,
		UserID: filter.UserID,
	}
	if filter.From != "" {
		from, err := time.ParseInLocation(dateLayout, filter.From, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidBookingData)
		}
		repoFilter.From = &from
	}
	if filter.To != "" {
		to, err := time.ParseInLocation(dateLayout, filter.To, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidBookingData)
		}
		repoFilter.To = &to
	}
	list, err := uc.bookingRepo.List(repoFilter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookingResponse(b))
	}
	return out, nil
}

// IsAvailable consulta si un rango está libre en una sala, sin efectos.
// Lectura fuera de transacción: la respuesta es informativa, la decisión
// vinculante ocurre dentro de la transacción de Create/Update.
func (uc *BookingUseCase) IsAvailable(roomID, dateStr, startTime, endTime, excludeBookingID string) (*dto.AvailabilityResponse, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidBookingData)
	}
	timeRange, err := schedule.NewRange(startTime, endTime)
	if err != nil {
		return nil, err
	}
	room, err := uc.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	existing, err := uc.bookingRepo.ListByRoomAndDate(roomID, date)
	if err != nil {
		return nil, err
	}
	conflicts := schedule.FindConflicts(toSlots(existing), timeRange, excludeBookingID)
	resp := &dto.AvailabilityResponse{Available: len(conflicts) == 0}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, dto.ConflictDetail{
			BookingID: c.BookingID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return resp, nil
}

// validateInput valida fecha, rango horario y título comunes a create/update.
func (uc *BookingUseCase) validateInput(dateStr, startTime, endTime, title string) (time.Time, schedule.Range, error) {
	if title == "" {
		return time.Time{}, schedule.Range{}, fmt.Errorf("%w: title es requerido", domain.ErrInvalidBookingData)
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, uc.loc)
	if err != nil {
		return time.Time{}, schedule.Range{}, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidBookingData)
	}
	timeRange, err := schedule.NewRange(startTime, endTime)
	if err != nil {
		return time.Time{}, schedule.Range{}, err
	}
	// Política: no se reserva en fechas pasadas. "Hoy" se evalúa en la zona
	// canónica configurada, no en el reloj de pared del servidor.
	nowLocal := uc.now().In(uc.loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, uc.loc)
	if date.Before(today) {
		return time.Time{}, schedule.Range{}, fmt.Errorf("%w: la fecha %s ya pasó", domain.ErrInvalidBookingData, dateStr)
	}
	return date, timeRange, nil
}

// checkAvailability aplica el motor de disponibilidad sobre las reservas del
// día; debe invocarse con un repositorio atado a la transacción en curso.
func checkAvailability(bookings repository.BookingRepository, roomID string, date time.Time, timeRange schedule.Range, excludeBookingID string) error {
	existing, err := bookings.ListByRoomAndDate(roomID, date)
	if err != nil {
		return err
	}
	conflicts := schedule.FindConflicts(toSlots(existing), timeRange, excludeBookingID)
	if len(conflicts) == 0 {
		return nil
	}
	conflictErr := &domain.TimeSlotConflictError{}
	for _, c := range conflicts {
		conflictErr.Conflicts = append(conflictErr.Conflicts, domain.BookingConflict{
			BookingID: c.BookingID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return conflictErr
}

func toSlots(list []*entity.Booking) []schedule.Slot {
	slots := make([]schedule.Slot, 0, len(list))
	for _, b := range list {
		slots = append(slots, schedule.Slot{
			BookingID: b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return slots
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	if b == nil {
		return nil
	}
	return &dto.BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		UserID:       b.UserID,
		UserName:     b.UserName,
		Date:         b.Date.Format(dateLayout),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Title:        b.Title,
		Participants: b.ParticipantList(),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}
