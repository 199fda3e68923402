package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbooking "github.com/jhoicas/reservas-api/internal/application/booking"
	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/entity"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
	"github.com/jhoicas/reservas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookingRepo struct {
	bookings map[string]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(b *entity.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByRoomAndDate(roomID string, date time.Time) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Date.Equal(date) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) List(filter repository.BookingFilter) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && b.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.Date.After(*filter.To) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	// Orden estable: fecha, hora de inicio, id (como la consulta SQL real)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.Date.Before(a.Date) ||
				(b.Date.Equal(a.Date) && b.StartTime < a.StartTime) ||
				(b.Date.Equal(a.Date) && b.StartTime == a.StartTime && b.ID < a.ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return nil
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) DeleteAll() error {
	r.bookings = make(map[string]*entity.Booking)
	return nil
}

type fakeRoomRepo struct {
	rooms map[string]*entity.Room
}

func newFakeRoomRepo(ids ...string) *fakeRoomRepo {
	r := &fakeRoomRepo{rooms: make(map[string]*entity.Room)}
	for _, id := range ids {
		r.rooms[id] = &entity.Room{ID: id, Name: "Sala " + id, Capacity: 8}
	}
	return r
}

func (r *fakeRoomRepo) Create(room *entity.Room) error { r.rooms[room.ID] = room; return nil }
func (r *fakeRoomRepo) GetByID(id string) (*entity.Room, error) {
	return r.rooms[id], nil
}
func (r *fakeRoomRepo) LockByID(id string) (*entity.Room, error) {
	return r.rooms[id], nil
}
func (r *fakeRoomRepo) List() ([]*entity.Room, error)    { return nil, nil }
func (r *fakeRoomRepo) Update(room *entity.Room) error   { return nil }
func (r *fakeRoomRepo) Delete(id string) error           { delete(r.rooms, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(ids ...string) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, id := range ids {
		r.users[id] = &entity.User{ID: id, FirstName: "Ana", LastName: "García", RoleName: entity.RoleUser}
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) List() ([]*entity.User, error)                 { return nil, nil }
func (r *fakeUserRepo) UpdateRole(userID string, roleID int) error    { return nil }
func (r *fakeUserRepo) Delete(id string) error                        { return nil }

// fakeTxRunner ejecuta fn directamente con los fakes; no hay transacción real,
// los casos de uso no deben notar la diferencia.
type fakeTxRunner struct {
	bookings *fakeBookingRepo
	rooms    *fakeRoomRepo
	users    *fakeUserRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
) error) error {
	return fn(tx.bookings, tx.rooms, tx.users)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

const (
	testRoomID  = "room-alfa"
	testRoom2ID = "room-beta"
	testUser1   = "user-001"
	testUser2   = "user-002"
)

// fixedNow: mediodía UTC del 2025-06-15; "hoy" es 2025-06-15.
func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestUseCase(t *testing.T) (*appbooking.BookingUseCase, *fakeBookingRepo) {
	t.Helper()
	bookings := newFakeBookingRepo()
	rooms := newFakeRoomRepo(testRoomID, testRoom2ID)
	users := newFakeUserRepo(testUser1, testUser2)
	tx := &fakeTxRunner{bookings: bookings, rooms: rooms, users: users}
	uc := appbooking.NewBookingUseCase(tx, bookings, rooms, time.UTC, fixedNow)
	return uc, bookings
}

func actorUser(id string) policy.Actor    { return policy.Actor{ID: id, Role: entity.RoleUser} }
func actorManager(id string) policy.Actor { return policy.Actor{ID: id, Role: entity.RoleManager} }

func createReq(date, start, end string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:       testRoomID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		Title:        "Reunión de equipo",
		Participants: []string{"Ana", "Luis"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — validación y disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReservaValida(t *testing.T) {
	uc, _ := newTestUseCase(t)

	out, err := uc.Create(context.Background(), actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, testRoomID, out.RoomID)
	assert.Equal(t, testUser1, out.UserID)
	assert.Equal(t, "Ana García", out.UserName, "userName debe resolverse del dueño")
	assert.Equal(t, "09:00", out.StartTime)
	assert.Equal(t, "10:00", out.EndTime)
	assert.Equal(t, []string{"Ana", "Luis"}, out.Participants)
}

func TestCreate_HorarioSolapado_Rechazado(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	// [09:30, 10:30) solapa con [09:00, 10:00)
	_, err = uc.Create(ctx, actorUser(testUser2), createReq("2025-06-16", "09:30", "10:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTimeSlotNotAvailable)

	var conflictErr *domain.TimeSlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, first.ID, conflictErr.Conflicts[0].BookingID,
		"el error debe identificar la reserva en conflicto")
}

func TestCreate_ReservasConsecutivas_Permitidas(t *testing.T) {
	// Intervalos semiabiertos: fin 10:00 e inicio 10:00 no se solapan.
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, actorUser(testUser2), createReq("2025-06-16", "10:00", "11:00"))
	assert.NoError(t, err, "back-to-back debe ser válido")
}

func TestCreate_MismoHorarioOtraSalaUOtraFecha_Permitido(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	otherRoom := createReq("2025-06-16", "09:00", "10:00")
	otherRoom.RoomID = testRoom2ID
	_, err = uc.Create(ctx, actorUser(testUser2), otherRoom)
	assert.NoError(t, err, "mismo horario en otra sala no es conflicto")

	_, err = uc.Create(ctx, actorUser(testUser2), createReq("2025-06-17", "09:00", "10:00"))
	assert.NoError(t, err, "mismo horario en otra fecha no es conflicto")
}

func TestCreate_FechaPasada_Rechazada(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Create(context.Background(), actorUser(testUser1), createReq("2025-06-14", "09:00", "10:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidBookingData, "ayer no es reservable")
}

func TestCreate_FechaHoy_Permitida(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Create(context.Background(), actorUser(testUser1), createReq("2025-06-15", "23:00", "23:30"))
	assert.NoError(t, err, "hoy sigue siendo reservable aunque la hora ya pasó")
}

func TestCreate_RangoInvalido_Rechazado(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end string
	}{
		{"inicio igual a fin", "10:00", "10:00"},
		{"inicio despues de fin", "11:00", "10:00"},
		{"hora malformada", "9:00", "10:00"},
		{"minutos fuera de rango", "09:60", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", tc.start, tc.end))
			assert.ErrorIs(t, err, domain.ErrInvalidBookingData)
		})
	}
}

func TestCreate_TituloVacio_Rechazado(t *testing.T) {
	uc, _ := newTestUseCase(t)

	req := createReq("2025-06-16", "09:00", "10:00")
	req.Title = ""
	_, err := uc.Create(context.Background(), actorUser(testUser1), req)
	assert.ErrorIs(t, err, domain.ErrInvalidBookingData)
}

func TestCreate_SalaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	req := createReq("2025-06-16", "09:00", "10:00")
	req.RoomID = "no-existe"
	_, err := uc.Create(context.Background(), actorUser(testUser1), req)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestCreate_UsuarioInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Create(context.Background(), actorUser("fantasma"), createReq("2025-06-16", "09:00", "10:00"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_PuedeSolaparseConSigoMisma(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	// Extender la misma reserva a [09:00, 11:00): solapa con su horario
	// anterior pero el chequeo la excluye.
	out, err := uc.Update(ctx, actorUser(testUser1), created.ID, dto.UpdateBookingRequest{
		RoomID:    testRoomID,
		Date:      "2025-06-16",
		StartTime: "09:00",
		EndTime:   "11:00",
		Title:     "Reunión extendida",
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", out.EndTime)
	assert.Equal(t, "Reunión extendida", out.Title)
}

func TestUpdate_ConflictoConOtraReserva(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)
	mine, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "11:00", "12:00"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, actorUser(testUser1), mine.ID, dto.UpdateBookingRequest{
		RoomID:    testRoomID,
		Date:      "2025-06-16",
		StartTime: "09:30",
		EndTime:   "10:30",
		Title:     "Reunión movida",
	})
	assert.ErrorIs(t, err, domain.ErrTimeSlotNotAvailable)
}

func TestUpdate_AjenaSinCapacidad_Prohibida(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, actorUser(testUser2), created.ID, dto.UpdateBookingRequest{
		RoomID:    testRoomID,
		Date:      "2025-06-16",
		StartTime: "14:00",
		EndTime:   "15:00",
		Title:     "Secuestro de sala",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_ReservaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Update(context.Background(), actorUser(testUser1), "no-existe", dto.UpdateBookingRequest{
		RoomID:    testRoomID,
		Date:      "2025-06-16",
		StartTime: "09:00",
		EndTime:   "10:00",
		Title:     "Reunión",
	})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — dueño o canDeleteAnyBooking
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DuenoPuedeEliminar(t *testing.T) {
	uc, repo := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(actorUser(testUser1), created.ID))
	got, _ := repo.GetByID(created.ID)
	assert.Nil(t, got, "la reserva debe desaparecer del store")
}

func TestDelete_OtroUsuarioSinCapacidad_Prohibido(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	err = uc.Delete(actorUser(testUser2), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_ManagerPuedeEliminarAjena(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	err = uc.Delete(actorManager(testUser2), created.ID)
	assert.NoError(t, err, "manager tiene canDeleteAnyBooking")
}

func TestDelete_ReservaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	err := uc.Delete(actorUser(testUser1), "no-existe")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List e IsAvailable
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltrosYOrdenEstable(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-17", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, actorUser(testUser2), createReq("2025-06-16", "14:00", "15:00"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	all, err := uc.List(appbooking.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-06-16", all[0].Date)
	assert.Equal(t, "09:00", all[0].StartTime)
	assert.Equal(t, "2025-06-16", all[1].Date)
	assert.Equal(t, "14:00", all[1].StartTime)
	assert.Equal(t, "2025-06-17", all[2].Date)

	mine, err := uc.List(appbooking.ListFilter{UserID: testUser1})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	day, err := uc.List(appbooking.ListFilter{From: "2025-06-17", To: "2025-06-17"})
	require.NoError(t, err)
	assert.Len(t, day, 1)

	_, err = uc.List(appbooking.ListFilter{From: "17/06/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidBookingData)
}

func TestIsAvailable_ReportaConflictos(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	require.NoError(t, err)

	busy, err := uc.IsAvailable(testRoomID, "2025-06-16", "09:30", "10:30", "")
	require.NoError(t, err)
	assert.False(t, busy.Available)
	require.Len(t, busy.Conflicts, 1)
	assert.Equal(t, created.ID, busy.Conflicts[0].BookingID)

	free, err := uc.IsAvailable(testRoomID, "2025-06-16", "10:00", "11:00", "")
	require.NoError(t, err)
	assert.True(t, free.Available, "consecutivo no es conflicto")

	// Excluyendo la propia reserva el horario queda libre (caso de edición).
	editing, err := uc.IsAvailable(testRoomID, "2025-06-16", "09:30", "10:30", created.ID)
	require.NoError(t, err)
	assert.True(t, editing.Available)
}

func TestIsAvailable_SalaInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.IsAvailable("no-existe", "2025-06-16", "09:00", "10:00", "")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

// Las fallas del runner de transacción se propagan sin traducir.
func TestCreate_ErrorDeTransaccion_SePropaga(t *testing.T) {
	bookings := newFakeBookingRepo()
	rooms := newFakeRoomRepo(testRoomID)
	boom := errors.New("deadlock detected")
	uc := appbooking.NewBookingUseCase(failingTxRunner{err: boom}, bookings, rooms, time.UTC, fixedNow)

	_, err := uc.Create(context.Background(), actorUser(testUser1), createReq("2025-06-16", "09:00", "10:00"))
	assert.ErrorIs(t, err, boom)
}

type failingTxRunner struct{ err error }

func (f failingTxRunner) Run(ctx context.Context, fn func(
	repository.BookingRepository, repository.RoomRepository, repository.UserRepository,
) error) error {
	return f.err
}
