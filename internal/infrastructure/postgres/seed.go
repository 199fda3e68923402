package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/reservas-api/internal/domain/entity"
)

// Seeder reconcilia el estado actual del store con el estado mínimo deseado:
// calcula qué filas faltan y solo inserta esas. Es idempotente y se invoca una
// vez al arrancar, después de migrar el esquema.
type Seeder struct {
	pool *pgxpool.Pool
	// Demo activa los datos de demostración (usuarios, salas, reservas).
	// Los roles se siembran siempre: el registro depende de que existan.
	Demo bool
}

// NewSeeder construye el seeder.
func NewSeeder(pool *pgxpool.Pool, demo bool) *Seeder {
	return &Seeder{pool: pool, Demo: demo}
}

var seedRoles = []entity.Role{
	{Name: entity.RoleUser, Description: "Usuario regular"},
	{Name: entity.RoleManager, Description: "Gestor de salas"},
	{Name: entity.RoleAdmin, Description: "Administrador"},
}

// Ensure aplica la reconciliación completa.
func (s *Seeder) Ensure(ctx context.Context) error {
	if err := s.ensureRoles(ctx); err != nil {
		return err
	}
	if !s.Demo {
		return nil
	}
	if err := s.ensureDemoUsers(ctx); err != nil {
		return err
	}
	if err := s.ensureDemoRooms(ctx); err != nil {
		return err
	}
	return s.ensureDemoBookings(ctx)
}

// ensureRoles inserta los roles sembrados que falten (por nombre).
func (s *Seeder) ensureRoles(ctx context.Context) error {
	for _, role := range seedRoles {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO roles (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`,
			role.Name, role.Description)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

func (s *Seeder) tableEmpty(ctx context.Context, table string) (bool, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}

// ensureDemoUsers crea los usuarios de demostración si no hay ninguno.
// Password de todos: "password123" (solo para entornos de demo).
func (s *Seeder) ensureDemoUsers(ctx context.Context) error {
	empty, err := s.tableEmpty(ctx, "users")
	if err != nil || !empty {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminRepo := NewRoleRepository(s.pool)
	admin, err := adminRepo.GetByName(entity.RoleAdmin)
	if err != nil {
		return err
	}
	regular, err := adminRepo.GetByName(entity.RoleUser)
	if err != nil {
		return err
	}
	users := []entity.User{
		{ID: "admin_001", FirstName: "Alexei", LastName: "Ivanov", Email: "alex@company.com", RoleID: admin.ID},
		{ID: "user_001", FirstName: "Maria", LastName: "Petrova", Email: "maria@company.com", RoleID: regular.ID},
		{ID: "user_002", FirstName: "Ivan", LastName: "Sidorov", Email: "ivan@company.com", RoleID: regular.ID},
	}
	for _, u := range users {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO users (id, first_name, last_name, email, password_hash, role_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())`,
			u.ID, u.FirstName, u.LastName, u.Email, string(hash), u.RoleID)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

// ensureDemoRooms crea las salas de demostración si no hay ninguna.
func (s *Seeder) ensureDemoRooms(ctx context.Context) error {
	empty, err := s.tableEmpty(ctx, "rooms")
	if err != nil || !empty {
		return err
	}
	rooms := []entity.Room{
		{ID: "room_001", Name: `Sala "Alfa"`, Capacity: 6, Amenities: "Videoconferencia, Smart board, Wi-Fi", Price: decimal.NewFromInt(500)},
		{ID: "room_002", Name: `Sala "Beta"`, Capacity: 4, Amenities: "Proyector, rotafolio, televisor", Price: decimal.NewFromInt(350)},
		{ID: "room_003", Name: `Sala "Gamma"`, Capacity: 10, Amenities: "Videoconferencia, pantalla 4K, sistema de micrófonos", Price: decimal.NewFromInt(800)},
		{ID: "room_004", Name: `Sala "Delta"`, Capacity: 2, Amenities: "Insonorización, aire acondicionado", Price: decimal.NewFromInt(250)},
	}
	for _, room := range rooms {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO rooms (id, name, capacity, amenities, price, created_at)
			VALUES ($1, $2, $3, $4, $5, now())`,
			room.ID, room.Name, room.Capacity, room.Amenities, room.Price)
		if err != nil {
			return fmt.Errorf("seed room %s: %w", room.ID, err)
		}
	}
	return nil
}

// ensureDemoBookings crea reservas de ejemplo (hoy y mañana) si no hay ninguna.
func (s *Seeder) ensureDemoBookings(ctx context.Context) error {
	empty, err := s.tableEmpty(ctx, "bookings")
	if err != nil || !empty {
		return err
	}
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	bookings := []struct {
		id, roomID, userID, date, start, end, title, participants string
	}{
		{"book_001", "room_001", "user_001", today, "09:00", "10:00", "Reunión de equipo", ""},
		{"book_002", "room_001", "user_002", today, "11:00", "12:30", "Presentación del proyecto", "alex@company.com, manager@company.com"},
		{"book_003", "room_002", "admin_001", tomorrow, "14:00", "15:30", "Reunión con cliente", "client@company.com"},
	}
	for _, b := range bookings {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO bookings (id, room_id, user_id, date, start_time, end_time, title, participants, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
			b.id, b.roomID, b.userID, b.date, b.start, b.end, b.title, b.participants)
		if err != nil {
			return fmt.Errorf("seed booking %s: %w", b.id, err)
		}
	}
	return nil
}

// Reset vacía las reservas y vuelve a sembrar el estado mínimo. Es la
// operación administrativa detrás de POST /api/admin/reset.
func (s *Seeder) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("reset bookings: %w", err)
	}
	return s.Ensure(ctx)
}
