package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements crea el esquema de forma idempotente. El constraint de exclusión
// sobre (room_id, date, rango de minutos) es el respaldo a nivel de BD del
// invariante de no-solape: aunque dos transacciones burlen el lock de fila,
// la perdedora falla con 23P01 y se traduce a ErrTimeSlotNotAvailable.
var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS roles (
		id          serial PRIMARY KEY,
		name        varchar(50) UNIQUE NOT NULL,
		description varchar(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            varchar(36) PRIMARY KEY,
		first_name    varchar(100) NOT NULL,
		last_name     varchar(100) NOT NULL,
		email         varchar(120) UNIQUE NOT NULL,
		password_hash varchar(255) NOT NULL,
		role_id       integer NOT NULL REFERENCES roles(id) ON DELETE RESTRICT,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id         varchar(36) PRIMARY KEY,
		name       varchar(255) NOT NULL,
		capacity   integer NOT NULL CHECK (capacity > 0),
		amenities  text NOT NULL DEFAULT '',
		price      numeric(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           varchar(36) PRIMARY KEY,
		room_id      varchar(36) NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
		user_id      varchar(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date         date NOT NULL,
		start_time   char(5) NOT NULL,
		end_time     char(5) NOT NULL,
		title        varchar(255) NOT NULL,
		participants text NOT NULL DEFAULT '',
		created_at   timestamptz NOT NULL DEFAULT now(),
		CHECK (start_time < end_time)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_room_date ON bookings (room_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
	// int4range es semiabierto [a, b): reservas espalda con espalda no violan
	// el constraint, igual que en el motor de disponibilidad.
	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
		) THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
				room_id WITH =,
				date WITH =,
				int4range(
					split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int,
					split_part(end_time, ':', 1)::int * 60 + split_part(end_time, ':', 2)::int
				) WITH &&
			);
		END IF;
	END $$`,
}

// Migrate aplica el esquema. Todas las sentencias son idempotentes, por lo que
// es seguro ejecutarlo en cada arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
	}
	return nil
}
