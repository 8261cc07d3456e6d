package repository

import "database/sql"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	nombre TEXT NOT NULL DEFAULT '',
	rol TEXT NOT NULL DEFAULT 'USER',
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rooms (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	capacity INT NOT NULL,
	floor INT NOT NULL DEFAULT 0,
	equipment TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS time_slots (
	id TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	room_id INT NOT NULL REFERENCES rooms(id),
	user_id INT REFERENCES users(id),
	holder_email TEXT NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	add_to_google_calendar BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reservations_room_time ON reservations(room_id, start_time);
CREATE INDEX IF NOT EXISTS idx_reservations_holder ON reservations(holder_email);
`

// The slot grid is fixed product-wide: hourly blocks from 08:00 to 18:00.
const seedSlotsSQL = `
INSERT INTO time_slots (id, label, start_time, end_time) VALUES
	('08:00-09:00', '08:00 - 09:00', '08:00', '09:00'),
	('09:00-10:00', '09:00 - 10:00', '09:00', '10:00'),
	('10:00-11:00', '10:00 - 11:00', '10:00', '11:00'),
	('11:00-12:00', '11:00 - 12:00', '11:00', '12:00'),
	('12:00-13:00', '12:00 - 13:00', '12:00', '13:00'),
	('13:00-14:00', '13:00 - 14:00', '13:00', '14:00'),
	('14:00-15:00', '14:00 - 15:00', '14:00', '15:00'),
	('15:00-16:00', '15:00 - 16:00', '15:00', '16:00'),
	('16:00-17:00', '16:00 - 17:00', '16:00', '17:00'),
	('17:00-18:00', '17:00 - 18:00', '17:00', '18:00')
ON CONFLICT (id) DO NOTHING;
`

// Migrate applies the idempotent schema and seeds the fixed daily time slots.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return err
	}
	_, err := db.Exec(seedSlotsSQL)
	return err
}
