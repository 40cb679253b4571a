package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createEventsTable,
		createTracksTable,
		createSessionsTable,
		createRegistrationsTable,
		createSessionRegistrationsTable,
		createRegistrationStatusIndex,
		createSessionsTrackTimeIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    is_staff BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    venue VARCHAR(200) NOT NULL,
    capacity INTEGER NOT NULL,
    organizer_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (capacity > 0)
);`

const createTracksTable = `
CREATE TABLE IF NOT EXISTS tracks (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    description TEXT NOT NULL DEFAULT '',

    UNIQUE(event_id, name)
);`

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
    id SERIAL PRIMARY KEY,
    track_id INTEGER NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    speaker_id INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    capacity INTEGER,

    CHECK (capacity IS NULL OR capacity > 0)
);`

const createRegistrationsTable = `
CREATE TABLE IF NOT EXISTS registrations (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    attendee_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    registration_date TIMESTAMP NOT NULL DEFAULT NOW(),
    notes TEXT NOT NULL DEFAULT '',

    UNIQUE(event_id, attendee_id),
    CHECK (status IN ('pending', 'confirmed', 'cancelled'))
);`

const createSessionRegistrationsTable = `
CREATE TABLE IF NOT EXISTS session_registrations (
    id SERIAL PRIMARY KEY,
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    attendee_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    registration_date TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(session_id, attendee_id)
);`

const createRegistrationStatusIndex = `
CREATE INDEX IF NOT EXISTS registrations_event_status_idx
ON registrations (event_id, status);`

const createSessionsTrackTimeIndex = `
CREATE INDEX IF NOT EXISTS sessions_track_time_idx
ON sessions (track_id, start_time, end_time);`
