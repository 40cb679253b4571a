package repository

import (
	"context"
	"database/sql"

	"confera/internal/database"
	"confera/internal/domain"
	"confera/internal/models"
)

type SessionRegistrationRepository struct {
	db *database.DB
}

func NewSessionRegistrationRepository(db *database.DB) *SessionRegistrationRepository {
	return &SessionRegistrationRepository{db: db}
}

// Create registers an attendee for a session in one transaction. The
// session row is the capacity holder, so it is locked first; the
// eligibility and capacity checks then read a stable state.
//
// Check order: confirmed event registration, session capacity,
// duplicate - the first failing check wins.
func (r *SessionRegistrationRepository) Create(ctx context.Context, sessionID, attendeeID int64) (*models.SessionRegistration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var capacity *int64
	var eventID int64
	err = tx.QueryRowContext(ctx, `
		SELECT s.capacity, t.event_id
		FROM sessions s
		JOIN tracks t ON t.id = s.track_id
		WHERE s.id = $1
		FOR UPDATE OF s`,
		sessionID,
	).Scan(&capacity, &eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var confirmed bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND attendee_id = $2 AND status = 'confirmed'
		)`,
		eventID, attendeeID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, domain.ErrEventRegistrationRequired
	}

	var attendees int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_registrations WHERE session_id = $1`,
		sessionID,
	).Scan(&attendees)
	if err != nil {
		return nil, err
	}
	if err := domain.CanJoinSession(attendees, capacity); err != nil {
		return nil, err
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM session_registrations WHERE session_id = $1 AND attendee_id = $2)`,
		sessionID, attendeeID,
	).Scan(&duplicate)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrDuplicateRegistration
	}

	sr := &models.SessionRegistration{
		SessionID:  sessionID,
		AttendeeID: attendeeID,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO session_registrations (session_id, attendee_id)
		VALUES ($1, $2)
		RETURNING id, registration_date`,
		sessionID, attendeeID,
	).Scan(&sr.ID, &sr.RegistrationDate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return sr, nil
}

func (r *SessionRegistrationRepository) GetByID(ctx context.Context, id int64) (*models.SessionRegistration, error) {
	sr := &models.SessionRegistration{}
	query := `
		SELECT id, session_id, attendee_id, registration_date
		FROM session_registrations
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sr.ID,
		&sr.SessionID,
		&sr.AttendeeID,
		&sr.RegistrationDate,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return sr, err
}

// List returns session registrations visible to the caller: staff see
// all, everyone else sees rows where they are the attendee or the
// organizer of the session's event.
func (r *SessionRegistrationRepository) List(ctx context.Context, caller domain.Identity) ([]models.SessionRegistration, error) {
	query := `
		SELECT sr.id, sr.session_id, sr.attendee_id, sr.registration_date
		FROM session_registrations sr
		JOIN sessions s ON s.id = sr.session_id
		JOIN tracks t ON t.id = s.track_id
		JOIN events e ON e.id = t.event_id`
	var args []interface{}

	if !caller.IsStaff {
		query += ` WHERE sr.attendee_id = $1 OR e.organizer_id = $1`
		args = append(args, caller.UserID)
	}

	query += ` ORDER BY sr.registration_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var srs []models.SessionRegistration
	for rows.Next() {
		var sr models.SessionRegistration
		if err := rows.Scan(&sr.ID, &sr.SessionID, &sr.AttendeeID, &sr.RegistrationDate); err != nil {
			return nil, err
		}
		srs = append(srs, sr)
	}

	return srs, rows.Err()
}

// Delete hard-deletes a session registration. Session registrations
// are not soft state - cancellation removes the row.
func (r *SessionRegistrationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_registrations WHERE id = $1`, id)
	return err
}

// OrganizerOf resolves the organizer of the event a session
// registration belongs to, walking session -> track -> event.
func (r *SessionRegistrationRepository) OrganizerOf(ctx context.Context, sessionRegistrationID int64) (int64, error) {
	var organizerID int64
	query := `
		SELECT e.organizer_id
		FROM session_registrations sr
		JOIN sessions s ON s.id = sr.session_id
		JOIN tracks t ON t.id = s.track_id
		JOIN events e ON e.id = t.event_id
		WHERE sr.id = $1`

	err := r.db.QueryRowContext(ctx, query, sessionRegistrationID).Scan(&organizerID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return organizerID, err
}
