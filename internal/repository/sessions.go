package repository

import (
	"context"
	"database/sql"
	"time"

	"confera/internal/database"
	"confera/internal/domain"
	"confera/internal/models"
)

type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session after a conflict check serialized on the
// parent track row. Locking the track makes concurrent creates in the
// same track take turns, so two overlapping sessions cannot both pass
// the check and commit.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var trackID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tracks WHERE id = $1 FOR UPDATE`,
		session.TrackID,
	).Scan(&trackID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}

	conflict, err := overlapExists(ctx, tx, session.TrackID, session, 0)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSchedulingConflict
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO sessions (track_id, title, description, speaker_id, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		session.TrackID,
		session.Title,
		session.Description,
		session.SpeakerID,
		session.StartTime,
		session.EndTime,
		session.Capacity,
	).Scan(&session.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites a session with the same track-serialized conflict
// check, excluding the session itself.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var trackID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM tracks WHERE id = $1 FOR UPDATE`,
		session.TrackID,
	).Scan(&trackID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}

	conflict, err := overlapExists(ctx, tx, session.TrackID, session, session.ID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSchedulingConflict
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sessions
		SET title = $1, description = $2, speaker_id = $3,
		    start_time = $4, end_time = $5, capacity = $6
		WHERE id = $7`,
		session.Title,
		session.Description,
		session.SpeakerID,
		session.StartTime,
		session.EndTime,
		session.Capacity,
		session.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// overlapExists tests the session against the other time windows of
// the track. The overlap predicate lives in domain.Overlaps so the
// half-open boundary rule has a single definition.
func overlapExists(ctx context.Context, tx *sql.Tx, trackID int64, session *models.Session, excludeID int64) (bool, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT start_time, end_time FROM sessions
		WHERE track_id = $1 AND id != $2`,
		trackID, excludeID,
	)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return false, err
		}
		if domain.Overlaps(session.StartTime, session.EndTime, start, end) {
			return true, nil
		}
	}

	return false, rows.Err()
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT id, track_id, title, description, speaker_id, start_time, end_time, capacity
		FROM sessions
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.TrackID,
		&session.Title,
		&session.Description,
		&session.SpeakerID,
		&session.StartTime,
		&session.EndTime,
		&session.Capacity,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return session, err
}

func (r *SessionRepository) ListByTrack(ctx context.Context, trackID int64) ([]models.Session, error) {
	var sessions []models.Session
	query := `
		SELECT id, track_id, title, description, speaker_id, start_time, end_time, capacity
		FROM sessions
		WHERE track_id = $1
		ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var session models.Session
		err := rows.Scan(
			&session.ID,
			&session.TrackID,
			&session.Title,
			&session.Description,
			&session.SpeakerID,
			&session.StartTime,
			&session.EndTime,
			&session.Capacity,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
