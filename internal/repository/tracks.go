package repository

import (
	"context"
	"database/sql"

	"confera/internal/database"
	"confera/internal/models"
)

type TrackRepository struct {
	db *database.DB
}

func NewTrackRepository(db *database.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

func (r *TrackRepository) Create(ctx context.Context, track *models.Track) error {
	query := `
		INSERT INTO tracks (event_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		track.EventID,
		track.Name,
		track.Description,
	).Scan(&track.ID)
}

func (r *TrackRepository) GetByID(ctx context.Context, id int64) (*models.Track, error) {
	track := &models.Track{}
	query := `
		SELECT id, event_id, name, description
		FROM tracks
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&track.ID,
		&track.EventID,
		&track.Name,
		&track.Description,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return track, err
}

func (r *TrackRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Track, error) {
	var tracks []models.Track
	query := `
		SELECT id, event_id, name, description
		FROM tracks
		WHERE event_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.EventID, &track.Name, &track.Description); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}

func (r *TrackRepository) Update(ctx context.Context, track *models.Track) error {
	query := `UPDATE tracks SET name = $1, description = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, track.Name, track.Description, track.ID)
	return err
}

func (r *TrackRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	return err
}

// NameExists reports whether another track in the same event already
// uses the name. excludeID skips the record being updated; pass 0 on
// create. The UNIQUE(event_id, name) constraint backs this check.
func (r *TrackRepository) NameExists(ctx context.Context, eventID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tracks WHERE event_id = $1 AND name = $2 AND id != $3)`
	err := r.db.QueryRowContext(ctx, query, eventID, name, excludeID).Scan(&exists)
	return exists, err
}
