package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confera/internal/database"
	"confera/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, start_date, end_date, venue, capacity, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Venue,
		event.Capacity,
		event.OrganizerID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `
		SELECT id, title, description, start_date, end_date, venue, capacity,
		       organizer_id, created_at, updated_at
		FROM events
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Venue,
		&event.Capacity,
		&event.OrganizerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

// List returns events ordered by start date descending. The free-text
// query matches title, description and venue; venue and date narrow
// the result further.
func (r *EventRepository) List(ctx context.Context, query, venue, date string, page, pageSize int) ([]models.Event, error) {
	var events []models.Event
	var args []interface{}
	argIndex := 1

	sqlQuery := `
		SELECT id, title, description, start_date, end_date, venue, capacity,
		       organizer_id, created_at, updated_at
		FROM events
		WHERE 1=1`

	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR venue ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+query+"%")
		argIndex++
	}

	if venue != "" {
		sqlQuery += fmt.Sprintf(" AND venue = $%d", argIndex)
		args = append(args, venue)
		argIndex++
	}

	if date != "" {
		sqlQuery += fmt.Sprintf(" AND DATE(start_date) <= $%d AND DATE(end_date) >= $%d", argIndex, argIndex)
		args = append(args, date)
		argIndex++
	}

	sqlQuery += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.StartDate,
			&event.EndDate,
			&event.Venue,
			&event.Capacity,
			&event.OrganizerID,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_date = $3, end_date = $4,
		    venue = $5, capacity = $6, updated_at = NOW()
		WHERE id = $7`

	_, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Venue,
		event.Capacity,
		event.ID,
	)

	return err
}

// Delete removes the event. Tracks, sessions, registrations and
// session registrations go with it through ON DELETE CASCADE, so the
// whole subtree disappears in one atomic statement.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

// CountConfirmed derives the live confirmed-registration count. This
// is never cached or stored on the event row.
func (r *EventRepository) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'confirmed'`
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count)
	return count, err
}
