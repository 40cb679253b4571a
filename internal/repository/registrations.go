package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confera/internal/database"
	"confera/internal/domain"
	"confera/internal/models"
)

type RegistrationRepository struct {
	db *database.DB
}

func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// RegisterForEvent creates a pending registration inside one
// transaction. The event row is locked first (SELECT ... FOR UPDATE)
// so concurrent attempts read the duplicate and capacity state one at
// a time; two callers can never both observe free capacity and both
// commit.
//
// Check order: duplicate (any status) first, then confirmed count
// against capacity. The result is always pending - a pending row does
// not consume capacity.
func (r *RegistrationRepository) RegisterForEvent(ctx context.Context, eventID, attendeeID int64) (*models.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var capacity int64
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var duplicate bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND attendee_id = $2)`,
		eventID, attendeeID,
	).Scan(&duplicate)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrDuplicateRegistration
	}

	var confirmed int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'confirmed'`,
		eventID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}
	if err := domain.CanRegister(confirmed, capacity); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		EventID:    eventID,
		AttendeeID: attendeeID,
		Status:     models.RegistrationPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, attendee_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, registration_date, notes`,
		eventID, attendeeID,
	).Scan(&reg.ID, &reg.RegistrationDate, &reg.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return reg, nil
}

// Approve transitions a registration to confirmed, holding the event
// row lock while the confirmed count is compared against capacity.
// Concurrent approvals for the same event serialize on the lock, which
// keeps confirmedCount <= capacity under any interleaving.
func (r *RegistrationRepository) Approve(ctx context.Context, registrationID, eventID int64) (*models.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var capacity int64
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var confirmed int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'confirmed'`,
		eventID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}
	if err := domain.CanConfirm(confirmed, capacity); err != nil {
		return nil, err
	}

	reg := &models.Registration{}
	err = tx.QueryRowContext(ctx, `
		UPDATE registrations SET status = 'confirmed'
		WHERE id = $1
		RETURNING id, event_id, attendee_id, status, registration_date, notes`,
		registrationID,
	).Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.Status, &reg.RegistrationDate, &reg.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return reg, nil
}

// Cancel is a status change, not a delete, and is idempotent.
func (r *RegistrationRepository) Cancel(ctx context.Context, registrationID int64) (*models.Registration, error) {
	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE registrations SET status = 'cancelled'
		WHERE id = $1
		RETURNING id, event_id, attendee_id, status, registration_date, notes`,
		registrationID,
	).Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.Status, &reg.RegistrationDate, &reg.Notes)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return reg, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.Registration, error) {
	reg := &models.Registration{}
	query := `
		SELECT id, event_id, attendee_id, status, registration_date, notes
		FROM registrations
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.AttendeeID,
		&reg.Status,
		&reg.RegistrationDate,
		&reg.Notes,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reg, err
}

// List returns registrations visible to the caller: staff see all,
// everyone else sees rows where they are the attendee or the event
// organizer. Optional status and event filters narrow the result.
func (r *RegistrationRepository) List(ctx context.Context, caller domain.Identity, status string, eventID int64) ([]models.Registration, error) {
	query := `
		SELECT r.id, r.event_id, r.attendee_id, r.status, r.registration_date, r.notes
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if !caller.IsStaff {
		query += ` AND (r.attendee_id = $1 OR e.organizer_id = $1)`
		args = append(args, caller.UserID)
		argIndex++
	}

	if status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	if eventID != 0 {
		query += fmt.Sprintf(" AND r.event_id = $%d", argIndex)
		args = append(args, eventID)
		argIndex++
	}

	query += ` ORDER BY r.registration_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		var reg models.Registration
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.AttendeeID,
			&reg.Status,
			&reg.RegistrationDate,
			&reg.Notes,
		)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

func (r *RegistrationRepository) UpdateNotes(ctx context.Context, id int64, notes string) (*models.Registration, error) {
	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE registrations SET notes = $1
		WHERE id = $2
		RETURNING id, event_id, attendee_id, status, registration_date, notes`,
		notes, id,
	).Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.Status, &reg.RegistrationDate, &reg.Notes)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// HasConfirmed reports whether the attendee holds a confirmed
// registration for the event. Gate for session registration and for
// track/session visibility.
func (r *RegistrationRepository) HasConfirmed(ctx context.Context, eventID, attendeeID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND attendee_id = $2 AND status = 'confirmed'
		)`
	err := r.db.QueryRowContext(ctx, query, eventID, attendeeID).Scan(&exists)
	return exists, err
}
