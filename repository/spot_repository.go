package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkscout/models"
)

type SpotRepository struct {
	db *sql.DB
}

func NewSpotRepository(db *sql.DB) *SpotRepository {
	return &SpotRepository{db: db}
}

// Create inserts a new parking spot with status 'available'.
func (r *SpotRepository) Create(ctx context.Context) (*models.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO parking_spots (status) VALUES (?)`, string(models.SpotStatusAvailable))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.ParkingSpot{ID: id, Status: models.SpotStatusAvailable}, nil
}

func (r *SpotRepository) GetByID(ctx context.Context, id int64) (*models.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.ParkingSpot
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT id, status FROM parking_spots WHERE id = ?`, id).Scan(&s.ID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Status = models.SpotStatus(status)
	return &s, nil
}

// List returns all spots ordered by id.
func (r *SpotRepository) List(ctx context.Context) ([]models.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, status FROM parking_spots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ParkingSpot
	for rows.Next() {
		var s models.ParkingSpot
		var status string
		if err := rows.Scan(&s.ID, &status); err != nil {
			return nil, err
		}
		s.Status = models.SpotStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets a spot's status unconditionally, regardless of its
// current state. This is the authoritative write path for the occupancy
// detector. Returns ErrSpotNotFound if the spot does not exist.
func (r *SpotRepository) UpdateStatus(ctx context.Context, id int64, status models.SpotStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid spot status %q", status)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE parking_spots SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// Delete removes a spot. History rows referencing it are left untouched.
// Returns ErrSpotNotFound if the spot does not exist.
func (r *SpotRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM parking_spots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// Reserve transitions a spot available→reserved and records a history row,
// as one transaction. The status change is a conditional UPDATE so that two
// concurrent reservations of the same spot serialize at the database: exactly
// one observes 'available' and wins, the loser gets ErrSpotUnavailable with
// no state change.
func (r *SpotRepository) Reserve(ctx context.Context, userID, spotID int64, date, timeOfDay string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// The conditional UPDATE comes first so the transaction opens with the
	// write lock. Starting with a read and upgrading later can fail outright
	// under WAL instead of waiting its turn.
	res, err := tx.ExecContext(ctx,
		`UPDATE parking_spots SET status = ? WHERE id = ? AND status = ?`,
		string(models.SpotStatusReserved), spotID, string(models.SpotStatusAvailable))
	if err != nil {
		return err
	}

	var userExists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&userExists); err != nil {
		return err
	}
	if !userExists {
		return ErrUserNotFound
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing spot from one in the wrong state.
		var have bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM parking_spots WHERE id = ?)`, spotID).Scan(&have); err != nil {
			return err
		}
		if !have {
			return ErrSpotNotFound
		}
		return ErrSpotUnavailable
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO parking_history (user_id, spot_id, parking_date, parking_time) VALUES (?,?,?,?)`,
		userID, spotID, date, timeOfDay); err != nil {
		return err
	}
	return tx.Commit()
}
