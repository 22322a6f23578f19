package repository

import (
	"context"
	"database/sql"
	"time"

	"parkscout/models"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create appends a history row for the given user. The referenced user must
// exist at insert time; spotID may be nil for manually recorded entries.
// Returns ErrUserNotFound if the user does not exist.
func (r *HistoryRepository) Create(ctx context.Context, userID int64, spotID *int64, date, timeOfDay string) (*models.ParkingHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	var spot any
	if spotID != nil {
		spot = *spotID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO parking_history (user_id, spot_id, parking_date, parking_time) VALUES (?,?,?,?)`,
		userID, spot, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.ParkingHistory{ID: id, UserID: userID, SpotID: spotID, ParkingDate: date, ParkingTime: timeOfDay}, nil
}

// ListByUser returns all history rows for a user ordered by id.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64) ([]models.ParkingHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, spot_id, parking_date, parking_time FROM parking_history WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ParkingHistory
	for rows.Next() {
		var h models.ParkingHistory
		var spot sql.NullInt64
		if err := rows.Scan(&h.ID, &h.UserID, &spot, &h.ParkingDate, &h.ParkingTime); err != nil {
			return nil, err
		}
		if spot.Valid {
			v := spot.Int64
			h.SpotID = &v
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
