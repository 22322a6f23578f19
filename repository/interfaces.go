package repository

import (
	"context"

	"parkscout/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SpotRepositoryI defines operations on ParkingSpot entities.
type SpotRepositoryI interface {
	Create(ctx context.Context) (*models.ParkingSpot, error)
	GetByID(ctx context.Context, id int64) (*models.ParkingSpot, error)
	List(ctx context.Context) ([]models.ParkingSpot, error)
	UpdateStatus(ctx context.Context, id int64, status models.SpotStatus) error
	Delete(ctx context.Context, id int64) error
	Reserve(ctx context.Context, userID, spotID int64, date, timeOfDay string) error
}

// HistoryRepositoryI defines operations on ParkingHistory entities.
type HistoryRepositoryI interface {
	Create(ctx context.Context, userID int64, spotID *int64, date, timeOfDay string) (*models.ParkingHistory, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ParkingHistory, error)
}
