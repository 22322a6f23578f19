package models

// SpotStatus represents the occupancy state of a parking spot.
type SpotStatus string

const (
	SpotStatusAvailable SpotStatus = "available"
	SpotStatusReserved  SpotStatus = "reserved"
	SpotStatusOccupied  SpotStatus = "occupied"
)

// Valid reports whether s is one of the three recognized states.
func (s SpotStatus) Valid() bool {
	switch s {
	case SpotStatusAvailable, SpotStatusReserved, SpotStatusOccupied:
		return true
	}
	return false
}

// ParkingSpot represents a single parking spot.
// New spots start as 'available'.
type ParkingSpot struct {
	ID     int64      `db:"id" json:"id"`
	Status SpotStatus `db:"status" json:"status"`
}
