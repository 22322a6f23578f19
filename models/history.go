package models

// ParkingHistory is an audit record of a parking event.
// Rows are immutable once written. SpotID is nullable: history added by hand
// carries no spot, and a row outlives deletion of the spot it references, so
// there is no foreign key on it.
type ParkingHistory struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	SpotID      *int64 `db:"spot_id" json:"spot_id,omitempty"`
	ParkingDate string `db:"parking_date" json:"parking_date"`
	ParkingTime string `db:"parking_time" json:"parking_time"`
}
