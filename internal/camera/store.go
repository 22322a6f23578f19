// Package camera exposes the JPEG snapshots that the occupancy-detection
// subsystem writes to disk, keyed by spot id. The server only reads them.
package camera

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrImageNotFound is returned when no snapshot exists for a spot.
var ErrImageNotFound = errors.New("camera image not found")

// ImageStore reads camera frames from a directory. The detector writes
// camera_feed_<spot_id>.jpg in the same directory it serves its local UI from.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Path returns the expected snapshot path for a spot.
func (s *ImageStore) Path(spotID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("camera_feed_%d.jpg", spotID))
}

// Read returns the raw JPEG bytes for a spot, or ErrImageNotFound if the
// detector has not written a frame for it.
func (s *ImageStore) Read(spotID int64) ([]byte, error) {
	b, err := os.ReadFile(s.Path(spotID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return b, nil
}
