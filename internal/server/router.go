package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"parkscout/internal/auth"
	"parkscout/internal/camera"
	"parkscout/models"
	"parkscout/repository"
)

// Router decodes an envelope into its typed request variant and dispatches it
// to the matching handler. Every handler is one unit of work: it either
// commits its writes or leaves no trace, and it always produces a response
// envelope. Domain failures never close the connection; that is reserved for
// protocol errors at the frame layer.
type Router struct {
	users     *repository.UserRepository
	spots     *repository.SpotRepository
	history   *repository.HistoryRepository
	images    *camera.ImageStore
	jwtSecret string
	log       zerolog.Logger
}

func NewRouter(users *repository.UserRepository, spots *repository.SpotRepository,
	history *repository.HistoryRepository, images *camera.ImageStore,
	jwtSecret string, log zerolog.Logger) *Router {
	return &Router{
		users:     users,
		spots:     spots,
		history:   history,
		images:    images,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Request variants. Pointer fields distinguish an absent key from a zero
// value so required-field validation is exact.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type spotIDRequest struct {
	SpotID *int64 `json:"spot_id"`
}

type reserveRequest struct {
	UserID *int64 `json:"user_id"`
	SpotID *int64 `json:"spot_id"`
}

type updateStatusRequest struct {
	SpotID *int64 `json:"spot_id"`
	Status string `json:"status"`
}

type addHistoryRequest struct {
	UserID      *int64 `json:"user_id"`
	ParkingDate string `json:"parking_date"`
	ParkingTime string `json:"parking_time"`
}

type userIDRequest struct {
	UserID *int64 `json:"user_id"`
}

func errEnvelope(msg string) map[string]any {
	return map[string]any{"status": "error", "message": msg}
}

func okEnvelope(msg string) map[string]any {
	return map[string]any{"status": "success", "message": msg}
}

// storageError logs the underlying failure and returns the generic envelope.
// Clients never see persistence internals.
func (r *Router) storageError(action string, err error) map[string]any {
	r.log.Error().Err(err).Str("action", action).Msg("storage failure")
	return errEnvelope("Internal server error.")
}

// Dispatch routes one decoded request envelope. Action names are matched
// exactly and case-sensitively; anything unrecognized gets an error envelope
// and the connection stays open.
func (r *Router) Dispatch(ctx context.Context, raw []byte) map[string]any {
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return errEnvelope("Invalid request.")
	}

	switch head.Action {
	case "register":
		return r.register(ctx, raw)
	case "login":
		return r.login(ctx, raw)
	case "get_parking_spots":
		return r.getParkingSpots(ctx)
	case "add_parking_spot":
		return r.addParkingSpot(ctx)
	case "remove_parking_spot":
		return r.removeParkingSpot(ctx, raw)
	case "reserve_spot":
		return r.reserveSpot(ctx, raw)
	case "update_spot_status":
		return r.updateSpotStatus(ctx, raw)
	case "add_parking_history":
		return r.addParkingHistory(ctx, raw)
	case "get_parking_history":
		return r.getParkingHistory(ctx, raw)
	case "get_camera_image":
		return r.getCameraImage(raw)
	default:
		return errEnvelope("Invalid action")
	}
}

func (r *Router) register(ctx context.Context, raw []byte) map[string]any {
	var req registerRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.Username == "" || req.Password == "" {
		return errEnvelope("Username and password are required.")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return r.storageError("register", err)
	}
	if _, err := r.users.Create(ctx, req.Username, hash, req.IsAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return errEnvelope("Username already exists")
		}
		return r.storageError("register", err)
	}
	return okEnvelope("User registered successfully.")
}

func (r *Router) login(ctx context.Context, raw []byte) map[string]any {
	var req loginRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.Username == "" || req.Password == "" {
		return errEnvelope("Username and password are required.")
	}
	u, err := r.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return r.storageError("login", err)
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		return errEnvelope("Invalid credentials.")
	}
	resp := okEnvelope("Login successful.")
	resp["user_id"] = u.ID
	resp["is_admin"] = u.IsAdmin
	// Additive convenience for web callers; legacy clients ignore it.
	if token, err := auth.IssueToken(r.jwtSecret, auth.Principal{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}); err == nil {
		resp["token"] = token
	}
	return resp
}

func (r *Router) getParkingSpots(ctx context.Context) map[string]any {
	spots, err := r.spots.List(ctx)
	if err != nil {
		return r.storageError("get_parking_spots", err)
	}
	list := make([]map[string]any, 0, len(spots))
	for _, s := range spots {
		list = append(list, map[string]any{"id": s.ID, "status": string(s.Status)})
	}
	return map[string]any{"status": "success", "spots": list}
}

func (r *Router) addParkingSpot(ctx context.Context) map[string]any {
	s, err := r.spots.Create(ctx)
	if err != nil {
		return r.storageError("add_parking_spot", err)
	}
	resp := okEnvelope(fmt.Sprintf("Parking spot %d added.", s.ID))
	resp["spot_id"] = s.ID
	return resp
}

func (r *Router) removeParkingSpot(ctx context.Context, raw []byte) map[string]any {
	var req spotIDRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.SpotID == nil {
		return errEnvelope("spot_id is required.")
	}
	if err := r.spots.Delete(ctx, *req.SpotID); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return errEnvelope("Parking spot not found.")
		}
		return r.storageError("remove_parking_spot", err)
	}
	return okEnvelope(fmt.Sprintf("Spot %d removed.", *req.SpotID))
}

func (r *Router) reserveSpot(ctx context.Context, raw []byte) map[string]any {
	var req reserveRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.UserID == nil || req.SpotID == nil {
		return errEnvelope("user_id and spot_id are required.")
	}
	now := time.Now()
	err := r.spots.Reserve(ctx, *req.UserID, *req.SpotID, now.Format("2006-01-02"), now.Format("15:04:05"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound),
			errors.Is(err, repository.ErrSpotNotFound),
			errors.Is(err, repository.ErrSpotUnavailable):
			return errEnvelope("Spot not available or invalid user.")
		}
		return r.storageError("reserve_spot", err)
	}
	return okEnvelope(fmt.Sprintf("Spot %d reserved.", *req.SpotID))
}

func (r *Router) updateSpotStatus(ctx context.Context, raw []byte) map[string]any {
	var req updateStatusRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.SpotID == nil || req.Status == "" {
		return errEnvelope("spot_id and status are required.")
	}
	status := models.SpotStatus(req.Status)
	if !status.Valid() {
		return errEnvelope("Invalid status value.")
	}
	if err := r.spots.UpdateStatus(ctx, *req.SpotID, status); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return errEnvelope("Parking spot not found.")
		}
		return r.storageError("update_spot_status", err)
	}
	return okEnvelope("Parking spot updated.")
}

func (r *Router) addParkingHistory(ctx context.Context, raw []byte) map[string]any {
	var req addHistoryRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.UserID == nil || req.ParkingDate == "" || req.ParkingTime == "" {
		return errEnvelope("user_id, parking_date and parking_time are required.")
	}
	if _, err := r.history.Create(ctx, *req.UserID, nil, req.ParkingDate, req.ParkingTime); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errEnvelope("User not found.")
		}
		return r.storageError("add_parking_history", err)
	}
	return okEnvelope("Parking history added.")
}

func (r *Router) getParkingHistory(ctx context.Context, raw []byte) map[string]any {
	var req userIDRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.UserID == nil {
		return errEnvelope("user_id is required.")
	}
	entries, err := r.history.ListByUser(ctx, *req.UserID)
	if err != nil {
		return r.storageError("get_parking_history", err)
	}
	if len(entries) == 0 {
		return errEnvelope("No history found.")
	}
	list := make([]map[string]any, 0, len(entries))
	for _, h := range entries {
		entry := map[string]any{
			"id":           h.ID,
			"parking_date": h.ParkingDate,
			"parking_time": h.ParkingTime,
		}
		if h.SpotID != nil {
			entry["spot_id"] = *h.SpotID
		}
		list = append(list, entry)
	}
	return map[string]any{"status": "success", "history": list}
}

func (r *Router) getCameraImage(raw []byte) map[string]any {
	var req spotIDRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.SpotID == nil {
		return errEnvelope("spot_id is required.")
	}
	img, err := r.images.Read(*req.SpotID)
	if err != nil {
		if errors.Is(err, camera.ErrImageNotFound) {
			return errEnvelope("Image not found.")
		}
		return r.storageError("get_camera_image", err)
	}
	return map[string]any{"status": "success", "image": base64.StdEncoding.EncodeToString(img)}
}
