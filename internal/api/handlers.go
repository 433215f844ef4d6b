// Package api implements the demo enrollment and detection-recording
// service. It is a pure recorder of detector output over an in-memory store;
// it never runs the detector itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server exposes the demo API.
type Server struct {
	store *Store
}

func NewServer() *Server {
	return &Server{store: NewStore()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type enrollRequest struct {
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
	Location   string `json:"location"`
}

func (s *Server) enrollDevice(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}
	dev := s.store.EnrollDevice(req.DeviceID, req.DeviceName, req.Location)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"device_id": dev.DeviceID,
		"message":   "Device enrolled successfully",
	})
}

func (s *Server) getDevice(w http.ResponseWriter, r *http.Request) {
	dev, ok := s.store.Device(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	writeJSON(w, http.StatusOK, dev)
}

type sessionRequest struct {
	DeviceID    string `json:"device_id"`
	SessionName string `json:"session_name"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sessionID, ok := s.store.CreateSession(req.DeviceID)
	if !ok {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"session_id": sessionID,
		"device_id":  req.DeviceID,
		"created_at": time.Now().Format(time.RFC3339),
	})
}

type detectRequest struct {
	DeviceID   string  `json:"device_id"`
	SessionID  string  `json:"session_id"`
	Payload    string  `json:"payload"`
	Confidence float64 `json:"confidence"`
}

func (s *Server) recordDetection(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.DeviceID == "" || req.Payload == "" {
		writeError(w, http.StatusBadRequest, "device_id and payload are required")
		return
	}
	det := s.store.RecordDetection(req.DeviceID, req.SessionID, req.Payload, req.Confidence)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"detection_id": det.DetectionID,
		"device_id":    det.DeviceID,
		"confidence":   det.Confidence,
		"status":       det.Status,
	})
}

func (s *Server) getDetection(w http.ResponseWriter, r *http.Request) {
	det, ok := s.store.Detection(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Detection not found")
		return
	}
	writeJSON(w, http.StatusOK, det)
}

type reportRequest struct {
	DetectionID string `json:"detection_id"`
}

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if _, ok := s.store.Detection(req.DetectionID); !ok {
		writeError(w, http.StatusNotFound, "Detection not found")
		return
	}
	report, ok := s.store.BuildReport(req.DetectionID)
	if !ok {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	devices, detections := s.store.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"timestamp":        time.Now().Format(time.RFC3339),
		"devices_count":    devices,
		"detections_count": detections,
	})
}
