package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Device is an enrolled display device.
type Device struct {
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
	Location   string `json:"location"`
	EnrolledAt string `json:"enrolled_at"`
	Status     string `json:"status"`
}

// Detection is one recorded detector result.
type Detection struct {
	DetectionID string  `json:"detection_id"`
	DeviceID    string  `json:"device_id"`
	SessionID   string  `json:"session_id"`
	Payload     string  `json:"payload"`
	Confidence  float64 `json:"confidence"`
	DetectedAt  string  `json:"detected_at"`
	Status      string  `json:"status"`
}

// Report joins a detection with its enrolled device for traceability.
type Report struct {
	ReportID    string  `json:"report_id"`
	DetectionID string  `json:"detection_id"`
	DeviceID    string  `json:"device_id"`
	DeviceName  string  `json:"device_name"`
	Location    string  `json:"location"`
	Confidence  float64 `json:"confidence"`
	DetectedAt  string  `json:"detected_at"`
	GeneratedAt string  `json:"generated_at"`
	Status      string  `json:"status"`
}

// Store keeps enrollment and detection records in memory. All methods are
// safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	devices    map[string]Device
	detections map[string]Detection
	counter    int
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		devices:    make(map[string]Device),
		detections: make(map[string]Detection),
		now:        time.Now,
	}
}

// EnrollDevice registers (or re-registers) a device.
func (s *Store) EnrollDevice(deviceID, deviceName, location string) Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Device{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		Location:   location,
		EnrolledAt: s.now().Format(time.RFC3339),
		Status:     "active",
	}
	s.devices[deviceID] = d
	return d
}

// Device looks up an enrolled device.
func (s *Store) Device(deviceID string) (Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[deviceID]
	return d, ok
}

// CreateSession issues a session identifier bound to an enrolled device.
// It reports false when the device is not enrolled.
func (s *Store) CreateSession(deviceID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.devices[deviceID]; !ok {
		return "", false
	}
	return deviceID + "-" + uuid.NewString(), true
}

// RecordDetection stores a detector result under a sequential identifier.
// Results above 0.8 confidence are recorded as verified, the rest as pending.
func (s *Store) RecordDetection(deviceID, sessionID, payload string, confidence float64) Detection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	status := "pending"
	if confidence > 0.8 {
		status = "verified"
	}
	det := Detection{
		DetectionID: fmt.Sprintf("DET-%06d", s.counter),
		DeviceID:    deviceID,
		SessionID:   sessionID,
		Payload:     payload,
		Confidence:  confidence,
		DetectedAt:  s.now().Format(time.RFC3339),
		Status:      status,
	}
	s.detections[det.DetectionID] = det
	return det
}

// Detection looks up a recorded detection.
func (s *Store) Detection(detectionID string) (Detection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.detections[detectionID]
	return d, ok
}

// BuildReport joins a detection with its enrolled device. It reports false
// when the detection is unknown or its device was never enrolled.
func (s *Store) BuildReport(detectionID string) (Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	det, ok := s.detections[detectionID]
	if !ok {
		return Report{}, false
	}
	dev, ok := s.devices[det.DeviceID]
	if !ok {
		return Report{}, false
	}
	return Report{
		ReportID:    "RPT-" + det.DetectionID,
		DetectionID: det.DetectionID,
		DeviceID:    dev.DeviceID,
		DeviceName:  dev.DeviceName,
		Location:    dev.Location,
		Confidence:  det.Confidence,
		DetectedAt:  det.DetectedAt,
		GeneratedAt: s.now().Format(time.RFC3339),
		Status:      "verified",
	}, true
}

// Counts returns the number of enrolled devices and recorded detections.
func (s *Store) Counts() (devices, detections int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices), len(s.detections)
}
