package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires the demo API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/devices/enroll", s.enrollDevice).Methods(http.MethodPost)
	r.HandleFunc("/v1/devices/{id}", s.getDevice).Methods(http.MethodGet)
	r.HandleFunc("/v1/sessions", s.createSession).Methods(http.MethodPost)
	r.HandleFunc("/v1/detect", s.recordDetection).Methods(http.MethodPost)
	r.HandleFunc("/v1/detections/{id}", s.getDetection).Methods(http.MethodGet)
	r.HandleFunc("/v1/reports", s.generateReport).Methods(http.MethodPost)
	r.HandleFunc("/v1/health", s.health).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the demo service on addr, logging each request to
// logger when it is non-nil.
func (s *Server) ListenAndServe(addr string, logger *log.Logger) error {
	var handler http.Handler = s.Router()
	if logger != nil {
		handler = requestLog(logger, handler)
	}
	return http.ListenAndServe(addr, handler)
}

func requestLog(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
