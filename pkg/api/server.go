/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api serves the agent's HTTP interface.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/carverauto/bleradar/pkg/agent"
	httpx "github.com/carverauto/bleradar/pkg/http"
	"github.com/carverauto/bleradar/pkg/models"
)

const writeWait = 5 * time.Second

type Server struct {
	service  DiscoveryService
	router   *mux.Router
	limiter  *rate.Limiter
	metrics  http.Handler
	upgrader websocket.Upgrader
}

type Option func(*Server)

// WithRateLimit bounds how often scans can be requested.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

func NewServer(service DiscoveryService, opts ...Option) *Server {
	s := &Server{
		service: service,
		router:  mux.NewRouter(),
		limiter: rate.NewLimiter(rate.Inf, 0),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(httpx.LoggingMiddleware, httpx.CommonMiddleware)

	s.router.HandleFunc("/api/scans", s.createScan).Methods("POST", "OPTIONS")
	s.router.HandleFunc("/api/scans", s.listScans).Methods("GET")
	s.router.HandleFunc("/api/scans/{id}", s.getScan).Methods("GET")
	s.router.HandleFunc("/api/scans/{id}/stream", s.streamScan).Methods("GET")
	s.router.HandleFunc("/api/devices", s.getDevices).Methods("GET")

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics).Methods("GET")
	}
}

func (s *Server) createScan(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "scan rate limit exceeded")
		return
	}

	var req scanRequest

	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", errInvalidBody, err).Error())
		return
	}

	if req.TimeoutMS < 0 {
		writeError(w, http.StatusBadRequest, "timeout_ms must not be negative")
		return
	}

	status, err := s.service.StartScan(r.Context(), models.ScanRequest{
		Timeout: time.Duration(req.TimeoutMS) * time.Millisecond,
		Adapter: req.Adapter,
	})
	if err != nil {
		log.Printf("Failed to start scan: %v", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())

		return
	}

	writeJSON(w, http.StatusAccepted, status)
}

func (s *Server) listScans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListScans())
}

func (s *Server) getScan(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.GetScan(mux.Vars(r)["id"])
	if err != nil {
		writeScanError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// streamScan relays a scan's events over a websocket until the final done
// or error event, then closes the connection.
func (s *Server) streamScan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	events, unsubscribe, err := s.service.Subscribe(id)
	if err != nil {
		writeScanError(w, err)
		return
	}
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for scan %s: %v", id, err)
		return
	}

	defer func(conn *websocket.Conn) {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket connection: %v", err)
		}
	}(conn)

	// Reads only detect the peer going away.
	gone := make(chan struct{})

	go func() {
		defer close(gone)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-events:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "scan finished")

				if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
					log.Printf("Error closing stream for scan %s: %v", id, err)
				}

				return
			}

			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("Error writing event for scan %s: %v", id, err)
				return
			}
		}
	}
}

func (s *Server) getDevices(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSightingFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := s.service.Sightings(r.Context(), filter)
	if err != nil {
		log.Printf("Failed to query sightings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to query sightings")

		return
	}

	writeJSON(w, http.StatusOK, found)
}

func parseSightingFilter(r *http.Request) (*models.SightingFilter, error) {
	q := r.URL.Query()

	filter := &models.SightingFilter{
		ScanID:  q.Get("scan_id"),
		Address: q.Get("address"),
		Limit:   defaultDeviceLimit,
	}

	var err error

	if filter.Vendor, err = parseUint16(q.Get("vendor")); err != nil {
		return nil, fmt.Errorf("%w: vendor: %w", errInvalidQuery, err)
	}

	if filter.Discriminator, err = parseUint16(q.Get("discriminator")); err != nil {
		return nil, fmt.Errorf("%w: discriminator: %w", errInvalidQuery, err)
	}

	if v := q.Get("since"); v != "" {
		if filter.StartTime, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, fmt.Errorf("%w: since: %w", errInvalidQuery, err)
		}
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("%w: limit must be a positive integer", errInvalidQuery)
		}

		filter.Limit = min(limit, maxDeviceLimit)
	}

	return filter, nil
}

// parseUint16 accepts decimal or 0x-prefixed hex. Empty input yields nil.
func parseUint16(v string) (*uint16, error) {
	if v == "" {
		return nil, nil
	}

	n, err := strconv.ParseUint(v, 0, 16)
	if err != nil {
		return nil, err
	}

	out := uint16(n)

	return &out, nil
}

func writeScanError(w http.ResponseWriter, err error) {
	if errors.Is(err, agent.ErrScanNotFound) {
		writeError(w, http.StatusNotFound, "scan not found")
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
