// Package testserver runs an in-process stand-in for the ticker statistics
// server. Responses are programmable and every hit is counted, which lets
// tests assert on exactly which endpoints a flow touched.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dyike/indexstats/internal/models"
)

type response struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	data        response
	refresh     response
	dashboard   response
	csrfCookie  string
	dataHits    int
	refreshHits int
	dashHits    int
	lastCSRF    string
	lastHeaders http.Header
	onRefresh   func()
}

// New starts a server that serves an empty report and accepts refreshes.
func New() *Server {
	s := &Server{
		data:      response{status: http.StatusOK, body: `{"Generated on": "Generated on: N/A, at N/A", "Tickers": []}`},
		refresh:   response{status: http.StatusOK, body: `{"status": "success", "message": "Data refreshed successfully!", "TICKER": "All"}`},
		dashboard: response{status: http.StatusOK, body: "<html><body></body></html>"},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleDashboard)
	r.Get("/ticker-data/", s.handleTickerData)
	r.Post("/refresh-data/", s.handleRefresh)

	s.Server = httptest.NewServer(r)
	return s
}

// SetTickerData sets the raw response of the data endpoint.
func (s *Server) SetTickerData(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = response{status: status, body: body}
}

// SetEnvelope serves a report built from records.
func (s *Server) SetEnvelope(generatedOn string, records []models.TickerRecord) {
	payload := map[string]any{
		models.KeyGeneratedOn: generatedOn,
		models.KeyTickers:     records,
	}
	body, _ := json.Marshal(payload)
	s.SetTickerData(http.StatusOK, string(body))
}

// SetRefresh sets the raw response of the refresh endpoint.
func (s *Server) SetRefresh(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = response{status: status, body: body}
}

// OnRefresh registers fn to run inside every refresh request, before the
// response is written.
func (s *Server) OnRefresh(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

// SetDashboard sets the dashboard page body and, when cookieValue is not
// empty, a csrftoken cookie issued with it.
func (s *Server) SetDashboard(html, cookieValue string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = response{status: http.StatusOK, body: html}
	s.csrfCookie = cookieValue
}

func (s *Server) DataHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataHits
}

func (s *Server) RefreshHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshHits
}

func (s *Server) DashboardHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashHits
}

// LastCSRF returns the X-CSRFToken header of the latest refresh request.
func (s *Server) LastCSRF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCSRF
}

// LastHeaders returns the headers of the latest request on any endpoint.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeaders.Clone()
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.dashHits++
	s.lastHeaders = r.Header.Clone()
	resp := s.dashboard
	token := s.csrfCookie
	s.mu.Unlock()

	if token != "" {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: token, Path: "/"})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (s *Server) handleTickerData(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.dataHits++
	s.lastHeaders = r.Header.Clone()
	resp := s.data
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.refreshHits++
	s.lastCSRF = r.Header.Get("X-CSRFToken")
	s.lastHeaders = r.Header.Clone()
	resp := s.refresh
	hook := s.onRefresh
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}
