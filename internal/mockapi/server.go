// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mockapi is an in-memory stand-in for the remote asset API. It backs
// the package tests and the `assetdesk mock-server` demo command.
package mockapi // import "github.com/toeirei/assetdesk/internal/mockapi"

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Seeded demo account.
const (
	DemoEmail    = "admin@assetdesk.test"
	DemoPassword = "secret"
)

// Server is safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	router    *mux.Router
	users     map[string]string
	tokens    map[string]bool
	statuses  []model.Status
	locations []model.Location
	assets    []model.Asset

	requests  int
	byPath    map[string]int
	lastAuth  string
	failNext  map[string]int
	malformed map[string]bool
}

// New returns a Server seeded with the demo account, three statuses and three locations.
func New() *Server {
	s := &Server{
		users:     map[string]string{DemoEmail: DemoPassword},
		tokens:    map[string]bool{},
		byPath:    map[string]int{},
		failNext:  map[string]int{},
		malformed: map[string]bool{},
		statuses: []model.Status{
			{ID: "s1", Name: "Active"},
			{ID: "s2", Name: "In Repair"},
			{ID: "s3", Name: "Retired"},
		},
		locations: []model.Location{
			{ID: "l1", Name: "Warehouse A"},
			{ID: "l2", Name: "Head Office"},
			{ID: "l3", Name: "Branch Office"},
		},
		assets: []model.Asset{},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.track)

	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/auth/logout", s.authed(s.handleLogout)).Methods("POST")

	r.HandleFunc("/asset/", s.authed(s.handleListAssets)).Methods("GET")
	r.HandleFunc("/asset/", s.authed(s.handleCreateAsset)).Methods("POST")
	r.HandleFunc("/asset/{id}", s.authed(s.handleGetAsset)).Methods("GET")
	r.HandleFunc("/asset/{id}", s.authed(s.handleUpdateAsset)).Methods("PUT")
	r.HandleFunc("/asset/{id}", s.authed(s.handleDeleteAsset)).Methods("DELETE")

	r.HandleFunc("/status/", s.authed(s.handleStatuses)).Methods("GET")
	r.HandleFunc("/location/", s.authed(s.handleLocations)).Methods("GET")
	r.HandleFunc("/home/agg-asset-by-status/", s.authed(s.handleAggByStatus)).Methods("GET")
	r.HandleFunc("/home/agg-asset-by-location/", s.authed(s.handleAggByLocation)).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.count(r)
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) count(r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.byPath[r.URL.Path]++
	s.lastAuth = r.Header.Get("Authorization")
	s.mu.Unlock()
	logging.Debugf("mockapi: %s %s", r.Method, r.URL.Path)
}

// track counts the request and applies injected failures before routing.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.count(r)

		s.mu.Lock()
		code, fail := s.failNext[r.URL.Path]
		if fail {
			delete(s.failNext, r.URL.Path)
		}
		bad := s.malformed[r.URL.Path]
		s.mu.Unlock()

		if fail {
			writeJSON(w, code, map[string]string{"detail": http.StatusText(code)})
			return
		}
		if bad {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"unexpected": true}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := ok && s.tokens[token]
		s.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		h(w, r)
	}
}

// --- test hooks ---

// Requests returns the number of requests received so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// RequestsTo returns the number of requests received for one URL path.
func (s *Server) RequestsTo(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byPath[path]
}

// LastAuthorization returns the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// FailNext makes the next request to path answer with code.
func (s *Server) FailNext(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[path] = code
}

// SetMalformed makes every request to path answer 200 with a body lacking the expected fields.
func (s *Server) SetMalformed(path string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.malformed[path] = true
	} else {
		delete(s.malformed, path)
	}
}

// IssueToken registers and returns a valid bearer token without a login round-trip.
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := uuid.NewString()
	s.tokens[t] = true
	return t
}

// AddUser registers another account.
func (s *Server) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// SeedAsset inserts an asset directly and returns it.
func (s *Server) SeedAsset(name, statusID, locationID string) model.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.Asset{ID: uuid.NewString(), Name: name, StatusID: statusID, LocationID: locationID}
	s.assets = append(s.assets, a)
	return a
}

// Assets returns a copy of the current rows.
func (s *Server) Assets() []model.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("mockapi: encoding response: %v", err)
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
