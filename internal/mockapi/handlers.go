// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package mockapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/toeirei/assetdesk/internal/model"
)

// maxPageSize caps page_size like the real API does.
const maxPageSize = 100

type results[T any] struct {
	Results []T `json:"results"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid body."})
		return
	}

	s.mu.Lock()
	pw, known := s.users[creds.Email]
	if !known || pw != creds.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid email or password."})
		return
	}
	token := uuid.NewString()
	s.tokens[token] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Logged out."})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := min(queryInt(r, "page_size", 10), maxPageSize)

	s.mu.Lock()
	total := len(s.assets)
	// pages past the end are empty; checked before multiplying so huge
	// page numbers cannot overflow
	start := total
	if page-1 <= total/size {
		start = min((page-1)*size, total)
	}
	end := min(start+size, total)
	rows := make([]model.Asset, end-start)
	copy(rows, s.assets[start:end])
	s.mu.Unlock()

	pageCount := (total + size - 1) / size
	if pageCount == 0 {
		pageCount = 1
	}
	writeJSON(w, http.StatusOK, model.AssetPage{
		Results:   rows,
		Count:     total,
		Page:      page,
		PageCount: pageCount,
		PageSize:  size,
	})
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (model.AssetInput, bool) {
	var in model.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid body."})
		return in, false
	}
	if in.Name == "" || s.statusName(in.StatusID) == "" || s.locationName(in.LocationID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "name, status_id and location_id must reference existing rows."})
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	a := model.Asset{ID: uuid.NewString(), Name: in.Name, StatusID: in.StatusID, LocationID: in.LocationID}
	s.mu.Lock()
	s.assets = append(s.assets, a)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	i := s.indexOf(id)
	var a model.Asset
	if i >= 0 {
		a = s.assets[i]
	}
	s.mu.Unlock()
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	writeJSON(w, http.StatusOK, model.AssetDetail{
		ID:       a.ID,
		Name:     a.Name,
		Status:   model.Ref{ID: a.StatusID, Name: s.statusName(a.StatusID)},
		Location: model.Ref{ID: a.LocationID, Name: s.locationName(a.LocationID)},
	})
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.assets[i] = model.Asset{ID: id, Name: in.Name, StatusID: in.StatusID, LocationID: in.LocationID}
	}
	s.mu.Unlock()
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.assets = append(s.assets[:i], s.assets[i+1:]...)
	}
	s.mu.Unlock()
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatuses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]model.Status(nil), s.statuses...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, results[model.Status]{Results: out})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]model.Location(nil), s.locations...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, results[model.Location]{Results: out})
}

func (s *Server) handleAggByStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]model.AggregateCount, 0, len(s.statuses))
	for _, st := range s.statuses {
		n := 0
		for _, a := range s.assets {
			if a.StatusID == st.ID {
				n++
			}
		}
		out = append(out, model.AggregateCount{Kind: model.GroupStatus, Group: model.Ref(st), Count: n})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, results[model.AggregateCount]{Results: out})
}

func (s *Server) handleAggByLocation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]model.AggregateCount, 0, len(s.locations))
	for _, l := range s.locations {
		n := 0
		for _, a := range s.assets {
			if a.LocationID == l.ID {
				n++
			}
		}
		out = append(out, model.AggregateCount{Kind: model.GroupLocation, Group: model.Ref(l), Count: n})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, results[model.AggregateCount]{Results: out})
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id string) int {
	for i, a := range s.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) statusName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.statuses {
		if st.ID == id {
			return st.Name
		}
	}
	return ""
}

func (s *Server) locationName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.locations {
		if l.ID == id {
			return l.Name
		}
	}
	return ""
}
