// Package remotetest provides an in-memory record API for tests: per-user
// partitions, server-assigned ids, and the same form-post mutation surface
// as the production endpoint.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"studyrec/internal/record"
	"studyrec/internal/remote"
)

// Server is a fake record API backed by maps.
type Server struct {
	mu     sync.Mutex
	srv    *httptest.Server
	byUser map[string][]record.Record
	master record.MasterData
}

// NewServer starts a fake API.
func NewServer() *Server {
	s := &Server{byUser: map[string][]record.Record{}}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the API base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SetMasterData replaces the served master data.
func (s *Server) SetMasterData(m record.MasterData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.master = m
}

// Seed inserts records for a user, assigning ids to any without one.
func (s *Server) Seed(userName string, recs ...record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.UserName = userName
		s.byUser[userName] = append(s.byUser[userName], r)
	}
}

// Records returns a copy of a user's partition.
func (s *Server) Records(userName string) []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.Record, len(s.byUser[userName]))
	copy(out, s.byUser[userName])
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userName := r.URL.Query().Get("userName")
	p := remote.Payload{
		Records:    append([]record.Record(nil), s.byUser[userName]...),
		MasterData: s.master,
	}
	if p.Records == nil {
		p.Records = []record.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	duration, _ := strconv.Atoi(r.PostFormValue("duration"))
	rec := record.Record{
		ID:         r.PostFormValue("id"),
		Date:       r.PostFormValue("date"),
		StartTime:  r.PostFormValue("startTime"),
		EndTime:    r.PostFormValue("endTime"),
		Duration:   duration,
		Category:   r.PostFormValue("category"),
		Content:    r.PostFormValue("content"),
		Enthusiasm: r.PostFormValue("enthusiasm"),
		Condition:  r.PostFormValue("condition"),
		Comment:    r.PostFormValue("comment"),
		Location:   r.PostFormValue("location"),
		UserName:   r.PostFormValue("userName"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Mutation outcomes are reported in a 200 JSON body, like the real
	// endpoint; clients do not read it.
	result := map[string]string{"status": "success"}
	switch remote.Action(r.PostFormValue("action")) {
	case remote.ActionCreate:
		rec.ID = uuid.NewString()
		s.byUser[rec.UserName] = append(s.byUser[rec.UserName], rec)
	case remote.ActionUpdate:
		if !s.replace(rec) {
			result = map[string]string{"status": "error", "message": "Record not found"}
		}
	case remote.ActionDelete:
		if !s.remove(rec.UserName, rec.ID) {
			result = map[string]string{"status": "error", "message": "Record not found"}
		}
	default:
		result = map[string]string{"status": "error", "message": "Unknown action"}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) replace(rec record.Record) bool {
	recs := s.byUser[rec.UserName]
	for i, r := range recs {
		if r.ID == rec.ID {
			recs[i] = rec
			return true
		}
	}
	return false
}

func (s *Server) remove(userName, id string) bool {
	recs := s.byUser[userName]
	for i, r := range recs {
		if r.ID == id {
			s.byUser[userName] = append(recs[:i:i], recs[i+1:]...)
			return true
		}
	}
	return false
}
