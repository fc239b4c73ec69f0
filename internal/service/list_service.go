// Package service exposes the list engine over a JSON HTTP API.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dstam/planner/internal/list"
	"github.com/dstam/planner/internal/middleware"
	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/notify"
)

// ListService handles list and item requests. Every request opens a
// fresh List scoped to the session and group in the URL; there is no
// cross-request list state on the server.
type ListService struct {
	backends list.Backends
}

// NewListService creates a ListService over the given backends.
func NewListService(backends list.Backends) *ListService {
	return &ListService{backends: backends}
}

// Register installs the routes on mux.
func (s *ListService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/{kind}/{identifier}", s.handleLoad)
	mux.HandleFunc("POST /api/{kind}/{identifier}/items", s.handleAdd)
	mux.HandleFunc("PUT /api/{kind}/{identifier}/items/{id}", s.handleEdit)
	mux.HandleFunc("DELETE /api/{kind}/{identifier}/items/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/{kind}/{identifier}/items/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /api/tasks/{identifier}/apply", s.handleApply)
	mux.HandleFunc("DELETE /api/tasks/{identifier}/future", s.handleRemoveFuture)
}

type notificationPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
}

// listResponse carries the collection plus the outcome notifications a
// client UI would surface as toasts.
type listResponse struct {
	Items         []models.Item         `json:"items"`
	CanProject    bool                  `json:"can_project"`
	Notifications []notificationPayload `json:"notifications,omitempty"`
}

type addItemRequest struct {
	Content string `json:"content"`
}

type editItemRequest struct {
	Content string `json:"content"`
}

type toggleItemRequest struct {
	CurrentState bool `json:"current_state"`
}

type applyRequest struct {
	Replace bool `json:"replace"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// open builds the List for one request. On failure it writes the
// response itself and returns ok=false.
func (s *ListService) open(w http.ResponseWriter, r *http.Request, kind models.Kind) (*list.List, *notify.Recorder, bool) {
	sess := middleware.GetSession(r.Context())
	identifier := r.PathValue("identifier")

	rec := &notify.Recorder{}
	l, err := list.Open(sess, kind, identifier, s.backends, notify.Multi(rec, notify.LogNotifier{}))
	if err != nil {
		if errors.Is(err, list.ErrNoSession) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no active session"})
		} else {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return nil, nil, false
	}
	return l, rec, true
}

func (s *ListService) handleLoad(w http.ResponseWriter, r *http.Request) {
	l, rec, ok := s.open(w, r, models.Kind(r.PathValue("kind")))
	if !ok {
		return
	}

	items := l.Load(r.Context())
	writeJSON(w, http.StatusOK, response(items, l, rec))
}

func (s *ListService) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decode(w, r, &req) {
		return
	}

	l, rec, ok := s.open(w, r, models.Kind(r.PathValue("kind")))
	if !ok {
		return
	}

	l.Load(r.Context())
	if !l.Add(r.Context(), req.Content) {
		status := http.StatusBadGateway
		if models.CleanContent(req.Content) == "" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response(l.Items(), l, rec))
		return
	}
	writeJSON(w, http.StatusCreated, response(l.Items(), l, rec))
}

func (s *ListService) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editItemRequest
	if !decode(w, r, &req) {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	l, rec, ok := s.open(w, r, models.Kind(r.PathValue("kind")))
	if !ok {
		return
	}

	l.Load(r.Context())
	if !l.Edit(r.Context(), id, req.Content) {
		status := http.StatusBadGateway
		if models.CleanContent(req.Content) == "" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response(l.Items(), l, rec))
		return
	}
	writeJSON(w, http.StatusOK, response(l.Items(), l, rec))
}

func (s *ListService) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	l, rec, ok := s.open(w, r, models.Kind(r.PathValue("kind")))
	if !ok {
		return
	}

	l.Load(r.Context())
	l.Delete(r.Context(), id)
	writeJSON(w, statusFrom(rec), response(l.Items(), l, rec))
}

func (s *ListService) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleItemRequest
	if !decode(w, r, &req) {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	l, rec, ok := s.open(w, r, models.Kind(r.PathValue("kind")))
	if !ok {
		return
	}

	l.Load(r.Context())
	l.Toggle(r.Context(), id, req.CurrentState)
	writeJSON(w, statusFrom(rec), response(l.Items(), l, rec))
}

func (s *ListService) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decode(w, r, &req) {
		return
	}

	l, rec, ok := s.open(w, r, models.KindTask)
	if !ok {
		return
	}

	l.Load(r.Context())
	l.ApplyToFuture(r.Context(), req.Replace)
	writeJSON(w, statusFrom(rec), response(l.Items(), l, rec))
}

func (s *ListService) handleRemoveFuture(w http.ResponseWriter, r *http.Request) {
	l, rec, ok := s.open(w, r, models.KindTask)
	if !ok {
		return
	}

	l.Load(r.Context())
	l.RemoveFuture(r.Context())
	writeJSON(w, statusFrom(rec), response(l.Items(), l, rec))
}

func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// statusFrom maps recorded outcomes of a void operation to a status:
// any reported failure means the backend write did not happen.
func statusFrom(rec *notify.Recorder) int {
	if len(rec.Errors()) > 0 {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func response(items []models.Item, l *list.List, rec *notify.Recorder) listResponse {
	resp := listResponse{Items: items, CanProject: l.CanProject()}
	for _, n := range rec.All() {
		resp.Notifications = append(resp.Notifications, notificationPayload{
			Title:       n.Title,
			Description: n.Description,
			Severity:    string(n.Severity),
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
