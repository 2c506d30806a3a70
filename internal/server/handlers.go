package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
)

// TotalCountHeader reports the number of matching rows on /recent
const TotalCountHeader = "X-Total-Count"

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

type compareRequest struct {
	From models.Document `json:"from"`
	To   models.Document `json:"to"`
}

type saveRevisionRequest struct {
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Excerpt   string              `json:"excerpt"`
	Author    string              `json:"author"`
	Type      models.RevisionType `json:"type"`
	CreatedAt *time.Time          `json:"created_at,omitempty"`
}

type saveRevisionResponse struct {
	Revision *models.Revision `json:"revision"`
	Created  bool             `json:"created"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	result, err := s.service.Compare(r.Context(), req.From, req.To)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	perPage, err := queryInt(r, "per_page")
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	summaries, err := s.service.ListRevisions(r.Context(), postID, perPage)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleSaveRevision(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	var req saveRevisionRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	switch req.Type {
	case "", models.RevisionManual, models.RevisionAutosave:
	default:
		s.respondErr(w, r, errorwrapper.NewValidationError("type", req.Type, "must be manual or autosave"))
		return
	}

	rev := models.Revision{
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Author:  req.Author,
		Type:    req.Type,
	}
	if req.CreatedAt != nil {
		rev.CreatedAt = *req.CreatedAt
	}

	saved, created, err := s.service.SaveRevision(r.Context(), rev)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, saveRevisionResponse{Revision: saved, Created: created})
}

func (s *Server) handleRevisionDiff(w http.ResponseWriter, r *http.Request) {
	revisionID, err := pathID(r, "revision_id")
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	compareTo, err := queryInt64(r, "compare_to")
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	diff, err := s.service.DiffRevision(r.Context(), revisionID, compareTo)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, diff)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRevisionFilter(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	summaries, total, err := s.service.RecentRevisions(r.Context(), filter)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
	respondJSON(w, http.StatusOK, summaries)
}

func parseRevisionFilter(r *http.Request) (models.RevisionFilter, error) {
	var filter models.RevisionFilter
	var err error

	if filter.PerPage, err = queryInt(r, "per_page"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt(r, "page"); err != nil {
		return filter, err
	}
	if filter.PostID, err = queryInt64(r, "post_id"); err != nil {
		return filter, err
	}
	if filter.After, err = queryTime(r, "after"); err != nil {
		return filter, err
	}
	if filter.Before, err = queryTime(r, "before"); err != nil {
		return filter, err
	}
	filter.Author = r.URL.Query().Get("author")
	return filter, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return errorwrapper.NewValidationError("body", nil, "invalid JSON: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errorwrapper.NewValidationError(name, raw, "must be a positive integer")
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, errorwrapper.NewValidationError(name, raw, "must be a non-negative integer")
	}
	return v, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v, err := queryInt64(r, name)
	return int(v), err
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errorwrapper.NewValidationError(name, raw, "must be RFC 3339 or YYYY-MM-DD")
}
