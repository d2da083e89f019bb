// Package httpd exposes the dashboard's query and command operations as a
// JSON API for browser consumers. It is a thin presentation boundary: all
// caching, invalidation and notification semantics live in the cache and
// command packages.
package httpd

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/drivedash/drivedash"
	"github.com/drivedash/drivedash/cache"
	"github.com/drivedash/drivedash/command"
	"github.com/drivedash/drivedash/upload"
)

// maxUploadBytes bounds the accepted upload request body.
const maxUploadBytes = 512 * 1024 * 1024

// Server routes dashboard API requests to the query and command layers.
type Server struct {
	store     *cache.Store
	commander *command.Commander
}

// NewServer builds a server over the store and commander.
func NewServer(store *cache.Store, commander *command.Commander) *Server {
	return &Server{store: store, commander: commander}
}

// Handler returns the routed handler wrapped in logging, panic recovery and
// permissive CORS middleware.
func (s *Server) Handler(logWriter io.Writer) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/files/recent", s.handleRecent).Methods(http.MethodGet)
	r.HandleFunc("/api/files/favorites", s.handleFavorites).Methods(http.MethodGet)
	r.HandleFunc("/api/files", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/files", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/files/{id}/star", s.handleStar).Methods(http.MethodPost)
	r.HandleFunc("/api/files/{id}/share", s.handleShare).Methods(http.MethodPost)
	r.HandleFunc("/api/files/{id}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/api/folders", s.handleCreateFolder).Methods(http.MethodPost)
	r.HandleFunc("/api/quota", s.handleQuota).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)

	h := handlers.RecoveryHandler()(r)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	if logWriter != nil {
		h = handlers.LoggingHandler(logWriter, h)
	}
	return h
}

type listPayload struct {
	Ready bool                   `json:"ready"`
	Files []drivedash.FileEntity `json:"files"`
}

type quotaPayload struct {
	Ready bool                    `json:"ready"`
	Quota drivedash.QuotaSnapshot `json:"quota"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := drivedash.QueryDescriptor{
		SortBy:   drivedash.SortKey(q.Get("sort")),
		FilterBy: drivedash.FilterKey(q.Get("filter")),
		Search:   q.Get("q"),
	}
	s.writeListResult(w, s.store.Files(r.Context(), d))
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	s.writeListResult(w, s.store.Recent(r.Context(), limit))
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.writeListResult(w, s.store.Favorites(r.Context()))
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	res := s.store.Quota(r.Context())
	writeSuccess(w, quotaPayload{Ready: res.Ready, Quota: res.Data}, "")
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]bool{"busy": s.commander.Busy()}, "")
}

func (s *Server) writeListResult(w http.ResponseWriter, res cache.Result[[]drivedash.FileEntity]) {
	payload := listPayload{Ready: res.Ready, Files: res.Data}
	if payload.Files == nil {
		payload.Files = []drivedash.FileEntity{}
	}
	message := ""
	if !res.Ready {
		message = "session not ready"
	} else if res.Err != nil {
		// Stale data is served alongside the refresh error.
		message = res.Err.Error()
	}
	writeSuccess(w, payload, message)
}

func (s *Server) handleStar(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Starred bool `json:"starred"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n := s.commander.ToggleStar(r.Context(), mux.Vars(r)["id"], body.Starred)
	s.writeNotification(w, n, nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	n := s.commander.Delete(r.Context(), mux.Vars(r)["id"])
	s.writeNotification(w, n, nil)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	link, n := s.commander.CreateShareLink(r.Context(), mux.Vars(r)["id"])
	s.writeNotification(w, n, map[string]string{"link": link})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck

	src := upload.Source{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		ParentID:    r.FormValue("parentId"),
		Reader:      file,
	}
	task, n := s.commander.Upload(r.Context(), src, nil)
	s.writeNotification(w, n, task)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		ParentID string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	folder, n := s.commander.CreateFolder(r.Context(), body.Name, body.ParentID)
	s.writeNotification(w, n, folder)
}

// writeNotification maps a command outcome onto the response envelope. Failed
// commands respond 502: the provider refused or dropped the request and the
// client should offer a retry.
func (s *Server) writeNotification(w http.ResponseWriter, n command.Notification, data any) {
	if !n.Ok {
		writeError(w, http.StatusBadGateway, n.Title+": "+n.Detail)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Message: n.Title + ": " + n.Detail,
	})
}
