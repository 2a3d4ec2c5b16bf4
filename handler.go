package xlpanel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the refresh and export triggers of a Session over HTTP.
//
//	GET  /         current table, with the last error notice if any
//	POST /refresh  re-apply filters and reload, then redirect to /
//	GET  /export   download the panel as xlsx
//	GET  /filters  active filters as JSON
type Handler struct {
	session  *Session
	board    *NoticeBoard
	title    string
	fileName string
	mux      *http.ServeMux
}

// NewHandler creates a Handler. board should be registered on the session with
// WithNotifier so failures show up on the page; it may be nil.
func NewHandler(session *Session, board *NoticeBoard, title string) *Handler {
	h := &Handler{
		session:  session,
		board:    board,
		title:    title,
		fileName: DefaultFileName,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("POST /refresh", h.refresh)
	h.mux.HandleFunc("GET /export", h.export)
	h.mux.HandleFunc("GET /filters", h.filters)
	return h
}

// SetFileName sets the download name used by /export.
func (h *Handler) SetFileName(name string) {
	if name != "" {
		h.fileName = name
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.session.Page(h.title, h.errorNotice()).WriteHTML(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	// Failures are reported through the notice board; the old table stays.
	_ = h.session.Refresh(r.Context())
	backToIndex(w)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	data, err := h.session.ExportBytes(r.Context())
	if err != nil {
		backToIndex(w)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.fileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Write(data)
}

// backToIndex redirects to the page relative to the trigger URL, which keeps
// the client under whatever prefix the handler is mounted at.
func backToIndex(w http.ResponseWriter) {
	w.Header().Set("Location", "./")
	w.WriteHeader(http.StatusSeeOther)
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.session.Filters(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if filters == nil {
		filters = []Filter{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filters)
}

func (h *Handler) errorNotice() string {
	if h.board == nil {
		return ""
	}
	n, ok := h.board.Last()
	if !ok || n.Level != NoticeError {
		return ""
	}
	return fmt.Sprintf("%s failed: %s", n.Action, n.Message)
}
