package xlpanel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *StaticSource) {
	t.Helper()
	src := NewStaticSource(sampleResultSet(), Filter{Expression: "Sales > 0"})
	board := &NoticeBoard{}
	s := NewSession(src, WithNotifier(board))
	require.NoError(t, s.Load(context.Background()))
	return NewHandler(s, board, "Sales Panel"), src
}

func TestHandler_Index(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Sales Panel</title>")
	assert.Contains(t, body, `<td style="background-color:#FFCCCC">$1,500.00</td>`)
	assert.NotContains(t, body, `class="notice"`)
}

func TestHandler_RefreshFailureShowsNoticeAndKeepsTable(t *testing.T) {
	h, src := newTestHandler(t)
	src.FailFetch(errors.New("host unreachable"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "./", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `class="notice"`)
	assert.Contains(t, body, "refresh failed")
	assert.Contains(t, body, "host unreachable")
	assert.Contains(t, body, "$1,500.00", "previous table is still shown")
}

func TestHandler_RefreshSuccessClearsNotice(t *testing.T) {
	h, src := newTestHandler(t)
	src.FailFetch(errors.New("host unreachable"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/refresh", nil))

	src.FailFetch(nil)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/refresh", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, rec.Body.String(), `class="notice"`)
}

func TestHandler_Export(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="PanelExport.xlsx"`, rec.Header().Get("Content-Disposition"))

	f := openExport(t, rec.Body.Bytes())
	assert.Equal(t, ColorBandA, fillColor(t, f, DefaultSheetName, "B2"))
}

func TestHandler_ExportFailureRedirects(t *testing.T) {
	h, src := newTestHandler(t)
	h.SetFileName("Q3.xlsx")
	src.FailFetch(errors.New("panel closed"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "export failed")
}

func TestHandler_Filters(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/filters", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []Filter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []Filter{{Expression: "Sales > 0"}}, got)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_RedirectsStayUnderPrefix(t *testing.T) {
	h, src := newTestHandler(t)
	mux := http.NewServeMux()
	mux.Handle("/panel/", http.StripPrefix("/panel", h))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/panel/refresh", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	base, _ := url.Parse("http://host/panel/refresh")
	assert.Equal(t, "/panel/", base.ResolveReference(loc).Path)

	src.FailFetch(errors.New("panel closed"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panel/export", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err = url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	base, _ = url.Parse("http://host/panel/export")
	assert.Equal(t, "/panel/", base.ResolveReference(loc).Path)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panel/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "export failed")
}
