package xlpanel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Session connects a DataSource to the refresh and export triggers and holds
// the table currently on screen. A failed trigger never replaces that table.
type Session struct {
	source DataSource
	opts   []Option
	cfg    *Options

	mu    sync.Mutex
	rs    *ResultSet
	table *Table
}

// NewSession creates a Session reading from source. The options apply to every
// render and export the Session performs.
func NewSession(source DataSource, opts ...Option) *Session {
	return &Session{
		source: source,
		opts:   opts,
		cfg:    buildOptions(opts),
	}
}

// Table returns the table currently displayed, or nil before the first successful load.
func (s *Session) Table() *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// ResultSet returns the data behind the displayed table, or nil.
func (s *Session) ResultSet() *ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rs
}

// Load fetches the panel data and displays it without re-applying filters.
func (s *Session) Load(ctx context.Context) error {
	log := s.opLogger("load")
	return s.load(ctx, log, "load")
}

// Refresh re-applies the panel filters, fetches the data and replaces the displayed table.
func (s *Session) Refresh(ctx context.Context) error {
	log := s.opLogger("refresh")
	if err := s.source.ApplyFilters(ctx); err != nil {
		err = s.acquisitionError("apply filters", err)
		s.fail(log, "refresh", err)
		return err
	}
	return s.load(ctx, log, "refresh")
}

func (s *Session) load(ctx context.Context, log *slog.Logger, action string) error {
	rs, err := s.fetch(ctx)
	if err != nil {
		s.fail(log, action, err)
		return err
	}
	table := Render(rs, s.opts...)

	s.mu.Lock()
	s.rs = rs
	s.table = table
	s.mu.Unlock()

	log.Info("table updated", "columns", rs.Width(), "rows", rs.Len())
	s.notify(Notice{Level: NoticeInfo, Action: action, Message: fmt.Sprintf("loaded %d rows", rs.Len())})
	return nil
}

// Export fetches the current panel data and writes it to w as an xlsx workbook.
// The displayed table is left untouched either way.
func (s *Session) Export(ctx context.Context, w io.Writer) error {
	log := s.opLogger("export")
	rs, err := s.fetch(ctx)
	if err != nil {
		s.fail(log, "export", err)
		return err
	}
	if err := Export(rs, w, s.opts...); err != nil {
		s.fail(log, "export", err)
		return err
	}
	log.Info("export written", "columns", rs.Width(), "rows", rs.Len())
	s.notify(Notice{Level: NoticeInfo, Action: "export", Message: fmt.Sprintf("exported %d rows", rs.Len())})
	return nil
}

// ExportBytes is Export into memory. Nothing is returned on failure, so a
// caller never sees a partial workbook.
func (s *Session) ExportBytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Export(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filters lists the active filters of the underlying source.
func (s *Session) Filters(ctx context.Context) ([]Filter, error) {
	filters, err := s.source.Filters(ctx)
	if err != nil {
		return nil, s.acquisitionError("filters", err)
	}
	return filters, nil
}

// Page returns a page for the displayed table.
func (s *Session) Page(title, notice string) Page {
	return Page{Title: title, Notice: notice, Table: s.Table()}
}

func (s *Session) fetch(ctx context.Context) (*ResultSet, error) {
	rs, err := s.source.SummaryData(ctx)
	if err != nil {
		return nil, s.acquisitionError("summary data", err)
	}
	if rs == nil {
		return nil, s.acquisitionError("summary data", ErrPanelNotFound)
	}
	if issues := Validate(rs); HasErrors(issues) {
		return nil, s.acquisitionError("summary data",
			fmt.Errorf("%w: %s", ErrInvalidResultSet, firstError(issues)))
	}
	return rs, nil
}

func (s *Session) acquisitionError(op string, err error) error {
	return &AcquisitionError{Op: op, Panel: panelName(s.source), Err: err}
}

func (s *Session) fail(log *slog.Logger, action string, err error) {
	log.Error(action+" failed", "error", err)
	s.notify(Notice{Level: NoticeError, Action: action, Message: err.Error()})
}

func (s *Session) notify(n Notice) {
	for _, nt := range s.cfg.notifiers {
		nt.Notify(n)
	}
}

func (s *Session) opLogger(action string) *slog.Logger {
	return s.cfg.logger.With("action", action, "op_id", uuid.NewString(), "panel", panelName(s.source))
}

func panelName(src DataSource) string {
	if p, ok := src.(interface{ Panel() string }); ok {
		return p.Panel()
	}
	return ""
}

func firstError(issues []ValidationIssue) ValidationIssue {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return issue
		}
	}
	return ValidationIssue{}
}
