package xlpanel

import (
	"io"
	"log/slog"
)

// Defaults for exported workbooks.
const (
	DefaultSheetName = "PanelExport"
	DefaultFileName  = "PanelExport.xlsx"

	// DefaultColumnWidth is 100px expressed in Excel character units.
	DefaultColumnWidth = 13.57
)

// Options holds configuration shared by the renderer, the exporter and Session.
type Options struct {
	sheetName     string
	columnWidth   float64
	styleLookup   StyleLookup
	cellListeners []CellListener
	notifiers     []Notifier
	logger        *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		sheetName:   DefaultSheetName,
		columnWidth: DefaultColumnWidth,
		styleLookup: Classify,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures rendering and export.
type Option func(*Options)

// WithSheetName sets the name of the exported sheet (default: "PanelExport").
func WithSheetName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.sheetName = name
		}
	}
}

// WithColumnWidth sets the exported column width in character units.
func WithColumnWidth(width float64) Option {
	return func(o *Options) {
		if width > 0 {
			o.columnWidth = width
		}
	}
}

// WithStyleLookup replaces the band lookup. Render and export must share the same
// lookup for their highlighting to agree; the default is Classify.
func WithStyleLookup(fn StyleLookup) Option {
	return func(o *Options) {
		if fn != nil {
			o.styleLookup = fn
		}
	}
}

// WithCellListener adds a listener that is notified for each rendered or exported cell.
func WithCellListener(l CellListener) Option {
	return func(o *Options) { o.cellListeners = append(o.cellListeners, l) }
}

// WithNotifier adds a receiver for the user-visible notices a Session produces.
func WithNotifier(n Notifier) Option {
	return func(o *Options) { o.notifiers = append(o.notifiers, n) }
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
