// Package main provides the CLI host for xlpanel: serve a panel as an HTML
// table with refresh/export triggers, or export and describe it directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/javajack/xlpanel"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	panel   string
	filters []string
	verbose bool

	addr  string
	title string

	outputPath string
	sheetName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlpanel",
		Short: "Render and export a panel's summary table with value-based highlighting",
		Long: `xlpanel reads the summary rows of one panel (a sheet of an xlsx workbook),
highlights values above 500 and above 1000, and either serves them as an HTML
table or exports them to a formatted xlsx file.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&panel, "panel", "p", "Sheet1", "Sheet holding the panel's summary data")
	rootCmd.PersistentFlags().StringArrayVarP(&filters, "filter", "f", nil, "Row filter expression, e.g. 'Sales > 500' (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve [workbook.xlsx]",
		Short: "Serve the panel as an HTML table with Refresh and Export buttons",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&title, "title", "Panel Summary", "Page title")

	exportCmd := &cobra.Command{
		Use:   "export [workbook.xlsx]",
		Short: "Export the panel to a formatted xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", xlpanel.DefaultFileName, "Output file path")
	exportCmd.Flags().StringVar(&sheetName, "sheet", xlpanel.DefaultSheetName, "Name of the exported sheet")

	describeCmd := &cobra.Command{
		Use:   "describe [workbook.xlsx]",
		Short: "Print columns, band counts and validation issues of the panel",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribe,
	}

	rootCmd.AddCommand(serveCmd, exportCmd, describeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newSource(path string) (*xlpanel.WorkbookSource, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	fs := make([]xlpanel.Filter, len(filters))
	for i, expr := range filters {
		fs[i] = xlpanel.Filter{Expression: expr}
	}
	return xlpanel.NewWorkbookSource(path, panel, fs...), nil
}

// consoleNotifier prints notices in color.
var consoleNotifier = xlpanel.NotifierFunc(func(n xlpanel.Notice) {
	if n.Level == xlpanel.NoticeError {
		color.Red("%s failed: %s", n.Action, n.Message)
		return
	}
	color.Green("%s: %s", n.Action, n.Message)
})

func runServe(cmd *cobra.Command, args []string) error {
	src, err := newSource(args[0])
	if err != nil {
		return err
	}
	logger := newLogger()
	board := &xlpanel.NoticeBoard{}
	session := xlpanel.NewSession(src,
		xlpanel.WithLogger(logger),
		xlpanel.WithNotifier(board),
		xlpanel.WithNotifier(consoleNotifier),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed initial load is shown on the page; the server still starts.
	_ = session.Load(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           xlpanel.NewHandler(session, board, title),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", addr, "panel", panel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runExport(cmd *cobra.Command, args []string) error {
	src, err := newSource(args[0])
	if err != nil {
		return err
	}
	session := xlpanel.NewSession(src,
		xlpanel.WithLogger(newLogger()),
		xlpanel.WithNotifier(consoleNotifier),
		xlpanel.WithSheetName(sheetName),
	)
	data, err := session.ExportBytes(cmd.Context())
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	color.Green("wrote %s", outputPath)
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	src, err := newSource(args[0])
	if err != nil {
		return err
	}
	rs, err := src.SummaryData(cmd.Context())
	if err != nil {
		return fmt.Errorf("read panel: %w", err)
	}
	fmt.Print(xlpanel.Describe(rs))
	return nil
}
