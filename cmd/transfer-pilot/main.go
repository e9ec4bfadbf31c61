// Package main is the entry point for the transfer-pilot application.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/transfer-pilot/internal/config"
	"github.com/joe/transfer-pilot/internal/logging"
	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/internal/report"
	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui"
	"github.com/joe/transfer-pilot/internal/volume"
	pkgerrors "github.com/joe/transfer-pilot/pkg/errors"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

var errDeclined = errors.New("transfer not started")

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		fail(err, "")
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)

	err = cfg.ConfigureLogger(logger)
	if err != nil {
		fail(err, "")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.Volumes != nil:
		err = volumes(ctx, cfg)
	case cfg.Preflight != nil:
		err = preflight(ctx, cfg, logger)
	case cfg.Run != nil:
		err = runTransfer(ctx, cfg, logger)
	}

	if errors.Is(err, errDeclined) {
		fmt.Fprintln(os.Stderr, "Nothing copied.")
		stop()
		os.Exit(1)
	}

	if err != nil {
		stop()
		fail(err, destOf(cfg))
	}
}

// fail prints err with any suggestions and exits non-zero.
func fail(err error, path string) {
	enriched := pkgerrors.NewEnricher().Enrich(err, path)

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintln(os.Stderr, suggestions)
	}

	os.Exit(1)
}

func destOf(cfg *config.Config) string {
	if picks := cfg.Picks(); picks != nil {
		return picks.Dest
	}

	return ""
}

func newEngine(cfg *config.Config, picks *config.PickArgs, logger logrus.FieldLogger) (*transfer.Engine, error) {
	filter, err := picks.Filter()
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by config
	}

	engine := transfer.NewEngine(filesystem.NewRealFileSystem())
	engine.Space = cfg.SpaceProvider()
	engine.Logger = logger
	engine.Filter = filter

	return engine, nil
}

func volumes(ctx context.Context, cfg *config.Config) error {
	vols, err := volume.NewDFProbe().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list volumes: %w", err)
	}

	if cfg.Volumes.JSON {
		return report.JSON(os.Stdout, vols) //nolint:wrapcheck // report wraps
	}

	return report.Volumes(os.Stdout, vols) //nolint:wrapcheck // report wraps
}

// checkMount warns when dest is not a mount point df lists. The transfer
// still goes ahead, into whatever volume holds dest.
func checkMount(ctx context.Context, dest string, logger logrus.FieldLogger) {
	if !volume.NewDFProbe().Listed(ctx, dest) {
		logger.WithField("dest", dest).Warn("Destination is not a listed mount point")
	}
}

func preflight(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) error {
	picks := &cfg.Preflight.PickArgs

	engine, err := newEngine(cfg, picks, logger)
	if err != nil {
		return err
	}

	checkMount(ctx, picks.Dest, logger)

	rep, err := engine.Preflight(ctx, pick.Items(picks.Queue(os.Stat)), picks.Dest)
	if err != nil {
		return err //nolint:wrapcheck // engine errors carry the path
	}

	if cfg.Preflight.JSON {
		return report.JSON(os.Stdout, rep) //nolint:wrapcheck // report wraps
	}

	return report.Preflight(os.Stdout, rep) //nolint:wrapcheck // report wraps
}

func runTransfer(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) error {
	cmd := cfg.Run
	items := pick.Items(cmd.Queue(os.Stat))

	engine, err := newEngine(cfg, &cmd.PickArgs, logger)
	if err != nil {
		return err
	}

	checkMount(ctx, cmd.Dest, logger)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	if !cmd.Yes && interactive {
		err = confirm(ctx, engine, items, cmd.Dest, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	cancel := transfer.NewCancelToken()

	go func() {
		<-ctx.Done()
		cancel.Cancel()
	}()

	collector := &report.Collector{}
	req := cmd.Request(items, cancel)

	var summary *transfer.Summary

	if interactive && !cmd.NoTUI && !cmd.JSON {
		// The screen owns the terminal; failures are listed once it closes.
		engine.Logger = logging.Discard()
		summary, err = tui.Run(engine, req, collector, tea.WithAltScreen())
	} else {
		var observer transfer.EventEmitter = collector
		if !cmd.JSON {
			observer = transfer.FanOut(collector, &report.Lines{W: os.Stderr})
		}

		engine.SetEventEmitter(observer)
		summary, err = engine.Execute(req)
	}

	if err != nil {
		return err //nolint:wrapcheck // engine errors carry the path
	}

	if cmd.JSON {
		return report.JSON(os.Stdout, summary) //nolint:wrapcheck // report wraps
	}

	err = report.Summary(os.Stdout, summary)
	if err != nil {
		return err //nolint:wrapcheck // report wraps
	}

	return report.Failures(os.Stdout, collector.Rows()) //nolint:wrapcheck // report wraps
}

// confirm shows the preflight report and asks before copying anything.
func confirm(
	ctx context.Context,
	engine *transfer.Engine,
	items []pick.Item,
	dest string,
	in io.Reader,
	out io.Writer,
) error {
	rep, err := engine.Preflight(ctx, items, dest)
	if err != nil {
		return err //nolint:wrapcheck // engine errors carry the path
	}

	err = report.Preflight(out, rep)
	if err != nil {
		return err //nolint:wrapcheck // report wraps
	}

	if !rep.WillFit {
		fmt.Fprintln(out, "Warning: the destination reports less free space than the transfer needs.")
	}

	fmt.Fprint(out, "Start transfer? [y/N] ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errDeclined
	}
}
