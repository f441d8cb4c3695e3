package commands

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moasq/smenu/internal/config"
	"github.com/moasq/smenu/internal/entries"
	"github.com/moasq/smenu/internal/logging"
	"github.com/moasq/smenu/internal/selector"
	"github.com/moasq/smenu/internal/terminal"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("device") {
		cfg.Device = opts.device
	}
	if f.Changed("min-width") {
		cfg.MinWidth = opts.minWidth
	}
	if f.Changed("fg") {
		cfg.Highlight.Foreground = opts.foreground
	}
	if f.Changed("bg") {
		cfg.Highlight.Background = opts.background
	}
	if f.Changed("ellipsis") {
		cfg.Ellipsis = opts.ellipsis
	}
	if f.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid options: %w", config.ValidationErrors(errs))
	}
	return cfg, nil
}

func runSelect(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Close()

	renderer, err := cfg.Renderer()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		terminal.Warning("reading entries from the terminal, finish with Ctrl-D")
	}
	list, err := entries.Read(in)
	if err != nil {
		return err
	}
	log.Debug("entries loaded", "count", list.Len())

	// Signals are caught from here on so an interrupt can never leave the
	// terminal in raw mode.
	var session atomic.Pointer[terminal.Session]
	bridge := terminal.NewSignalBridge()
	bridge.Start(func() {
		if s := session.Load(); s != nil {
			s.Wake()
		}
	})
	defer bridge.Stop()

	sess, err := terminal.Open(cfg.Device)
	if err != nil {
		return err
	}
	defer sess.Close()
	session.Store(sess)

	ctrl := selector.NewController(list, sess, bridge, selector.ControllerOpts{
		Renderer: renderer,
		Logger:   log,
	})
	res, runErr := ctrl.Run(cmd.Context())

	session.Store(nil)
	if err := sess.Close(); err != nil {
		log.Warn("failed to restore terminal", "error", err)
	}
	if runErr != nil {
		return runErr
	}

	if res.State == selector.Confirmed {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Entry); err != nil {
			return fmt.Errorf("failed to write selection: %w", err)
		}
	}
	return nil
}
