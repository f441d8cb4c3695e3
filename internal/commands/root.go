package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// options holds flag values. Zero values mean "use the config file".
type options struct {
	configPath string
	device     string
	minWidth   int
	foreground string
	background string
	ellipsis   string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "smenu",
		Short: "Pick one line of input on a single terminal line",
		Long: `smenu reads lines from standard input, shows them side by side on one
terminal line and prints the one you pick to standard output.

Keys: Left/Up or Ctrl-P move back, Right/Down or Ctrl-N move forward,
Enter confirms, Ctrl-D or Ctrl-C cancels.`,
		Example:       "  git branch --format='%(refname:short)' | smenu | xargs git switch",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/smenu/config.yaml)")
	f.StringVar(&opts.device, "device", "", "terminal device used for keys and drawing (default /dev/tty)")
	f.IntVar(&opts.minWidth, "min-width", 0, "do not draw when the terminal is narrower than this")
	f.StringVar(&opts.foreground, "fg", "", "highlight foreground color")
	f.StringVar(&opts.background, "bg", "", "highlight background color")
	f.StringVar(&opts.ellipsis, "ellipsis", "", "marker for truncated entries")
	f.StringVar(&opts.logFile, "log-file", "", "write a JSON debug log to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "debug log level (debug, info, warn, error)")
	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
