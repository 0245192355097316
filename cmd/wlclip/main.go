// wlclip: Wayland-native clipboard daemon and CLI tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/wlclip/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "wlclip",
		Short: "Wayland clipboard daemon and tools",
		Long: `wlclip owns the Wayland selection for a session and exposes it over a
local Unix socket, so CLI tools, scripts, and containers with the socket
mounted all see one clipboard.

Run "wlclip serve" once per session. Use "wlclip copy/paste/targets" like
pbcopy/pbpaste; they talk to the daemon when it is running and fall back to
the system clipboard otherwise.

Config file search order (first found wins):
  /etc/wlclip/wlclip.toml
  $HOME/.config/wlclip/wlclip.toml
  path supplied via --config

All flags can be set via WLCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newCopyCmd(),
		newPasteCmd(),
		newTargetsCmd(),
		newStatusCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("wlclip %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
