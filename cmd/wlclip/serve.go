package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/daemon"
	"go.klb.dev/wlclip/internal/hub"
	"go.klb.dev/wlclip/internal/ipc"
)

func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clipboard daemon",
		Long: `Starts the wlclip daemon: it owns the session clipboard and serves it on
a local Unix socket for the other wlclip commands, scripts, and containers
that mount the socket.

Set --token when the socket is reachable beyond this user; connections are
then authenticated and encrypted with a key derived from the token.

Config file search order:
  /etc/wlclip/wlclip.toml
  $HOME/.config/wlclip/wlclip.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → WLCLIP_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.String("token", "", "shared secret for socket auth + encryption (empty = local-only trust)")
	f.String("source", defaultSource(), "source identifier for clipboard updates from this host")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	setupLogging(v)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := clip.New()
	defer backend.Close()

	d, err := daemon.New(hub.New(), backend, v.GetString("source"), v.GetString("token"))
	if err != nil {
		return err
	}

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	return d.Run(ln)
}
