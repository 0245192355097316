package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy stdin to the clipboard (like pbcopy)",
		Long: `Reads stdin and places it on the clipboard.

If a wlclip daemon is running, the contents go through its IPC socket so the
whole session (and anything sharing the socket) sees them. Otherwise the
system clipboard is written directly.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCopy(v) },
	}

	f := cmd.Flags()
	f.String("token", "", "shared secret for the daemon socket")
	f.String("mime", "text/plain", "MIME type of the data being copied")
	f.String("source", defaultSource(), "source identifier")
	addConfigFlag(cmd)

	return cmd
}

func runCopy(v *viper.Viper) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	mime := v.GetString("mime")
	var item message.Item
	if mime == "text/plain" {
		item = message.NewTextItem(string(data))
	} else {
		item = message.NewBinaryItem(mime, data)
	}
	items := []message.Item{item}

	// Prefer the daemon so every subscriber sees the update.
	if ipc.IsRunning() {
		wc, err := dialDaemon(v.GetString("token"))
		if err == nil {
			defer wc.Close()
			err := wc.WriteMsg(&message.Message{
				Type:   message.TypeClipboard,
				Source: v.GetString("source"),
				Items:  items,
			})
			if err == nil {
				return nil
			}
			slog.Warn("ipc copy failed, falling back", "err", err)
		}
	}

	backend := clip.New()
	defer backend.Close()
	return backend.Write(items)
}
