package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream clipboard changes to stdout",
		Long: `Subscribes to the running daemon and prints one line per clipboard
change: the source and the offered MIME types. Add --text to also print
text/plain contents.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.String("token", "", "shared secret for the daemon socket")
	f.Bool("text", false, "print text/plain contents of each change")
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	if !ipc.IsRunning() {
		return fmt.Errorf("no daemon running on %s — start one with \"wlclip serve\"", ipc.SocketPath())
	}
	wc, err := dialDaemon(v.GetString("token"))
	if err != nil {
		return err
	}
	defer wc.Close()

	if err := wc.WriteMsg(&message.Message{Type: message.TypeWatch}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	printText := v.GetBool("text")
	for {
		msg, err := wc.ReadMsg()
		if err != nil {
			return nil // daemon went away
		}
		if msg.Type != message.TypeClipboard {
			continue
		}
		mimes := make([]string, len(msg.Items))
		for i, it := range msg.Items {
			mimes[i] = it.MIME
		}
		fmt.Printf("%s\t%s\n", msg.Source, strings.Join(mimes, ","))
		if printText {
			if text := msg.TextPayload(); text != "" {
				fmt.Println(text)
			}
		}
	}
}
