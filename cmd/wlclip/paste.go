package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard to stdout (like pbpaste)",
		Long: `Retrieves the current clipboard contents and writes them to stdout.

If the clipboard contains only types not matching --mime, nothing is printed
(exit 0). To retrieve an image:

  wlclip paste --mime image/png > screenshot.png`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runPaste(v) },
	}

	f := cmd.Flags()
	f.String("token", "", "shared secret for the daemon socket")
	f.String("mime", "text/plain", "preferred MIME type to output")
	addConfigFlag(cmd)

	return cmd
}

func runPaste(v *viper.Viper) error {
	mime := v.GetString("mime")

	items, err := fetchItems(v, mime)
	if err != nil {
		return err
	}

	for _, it := range items {
		if it.MIME != mime {
			continue
		}
		data, err := it.Decode()
		if err != nil {
			return fmt.Errorf("decode item: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	// Requested type not present — exit 0, print nothing (pbpaste behaviour).
	return nil
}

func fetchItems(v *viper.Viper, mime string) ([]message.Item, error) {
	if ipc.IsRunning() {
		wc, err := dialDaemon(v.GetString("token"))
		if err == nil {
			defer wc.Close()
			resp, err := roundTrip(wc, &message.Message{
				Type:   message.TypePaste,
				Accept: []string{mime},
			}, message.TypePasteResponse)
			if err != nil {
				return nil, err
			}
			return resp.Items, nil
		}
	}

	backend := clip.New()
	defer backend.Close()
	return backend.Read()
}
