package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/clip"
	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
)

func newTargetsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "targets",
		Short:   "List the MIME types the current clipboard offers",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runTargets(v) },
	}

	cmd.Flags().String("token", "", "shared secret for the daemon socket")
	addConfigFlag(cmd)

	return cmd
}

func runTargets(v *viper.Viper) error {
	targets, err := fetchTargets(v)
	if err != nil {
		return err
	}
	sort.Strings(targets)
	for _, t := range targets {
		fmt.Println(t)
	}
	return nil
}

func fetchTargets(v *viper.Viper) ([]string, error) {
	if ipc.IsRunning() {
		wc, err := dialDaemon(v.GetString("token"))
		if err == nil {
			defer wc.Close()
			resp, err := roundTrip(wc, &message.Message{Type: message.TypeTargets}, message.TypeTargetsResponse)
			if err != nil {
				return nil, err
			}
			return resp.Targets, nil
		}
	}

	backend := clip.New()
	defer backend.Close()
	if tg, ok := backend.(clip.Targeter); ok {
		return tg.Targets(), nil
	}
	items, err := backend.Read()
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(items))
	for _, it := range items {
		targets = append(targets, it.MIME)
	}
	return targets, nil
}
