package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/wlclip/internal/ipc"
	"go.klb.dev/wlclip/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show daemon state",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	cmd.Flags().String("token", "", "shared secret for the daemon socket")
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	if !ipc.IsRunning() {
		fmt.Printf("daemon:  not running (socket %s)\n", ipc.SocketPath())
		return nil
	}

	wc, err := dialDaemon(v.GetString("token"))
	if err != nil {
		return err
	}
	defer wc.Close()

	resp, err := roundTrip(wc, &message.Message{Type: message.TypeStatus}, message.TypeStatusResponse)
	if err != nil {
		return err
	}
	st := resp.Status
	if st == nil {
		return fmt.Errorf("empty status response")
	}

	fmt.Printf("daemon:   running (socket %s)\n", ipc.SocketPath())
	fmt.Printf("backend:  %s\n", st.Backend)
	fmt.Printf("watchers: %d\n", st.Watchers)
	if st.Source != "" {
		fmt.Printf("owner:    %s\n", st.Source)
	}
	if len(st.Targets) > 0 {
		fmt.Printf("targets:  %s\n", strings.Join(st.Targets, ", "))
	}
	return nil
}
