package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flightlink/msp/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live telemetry dashboard",
	Long: `Open an interactive dashboard that polls the flight controller twice
a second and shows attitude, RC channels, and GPS state.

Key bindings:
  Tab / Shift+Tab  Switch tabs
  1 / 2 / 3        Jump to Attitude / Radio / GPS
  q / Ctrl+C       Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		poll := func(ctx context.Context) (tui.Snapshot, error) {
			att, err := client.Attitude(ctx)
			if err != nil {
				return tui.Snapshot{}, err
			}
			analog, err := client.Analog(ctx)
			if err != nil {
				return tui.Snapshot{}, err
			}
			channels, err := client.RawRC(ctx)
			if err != nil {
				return tui.Snapshot{}, err
			}
			snap := tui.Snapshot{Attitude: att, Analog: analog, Channels: channels}
			// GPS is optional hardware; a board without it still serves
			// the rest of the dashboard.
			if gps, err := client.RawGPS(ctx); err == nil {
				snap.GPS = gps
			}
			return snap, nil
		}

		p := tea.NewProgram(tui.New(poll, cfg.Device), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
