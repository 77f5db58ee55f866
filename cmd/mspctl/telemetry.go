package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type channelRow struct {
	Channel int
	Value   uint16
}

type pidRow struct {
	Controller string
	P          uint8
	I          uint8
	D          uint8
}

type boxRow struct {
	Box  string
	Mask uint16
}

var identCmd = &cobra.Command{
	Use:   "ident",
	Short: "Show firmware identification",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ident, err := client.Ident(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(ident))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cycle time, sensors, and active modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		status, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(status))
		return nil
	},
}

var attitudeCmd = &cobra.Command{
	Use:   "attitude",
	Short: "Show roll, pitch, and heading",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		att, err := client.Attitude(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(att))
		return nil
	},
}

var analogCmd = &cobra.Command{
	Use:   "analog",
	Short: "Show battery voltage, RSSI, and current draw",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		analog, err := client.Analog(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(analog))
		return nil
	},
}

var gpsCmd = &cobra.Command{
	Use:   "gps",
	Short: "Show GPS fix, position, and course",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		gps, err := client.RawGPS(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(gps))
		return nil
	},
}

var rcCmd = &cobra.Command{
	Use:   "rc",
	Short: "Show RC channel values",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		channels, err := client.RawRC(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]channelRow, len(channels))
		for i, v := range channels {
			rows[i] = channelRow{Channel: i + 1, Value: v}
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
		return nil
	},
}

var motorCmd = &cobra.Command{
	Use:   "motor",
	Short: "Show motor output values",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		motors, err := client.Motor(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]channelRow, len(motors))
		for i, v := range motors {
			rows[i] = channelRow{Channel: i + 1, Value: v}
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
		return nil
	},
}

var pidCmd = &cobra.Command{
	Use:   "pid",
	Short: "Show PID controller gains",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		pids, err := client.PID(cmd.Context())
		if err != nil {
			return err
		}
		names := pidControllerNames(cmd.Context(), client)
		rows := make([]pidRow, len(pids))
		for i, p := range pids {
			rows[i] = pidRow{Controller: names[i], P: p.P, I: p.I, D: p.D}
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
		return nil
	},
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Show flight-mode boxes and their aux activation masks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.BoxNames(cmd.Context())
		if err != nil {
			return err
		}
		masks, err := client.Box(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]boxRow, 0, len(masks))
		for i, mask := range masks {
			name := fmt.Sprintf("box %d", i)
			if i < len(names) {
				name = names[i]
			}
			rows = append(rows, boxRow{Box: name, Mask: mask})
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
		return nil
	},
}

var miscCmd = &cobra.Command{
	Use:   "misc",
	Short: "Show throttle range, failsafe, and battery settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		misc, err := client.Misc(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(misc))
		return nil
	},
}

// pidControllerNames asks the board for its PID name table and falls
// back to positional labels if the command is unsupported.
func pidControllerNames(ctx context.Context, client pidNamer) []string {
	names, err := client.PIDNames(ctx)
	out := make([]string, 10)
	for i := range out {
		if err == nil && i < len(names) {
			out[i] = names[i]
		} else {
			out[i] = fmt.Sprintf("pid %d", i)
		}
	}
	return out
}

type pidNamer interface {
	PIDNames(ctx context.Context) ([]string, error)
}

func init() {
	rootCmd.AddCommand(identCmd, statusCmd, attitudeCmd, analogCmd, gpsCmd,
		rcCmd, motorCmd, pidCmd, boxCmd, miscCmd)
}
