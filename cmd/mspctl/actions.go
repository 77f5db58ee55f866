package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate {acc|mag}",
	Short: "Trigger accelerometer or magnetometer calibration",
	Long: `Trigger a sensor calibration. Accelerometer calibration needs the
craft level and still; magnetometer calibration expects the craft to
be rotated through all axes while the firmware samples.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"acc", "mag"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		switch args[0] {
		case "acc":
			if err := client.AccCalibration(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "accelerometer calibration started")
		case "mag":
			if err := client.MagCalibration(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "magnetometer calibration started")
		default:
			return fmt.Errorf("unknown sensor %q, want acc or mag", args[0])
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore firmware default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.ResetConf(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "configuration reset to defaults")
		return nil
	},
}

var eepromCmd = &cobra.Command{
	Use:   "eeprom",
	Short: "Persist the current configuration to EEPROM",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.WriteEEPROM(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "configuration written to EEPROM")
		return nil
	},
}

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Put the receiver into bind mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Bind(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "bind mode requested")
		return nil
	},
}

var selectSettingCmd = &cobra.Command{
	Use:   "setting <0|1|2>",
	Short: "Switch the active configuration slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var slot uint8
		if _, err := fmt.Sscanf(args[0], "%d", &slot); err != nil {
			return fmt.Errorf("parse setting slot %q: %w", args[0], err)
		}

		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.SelectSetting(cmd.Context(), slot); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "setting slot %d selected\n", slot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd, resetCmd, eepromCmd, bindCmd, selectSettingCmd)
}
