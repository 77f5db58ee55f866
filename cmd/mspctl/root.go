package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightlink/msp/internal/logging"
	"github.com/flightlink/msp/internal/output"
	"github.com/flightlink/msp/multiwii"
	"github.com/flightlink/msp/session"
	"github.com/flightlink/msp/transport"
)

var (
	cfgFile      string
	deviceFlag   string
	baudFlag     int
	timeoutFlag  string
	outputFormat string

	cfg       cliConfig
	formatter output.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "mspctl",
	Short: "Talk MultiWii Serial Protocol to a flight controller",
	Long: `mspctl queries and commands MultiWii-compatible flight controllers
over a serial link using MSP v1. It reads telemetry (attitude, RC,
GPS, battery), inspects tuning values, triggers calibrations, and
runs a live terminal dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = defaultCLIConfig()
		if cfgFile != "" {
			loaded, err := loadCLIConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if err := applyFlagOverrides(cmd); err != nil {
			return err
		}
		formatter = output.New(cfg.Output)
		return nil
	},
}

func applyFlagOverrides(cmd *cobra.Command) error {
	if deviceFlag != "" {
		cfg.Device = deviceFlag
	}
	if cmd.Flags().Changed("baud") {
		if baudFlag <= 0 {
			return fmt.Errorf("baud must be positive, got %d", baudFlag)
		}
		cfg.Baud = baudFlag
	}
	if timeoutFlag != "" {
		d, err := parseTimeout(timeoutFlag)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	if outputFormat != "" {
		cfg.Output = outputFormat
	}
	return nil
}

// dial opens the configured serial device and returns a ready client.
func dial() (*multiwii.Client, error) {
	port, err := transport.OpenSerial(transport.SerialConfig{
		Device:      cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	client := multiwii.NewClient(port, session.Config{
		RequestTimeout:  cfg.RequestTimeout,
		DesyncThreshold: cfg.DesyncThreshold,
		Logger:          logging.Logger(),
	})
	if err := client.Open(); err != nil {
		port.Close()
		return nil, err
	}
	return client, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mspctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "serial device (default \"/dev/ttyUSB0\")")
	rootCmd.PersistentFlags().IntVarP(&baudFlag, "baud", "b", 0, "serial baud rate (default 115200)")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "", "per-request timeout, e.g. 500ms")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
}
