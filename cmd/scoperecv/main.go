// Command scoperecv reads captures streamed by a digital scope over a serial
// port and prints each one as a table.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scoperecv",
		Short: "Receive digital scope captures over a serial port",
		Long: `Read LOG and DATA lines sent by a digital scope and print each capture
as a table of sample times and pin states. Stop with Ctrl+C.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	opts = struct {
		Port    string
		Baud    int
		Verbose bool
	}{}
)

func init() {
	rootCmd.Flags().StringVarP(&opts.Port, "port", "p", "", "serial port the board is connected to")
	rootCmd.Flags().IntVarP(&opts.Baud, "baudrate", "b", 9600, "baud rate of the serial link")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log unparsable lines")
	rootCmd.MarkFlagRequired("port")
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	port, err := serial.OpenPort(&serial.Config{Name: opts.Port, Baud: opts.Baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", opts.Port, err)
	}
	logger.Info("connection established", zap.String("port", opts.Port), zap.Int("baud", opts.Baud))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Closing the port unblocks the pending read.
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	err = receive(ctx, port, cmd.OutOrStdout(), logger)
	if errors.Is(err, context.Canceled) {
		logger.Info("connection closed")
		return nil
	}
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
