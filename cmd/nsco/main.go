package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nsco/internal/charset"
	"nsco/internal/config"
	"nsco/internal/ctxlog"
	"nsco/internal/journal"
)

var Version = "0.1.0"

type app struct {
	configFile string
	config     config.Config
	charset    *charset.Charset
	maxInput   int64
	// needJournal opens the journal even when it is disabled in config.
	needJournal bool
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := config.Load(ctx, a.configFile)
	if err != nil {
		return err
	}
	a.config = c

	ctx, err = ctxlog.Setup(ctx, "nsco", c.Log.Dir, c.Log.Level)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)

	a.charset, err = c.CharsetValue()
	if err != nil {
		return err
	}
	a.maxInput, err = c.MaxInputBytes()
	if err != nil {
		return err
	}

	if c.Journal.Enabled || a.needJournal {
		ctxlog.Get(ctx).Debug("opening journal", "file", c.Journal.File)
		err = journal.Open(c.Journal.Config)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if journal.Opened() {
		if err := ctxlog.Close(cmd.Context(), "journal", journal.Closer()); err != nil {
			return err
		}
	}
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:                "nsco",
		Short:              "nsco converts numbers between bases and scrambles files with chained base conversions",
		Version:            Version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "configuration `FILE` (default "+config.DefaultFile+" if present)")

	root.AddCommand(
		newChainCommand(a, "encrypt"),
		newChainCommand(a, "decrypt"),
		newConvertCommand(a),
		newBatchCommand(a),
		newJournalCommand(a),
	)
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)

	logger := ctxlog.Get(ctx)
	if journal.Opened() {
		ctxlog.Close(ctx, "journal", journal.Closer())
	}
	if err != nil {
		logger.Error("stopped unexpectedly", "error", err)
		ctxlog.Shutdown()
		cancel()
		os.Exit(1)
	}
	ctxlog.Shutdown()
}
