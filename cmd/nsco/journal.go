package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nsco/internal/journal"
)

func newJournalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "list the plaintext lengths recorded for encrypted payloads",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.needJournal = true
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			n := 0
			for key, e := range journal.All() {
				fmt.Fprintf(out, "%016x\t%d\t%s\t%s\n", key, e.Length, e.Created.Format(time.RFC3339), e.Source)
				n++
			}
			if n == 0 {
				fmt.Fprintf(out, "journal %s is empty\n", a.config.Journal.File)
			}
			return nil
		},
	}
}
