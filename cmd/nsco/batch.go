package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		key     string
		outDir  string
		workers int
	)

	cmd := &cobra.Command{
		Use:     "batch <encrypt|decrypt> <files...>",
		Short:   "encrypt or decrypt many files in parallel",
		Example: "nsco batch encrypt --key key.txt --out enc/ notes/*.txt",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if args[0] != "encrypt" && args[0] != "decrypt" {
				return fmt.Errorf("unknown direction %q", args[0])
			}

			j, err := a.job(ctx, direction(args[0]), key)
			if err != nil {
				return err
			}
			if workers > 0 {
				j.Workers = workers
			}
			return j.Run(ctx, args[1:], outDir)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "key `FILE` holding the base sequence")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output `DIR`")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "files processed at once (default from config)")
	cmd.MarkFlagRequired("key")

	return cmd
}
