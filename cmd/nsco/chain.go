package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nsco/internal/batch"
	"nsco/internal/chain"
	"nsco/internal/ctxlog"
	"nsco/internal/journal"
)

func readKey(ctx context.Context, file string) (chain.Sequence, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("key: open %q: %w", file, err)
	}
	defer ctxlog.Close(ctx, "key file", f)

	seq, err := chain.ReadSequence(f)
	if err != nil {
		return nil, fmt.Errorf("key %q: %w", file, err)
	}
	if seq.Empty() {
		ctxlog.Get(ctx).Warn("key holds no bases, output will equal input", "key", file)
	}
	return seq, nil
}

func (a *app) job(ctx context.Context, d batch.Direction, key string) (batch.Job, error) {
	seq, err := readKey(ctx, key)
	if err != nil {
		return batch.Job{}, err
	}

	// Fail before any file is touched.
	if err := seq.Check(a.charset); err != nil {
		return batch.Job{}, fmt.Errorf("key %q: %w", key, err)
	}

	return batch.Job{
		Direction: d,
		Charset:   a.charset,
		Sequence:  seq,
		MaxInput:  a.maxInput,
		Workers:   a.config.Workers,
		Journal:   journal.Opened(),
	}, nil
}

func direction(name string) batch.Direction {
	if name == "decrypt" {
		return batch.Decrypt
	}
	return batch.Encrypt
}

func newChainCommand(a *app, name string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <input> <output> <keyfile>",
		Short:   name + " a file with the base sequence read from keyfile",
		Example: "nsco " + name + " message.txt out.txt key.txt\nnsco " + name + " - - key.txt < message.txt",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			j, err := a.job(ctx, direction(name), args[2])
			if err != nil {
				return err
			}
			return j.File(ctx, args[0], args[1])
		},
	}
}
