// Package batch runs the chain pipeline over files, one at a time or many in
// parallel.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docker/go-units"
	"golang.org/x/sync/errgroup"

	"nsco/internal/chain"
	"nsco/internal/charset"
	"nsco/internal/ctxlog"
	"nsco/internal/journal"
	"nsco/internal/payload"
	"nsco/internal/rec"
)

type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Ext is appended to encrypted file names by Run and stripped on decryption.
const Ext = ".nsco"

type Job struct {
	Direction Direction
	Charset   *charset.Charset
	Sequence  chain.Sequence
	// MaxInput caps input file size in bytes; 0 disables the cap.
	MaxInput int64
	// Workers bounds the files processed at once by Run.
	Workers int
	// Journal records plaintext lengths on encryption and restores them on
	// decryption. The journal must be open.
	Journal bool
}

// Transform runs the pipeline on one payload.
func (j Job) Transform(p string) (string, error) {
	switch j.Direction {
	case Encrypt:
		return chain.Encrypt(j.Charset, p, j.Sequence)
	case Decrypt:
		return chain.Decrypt(j.Charset, p, j.Sequence)
	default:
		return "", fmt.Errorf("unknown direction %d", j.Direction)
	}
}

// File reads in, transforms it and writes the result to out.
func (j Job) File(ctx context.Context, in, out string) (err error) {
	defer rec.Wrap(&err, "%s %q: %w", j.Direction, in)

	logger := ctxlog.Get(ctx).With("input", in, "output", out)

	p, err := payload.Read(in, j.MaxInput, j.Charset)
	if err != nil {
		return err
	}

	if j.Direction == Encrypt && !j.Journal {
		// A payload of zeros keeps one.
		lost := j.Charset.LeadingZeros(p)
		if lost == utf8.RuneCountInString(p) {
			lost--
		}
		if lost > 0 {
			logger.Warn("leading zero symbols will not survive decryption", "count", lost)
		}
	}

	res, err := j.Transform(p)
	if err != nil {
		return err
	}

	if j.Journal {
		ciphertext := res
		if j.Direction == Decrypt {
			ciphertext = p
		}
		res, err = j.journal(logger, journal.Key(j.Sequence.Fingerprint(), ciphertext), in, p, res)
		if err != nil {
			return err
		}
	}

	err = payload.Write(out, res)
	if err != nil {
		return err
	}

	logger.Info("file done",
		"direction", j.Direction.String(),
		"steps", len(j.Sequence),
		"symbols", utf8.RuneCountInString(res),
		"size", units.HumanSize(float64(len(res))),
	)
	return nil
}

func (j Job) journal(logger *slog.Logger, key uint64, in, p, res string) (string, error) {
	switch j.Direction {
	case Encrypt:
		err := journal.Record(key, journal.Entry{
			Length:  utf8.RuneCountInString(p),
			Source:  in,
			Created: time.Now().UTC(),
		})
		if err != nil {
			return "", err
		}
		return res, nil

	default:
		e, found, err := journal.Lookup(key)
		if err != nil {
			return "", err
		}
		if !found {
			return res, nil
		}
		if e.Ambiguous {
			logger.Warn("journal entry is ambiguous, leading zeros not restored", "source", e.Source)
			return res, nil
		}
		return j.Charset.Pad(res, e.Length), nil
	}
}

// OutName is the file name Run writes the result of in to.
func (j Job) OutName(in string) string {
	base := filepath.Base(in)
	if j.Direction == Encrypt {
		return base + Ext
	}
	if s, ok := strings.CutSuffix(base, Ext); ok && s != "" {
		return s
	}
	return base + ".out"
}

// Run processes files in parallel, writing results into outDir. The first
// failure cancels the files not yet started.
func (j Job) Run(ctx context.Context, files []string, outDir string) error {
	logger := ctxlog.Get(ctx)

	seen := make(map[string]string, len(files))
	for _, in := range files {
		out := j.OutName(in)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%q and %q both write %q", prev, in, out)
		}
		seen[out] = in
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(j.Workers, 1))

	for _, in := range files {
		out := filepath.Join(outDir, j.OutName(in))

		g.Go(rec.Func(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return j.File(ctx, in, out)
		}))
	}

	err := g.Wait()
	if err != nil {
		return err
	}

	logger.Info("batch done", "direction", j.Direction.String(), "files", len(files))
	return nil
}
