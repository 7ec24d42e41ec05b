package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/arloliu/fcs"
	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/internal/hash"
)

// errDataMismatch is returned when a rewritten file does not decode to the
// same events as its source.
var errDataMismatch = errors.New("rewritten data segment differs from source")

// RewriteCmd decodes a file and encodes it again: header, text directly after
// the header, data directly after the text, offset keywords updated.
type RewriteCmd struct {
	Path      string `arg:"" help:"Source FCS file" type:"existingfile"`
	Output    string `arg:"" help:"Destination file"`
	Force     bool   `name:"force" short:"f" help:"Overwrite the destination if it exists"`
	ByteOrder string `name:"byte-order" enum:"keep,little,big" default:"keep" help:"Byte order of the rewritten data segment (${enum})"`
}

// engine returns the requested data byte order, nil for keep.
func (c *RewriteCmd) engine() endian.EndianEngine {
	switch c.ByteOrder {
	case "little":
		return endian.GetLittleEndianEngine()
	case "big":
		return endian.GetBigEndianEngine()
	default:
		return nil
	}
}

func (c *RewriteCmd) Run(a *app) error {
	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", c.Output)
		}
	}

	contents, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	source, err := fcs.Decode(contents)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}

	if engine := c.engine(); engine != nil {
		keyword, ok := endian.ByteOrdKeyword(engine)
		if !ok {
			return fmt.Errorf("unsupported byte order %q", c.ByteOrder)
		}
		source.Text.Set("$BYTEORD", keyword)
	}

	encoded, err := source.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.Path, err)
	}

	// hashes differ when the byte order changed or the source carried
	// trailing partial values
	rewritten, err := fcs.Decode(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode rewritten file: %w", err)
	}
	if rewritten.DataFingerprint != source.DataFingerprint && !slices.Equal(rewritten.Data.Events, source.Data.Events) {
		return fmt.Errorf("%w: %016x != %016x", errDataMismatch, rewritten.DataFingerprint, source.DataFingerprint)
	}

	if err := os.WriteFile(c.Output, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}

	a.logger.Info("rewrote file",
		slog.String("path", c.Path),
		slog.String("output", c.Output),
		slog.String("text_segment", rewritten.Header.Text.String()),
		slog.String("data_segment", rewritten.Header.Data.String()),
		slog.String("data_fingerprint", fingerprint(rewritten.DataFingerprint)),
		slog.String("digest", hash.Digest(encoded)),
		slog.Int("bytes", len(encoded)),
	)

	return nil
}
