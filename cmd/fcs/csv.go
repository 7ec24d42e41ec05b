package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/fcs"
	"github.com/arloliu/fcs/export"
	"github.com/arloliu/fcs/format"
)

// CSVCmd exports the event table of a file. Empty flags fall back to the
// export section of the configuration.
type CSVCmd struct {
	Path        string `arg:"" help:"FCS file" type:"existingfile"`
	Output      string `name:"output" short:"o" help:"Output file, stdout when empty"`
	Separator   string `name:"separator" short:"s" help:"Column separator, a single character or 'tab'"`
	Precision   string `name:"precision" short:"p" help:"Significant digits per value, 0 for the shortest exact form"`
	Compression string `name:"compression" short:"z" help:"Compression: none, zstd, s2, lz4 or xz"`
	NoHeader    bool   `name:"no-header" help:"Do not write the parameter name row"`
}

func (c *CSVCmd) Run(a *app) error {
	contents, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	file, err := fcs.Decode(contents)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}

	names, err := file.ParameterNames()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	events, err := file.Events()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}

	writer, err := c.writer(a, names)
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = writer.WriteTable(a.stdout, events)
		return err
	}

	table, err := writer.Render(events)
	if err != nil {
		return err
	}

	output := withExtension(c.Output, writer.Compression())
	if err := os.WriteFile(output, table, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	count, _ := file.EventCount()
	a.logger.Info("exported events",
		slog.String("path", c.Path),
		slog.String("output", output),
		slog.Int("events", count),
		slog.Int("parameters", len(names)),
		slog.String("compression", writer.Compression().String()),
		slog.Int("bytes", len(table)),
	)

	return nil
}

// writer builds the CSV writer from the configuration with the command's
// flags applied on top.
func (c *CSVCmd) writer(a *app, names []string) (*export.CSVWriter, error) {
	settings := a.config.Export
	if c.Separator != "" {
		settings.Separator = c.Separator
	}
	if c.Precision != "" {
		digits, err := strconv.Atoi(c.Precision)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", export.ErrInvalidPrecision, c.Precision)
		}
		settings.Precision = digits
	}
	if c.Compression != "" {
		settings.Compression = c.Compression
	}
	if c.NoHeader {
		settings.HeaderRow = false
	}

	opts, err := settings.CSVOptions(names)
	if err != nil {
		return nil, err
	}

	return export.NewCSVWriter(opts...)
}

func withExtension(path string, compression format.CompressionType) string {
	ext := compression.Extension()
	if ext == "" || strings.HasSuffix(path, ext) {
		return path
	}

	return path + ext
}
