package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/fcs"
	"github.com/arloliu/fcs/internal/hash"
)

// cborEncMode writes Core Deterministic Encoding: sorted map keys and the
// smallest integer forms, so equal reports encode to equal bytes.
var cborEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("fcs: CBOR encoder initialization failed: " + err.Error())
	}

	return em
}()

// MetaCmd prints the metadata of a file.
type MetaCmd struct {
	Path     string `arg:"" help:"FCS file" type:"existingfile"`
	Format   string `name:"format" short:"f" help:"Output format" enum:"yaml,json,cbor,text" default:"yaml"`
	TextOnly bool   `name:"text-only" help:"Skip the data segment (no event count or data fingerprint)"`
}

type metaReport struct {
	Path            string            `json:"path" yaml:"path"`
	Digest          string            `json:"digest" yaml:"digest"`
	Version         string            `json:"version" yaml:"version"`
	TextSegment     string            `json:"text_segment" yaml:"text_segment"`
	DataSegment     string            `json:"data_segment" yaml:"data_segment"`
	AnalysisSegment string            `json:"analysis_segment" yaml:"analysis_segment"`
	Delimiter       string            `json:"delimiter" yaml:"delimiter"`
	TextFingerprint string            `json:"text_fingerprint" yaml:"text_fingerprint"`
	DataFingerprint string            `json:"data_fingerprint,omitempty" yaml:"data_fingerprint,omitempty"`
	Parameters      []string          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Events          *int              `json:"events,omitempty" yaml:"events,omitempty"`
	Keywords        map[string]string `json:"keywords" yaml:"keywords"`
}

func (c *MetaCmd) Run(a *app) error {
	contents, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	report, err := c.report(contents)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	a.logger.Debug("decoded metadata", slog.String("path", c.Path), slog.Int("keywords", len(report.Keywords)))

	return writeReport(a.stdout, c.Format, report)
}

func (c *MetaCmd) report(contents []byte) (*metaReport, error) {
	meta, err := fcs.DecodeMetadata(contents)
	if err != nil {
		return nil, err
	}

	report := &metaReport{
		Path:            c.Path,
		Digest:          hash.Digest(contents),
		Version:         meta.Header.Version,
		TextSegment:     meta.Header.Text.String(),
		DataSegment:     meta.Header.Data.String(),
		AnalysisSegment: meta.Header.Analysis.String(),
		Delimiter:       fmt.Sprintf("%q", meta.Text.Delimiter),
		TextFingerprint: fingerprint(meta.TextFingerprint),
		Keywords:        meta.Text.Pairs,
	}
	if names, err := meta.ParameterNames(); err == nil {
		report.Parameters = names
	}

	if c.TextOnly {
		return report, nil
	}

	file, err := fcs.Decode(contents)
	if err != nil {
		return nil, err
	}
	report.DataFingerprint = fingerprint(file.DataFingerprint)
	if n, err := file.EventCount(); err == nil {
		report.Events = &n
	}

	return report, nil
}

func writeReport(w io.Writer, format string, report *metaReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case "cbor":
		data, err := cborEncMode.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err
	case "text":
		return writeTextReport(w, report)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}

		return enc.Close()
	}
}

func writeTextReport(w io.Writer, r *metaReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "path:             %s\n", r.Path)
	fmt.Fprintf(&sb, "digest:           %s\n", r.Digest)
	fmt.Fprintf(&sb, "version:          %s\n", r.Version)
	fmt.Fprintf(&sb, "text segment:     %s\n", r.TextSegment)
	fmt.Fprintf(&sb, "data segment:     %s\n", r.DataSegment)
	fmt.Fprintf(&sb, "analysis segment: %s\n", r.AnalysisSegment)
	fmt.Fprintf(&sb, "delimiter:        %s\n", r.Delimiter)
	fmt.Fprintf(&sb, "text fingerprint: %s\n", r.TextFingerprint)
	if r.DataFingerprint != "" {
		fmt.Fprintf(&sb, "data fingerprint: %s\n", r.DataFingerprint)
	}
	if len(r.Parameters) > 0 {
		fmt.Fprintf(&sb, "parameters:       %s\n", strings.Join(r.Parameters, ", "))
	}
	if r.Events != nil {
		fmt.Fprintf(&sb, "events:           %d\n", *r.Events)
	}

	for _, k := range slices.Sorted(maps.Keys(r.Keywords)) {
		fmt.Fprintf(&sb, "%s = %s\n", k, r.Keywords[k])
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func fingerprint(v uint64) string {
	return fmt.Sprintf("%016x", v)
}
