// Package fcs decodes and re-encodes Flow Cytometry Standard (FCS) files held
// in memory.
//
// An FCS file has three byte-addressed segments: a fixed 58-byte header with
// the offsets of the other segments, a delimited key/value text segment, and a
// binary data segment whose layout the text segment declares. The segment
// codecs live in the section package; this package slices a whole file by the
// header offsets, runs the codecs, and groups the decoded values into events.
//
// # Basic Usage
//
//	contents, _ := os.ReadFile("sample.fcs")
//
//	file, err := fcs.Decode(contents)
//	if err != nil {
//	    return err
//	}
//
//	events, err := file.Events()
//	if err != nil {
//	    return err
//	}
//	for event := range events {
//	    fmt.Println(event) // one value per parameter
//	}
//
// Only the header and text are needed for a metadata dump:
//
//	meta, err := fcs.DecodeMetadata(contents)
//	fmt.Println(meta.Header.Version, meta.Text.Keys())
//
// # Limitations
//
// Only the first dataset of a file is read, the data segment must be list mode
// 32-bit floats, and offsets that overflow the header fields are not looked
// up in the text segment: such a data segment decodes as empty.
package fcs

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/hash"
	"github.com/arloliu/fcs/section"
)

// DefaultVersion is written by Encode when the header has no version.
const DefaultVersion = "FCS3.0"

// maxLayoutPasses bounds the offset keyword fix-up loop in Encode.
const maxLayoutPasses = 8

// Metadata is the decoded header and text segment of a file.
type Metadata struct {
	Header section.Header
	Text   section.Text
	// TextFingerprint is the xxHash64 of the raw text segment, 0 when disabled.
	TextFingerprint uint64
}

// File is a fully decoded FCS file.
type File struct {
	Metadata
	Data section.Data
	// DataFingerprint is the xxHash64 of the raw data segment, 0 when disabled.
	DataFingerprint uint64
}

// DecodeMetadata decodes the header and text segment of contents.
//
// Returns:
//   - *Metadata: Decoded header and text, sharing no memory with contents
//   - error: Header, segment range or text errors, wrapped with context
func DecodeMetadata(contents []byte, opts ...DecodeOption) (*Metadata, error) {
	cfg, err := newDecodeConfig(opts)
	if err != nil {
		return nil, err
	}

	return decodeMetadata(contents, cfg)
}

func decodeMetadata(contents []byte, cfg *decodeConfig) (*Metadata, error) {
	header, err := section.ParseHeader(contents)
	if err != nil {
		return nil, fmt.Errorf("could not parse header: %w", err)
	}

	raw, err := header.Text.Slice(contents)
	if err != nil {
		return nil, fmt.Errorf("could not locate text segment: %w", err)
	}

	text, err := section.ParseText(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse text segment: %w", err)
	}

	meta := &Metadata{Header: header, Text: text}
	if cfg.fingerprints {
		meta.TextFingerprint = hash.Fingerprint(raw)
	}

	return meta, nil
}

// Decode decodes the header, text and data segments of contents.
//
// Returns:
//   - *File: Decoded file, sharing no memory with contents
//   - error: Header, segment range, text or data errors, wrapped with context
func Decode(contents []byte, opts ...DecodeOption) (*File, error) {
	cfg, err := newDecodeConfig(opts)
	if err != nil {
		return nil, err
	}

	meta, err := decodeMetadata(contents, cfg)
	if err != nil {
		return nil, err
	}

	raw, err := meta.Header.Data.Slice(contents)
	if err != nil {
		return nil, fmt.Errorf("could not locate data segment: %w", err)
	}

	data, err := section.ParseData(meta.Text, raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse data segment: %w", err)
	}

	file := &File{Metadata: *meta, Data: data}
	if cfg.fingerprints {
		file.DataFingerprint = hash.Fingerprint(raw)
	}

	if cfg.strict {
		if err := file.checkEventCount(); err != nil {
			return nil, err
		}
	}

	return file, nil
}

// ParameterCount returns the value of $PAR.
//
// Returns:
//   - error: errs.ErrMissingParameterCount or errs.ErrInvalidParameterCount
func (m *Metadata) ParameterCount() (int, error) {
	v, ok := m.Text.Pairs[section.KeyPar]
	if !ok {
		return 0, errs.ErrMissingParameterCount
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s %q", errs.ErrInvalidParameterCount, section.KeyPar, v)
	}

	return n, nil
}

// ParameterNames returns the short name ($PnN) of every parameter. A
// parameter without $PnN falls back to its long name ($PnS), then to "Pn".
func (m *Metadata) ParameterNames() ([]string, error) {
	par, err := m.ParameterCount()
	if err != nil {
		return nil, err
	}

	names := make([]string, par)
	for i := range names {
		n := i + 1
		if v, ok := m.Text.Pairs[fmt.Sprintf("$P%dN", n)]; ok && v != "" {
			names[i] = v
		} else if v, ok := m.Text.Pairs[fmt.Sprintf("$P%dS", n)]; ok && v != "" {
			names[i] = v
		} else {
			names[i] = "P" + strconv.Itoa(n)
		}
	}

	return names, nil
}

// Events returns an iterator over the events of the data segment, each a
// slice of $PAR values. When the number of values is not a multiple of $PAR
// the last event is shorter.
//
// The yielded slices alias f.Data.Events and are capped to their length.
func (f *File) Events() (iter.Seq[[]float32], error) {
	par, err := f.ParameterCount()
	if err != nil {
		return nil, err
	}

	events := f.Data.Events

	return func(yield func([]float32) bool) {
		for start := 0; start < len(events); start += par {
			end := min(start+par, len(events))
			if !yield(events[start:end:end]) {
				return
			}
		}
	}, nil
}

// EventCount returns the number of events Events yields.
func (f *File) EventCount() (int, error) {
	par, err := f.ParameterCount()
	if err != nil {
		return 0, err
	}

	return (len(f.Data.Events) + par - 1) / par, nil
}

func (f *File) checkEventCount() error {
	par, err := f.ParameterCount()
	if err != nil {
		return err
	}

	values := len(f.Data.Events)
	if values%par != 0 {
		return fmt.Errorf("%w: %d values for %d parameters", errs.ErrEventCountMismatch, values, par)
	}

	tot, ok := f.Text.Pairs[section.KeyTot]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(tot))
	if err != nil || n != values/par {
		return fmt.Errorf("%w: %d events, %s %q", errs.ErrEventCountMismatch, values/par, section.KeyTot, tot)
	}

	return nil
}

// Encode assembles the file into a new byte slice: the header, the text
// segment starting right after it, and the data segment right after the text.
//
// Offset keywords already present in the text ($BEGINDATA, $ENDDATA,
// $BEGINANALYSIS, $ENDANALYSIS, $BEGINSTEXT, $ENDSTEXT, $NEXTDATA) are rewritten
// to match the new layout. The analysis and supplemental text segments are
// not carried over.
//
// Returns:
//   - []byte: Encoded file
//   - error: Text, data or header encoding errors
func (f *File) Encode() ([]byte, error) {
	data, err := section.EncodeData(f.Text, f.Data)
	if err != nil {
		return nil, fmt.Errorf("could not encode data segment: %w", err)
	}

	version := f.Header.Version
	if version == "" {
		version = DefaultVersion
	}

	text := f.Text.Clone()
	var (
		textBytes []byte
		header    section.Header
	)
	for pass := 0; ; pass++ {
		if pass == maxLayoutPasses {
			return nil, errs.ErrLayoutUnstable
		}

		textBytes, err = text.Encode()
		if err != nil {
			return nil, fmt.Errorf("could not encode text segment: %w", err)
		}

		header = layout(version, len(textBytes), len(data))
		if !syncOffsetKeys(&text, header) {
			break
		}
	}

	if err := header.Validate(); err != nil {
		return nil, fmt.Errorf("could not encode header: %w", err)
	}

	out := make([]byte, 0, section.HeaderSize+len(textBytes)+len(data))
	out = append(out, header.Bytes()...)
	out = append(out, textBytes...)
	out = append(out, data...)

	return out, nil
}

// layout places the text segment right after the header and the data segment
// right after the text.
func layout(version string, textLen, dataLen int) section.Header {
	h := section.Header{Version: version}
	if textLen > 0 {
		h.Text = section.Segment{Start: section.HeaderSize, End: section.HeaderSize + textLen - 1}
	}
	if dataLen > 0 {
		start := section.HeaderSize + textLen
		h.Data = section.Segment{Start: start, End: start + dataLen - 1}
	}

	return h
}

// syncOffsetKeys rewrites the offset keywords present in text to match h and
// reports whether any value changed.
func syncOffsetKeys(text *section.Text, h section.Header) bool {
	want := map[string]int{
		section.KeyBeginData:     h.Data.Start,
		section.KeyEndData:       h.Data.End,
		section.KeyBeginAnalysis: 0,
		section.KeyEndAnalysis:   0,
		section.KeyBeginSText:    0,
		section.KeyEndSText:      0,
		section.KeyNextData:      0,
	}

	changed := false
	for key, offset := range want {
		current, ok := text.Pairs[key]
		if !ok {
			continue
		}
		v := strconv.Itoa(offset)
		if current != v {
			text.Pairs[key] = v
			changed = true
		}
	}

	return changed
}
