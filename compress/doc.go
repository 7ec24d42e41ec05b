// Package compress provides the codecs used to compress exported event tables.
//
// A decoded FCS data segment expands several times when written out as CSV,
// so the export package can pass the table through one of these codecs before
// it reaches disk:
//
//   - None: the table is written as is
//   - Zstd: good ratio at high speed, pure Go (klauspost/compress) by
//     default, cgo (valyala/gozstd) with the gozstd build tag
//   - S2: fast S2 framed streams (klauspost/compress)
//   - LZ4: fast LZ4 frames with size and checksum (pierrec/lz4)
//   - XZ: smallest output, slowest (ulikunitz/xz)
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(table)
//
// Every codec writes its standard container format, so a compressed table can
// be unpacked with zstd, s2d, lz4 or xz on the command line.
package compress
