// Package section implements the codecs for the three segments of an FCS
// (Flow Cytometry Standard) file.
//
// # File Structure
//
// An FCS file is addressed by byte offsets. The fixed header names the
// inclusive byte ranges of the other segments:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (58 bytes, ASCII, fixed)                         │
//	├─────────────────────────────────────────────────────────┤
//	│ ... (padding)                                           │
//	├─────────────────────────────────────────────────────────┤
//	│ Text (delimited key/value pairs)                        │
//	├─────────────────────────────────────────────────────────┤
//	│ ... (padding)                                           │
//	├─────────────────────────────────────────────────────────┤
//	│ Data (raw event values)                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Analysis (optional)                                     │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field          | Format
//	-------|----------------|-------------------------------------
//	0-5    | Version        | e.g. "FCS3.0", copied verbatim
//	6-9    | Reserved       | spaces, ignored
//	10-17  | Text start     | right-justified decimal
//	18-25  | Text end       | right-justified decimal
//	26-33  | Data start     | right-justified decimal
//	34-41  | Data end       | right-justified decimal
//	42-49  | Analysis start | right-justified decimal, blank means 0
//	50-57  | Analysis end   | right-justified decimal, blank means 0
//
// Example:
//
//	"FCS3.0         256    1545    1792  202456       0       0"
//
// # Text Format
//
// The first byte of the text segment is the delimiter. The rest is a sequence
// of fields alternating key, value, key, value, separated by single
// delimiters. A literal delimiter inside a field is written twice. Runs of
// delimiters are paired greedily from the left, so with delimiter ',' the
// input "ab,,,cd" is the field "ab," followed by the field "cd".
//
// Keys are case-insensitive and normalized to upper case when decoded. When a
// key appears twice the last value wins.
//
// # Data Format
//
// Only list mode ($MODE L) 32-bit float ($DATATYPE F) data is supported, in
// either little-endian ($BYTEORD 1,2,3,4) or big-endian ($BYTEORD 4,3,2,1)
// byte order. The data segment is decoded into a flat slice of values; the
// caller groups them into events of $PAR parameters.
//
// # Thread Safety
//
// All functions in this package are pure transformations over caller-owned
// byte slices. Decoded values copy what they need out of the input, so the
// input may be reused or released after a call returns.
package section
