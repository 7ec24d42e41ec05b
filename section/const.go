package section

// Header layout. All ranges are byte offsets into the 58-byte header,
// end-exclusive.
const (
	HeaderSize     = 58 // fixed header size in bytes
	VersionSize    = 6  // width of the version identifier, e.g. "FCS3.0"
	VersionPadSize = 10 // version plus the 4 reserved bytes
	OffsetWidth    = 8  // width of every right-justified offset field

	MaxHeaderOffset = 99_999_999 // largest offset that fits in OffsetWidth digits

	textStartPos     = 10
	textEndPos       = 18
	dataStartPos     = 26
	dataEndPos       = 34
	analysisStartPos = 42
	analysisEndPos   = 50
)

// Keywords read by the data segment codec.
const (
	KeyMode     = "$MODE"
	KeyDataType = "$DATATYPE"
	KeyByteOrd  = "$BYTEORD"
)

// Keywords used by callers to interpret and lay out a dataset.
const (
	KeyPar           = "$PAR"
	KeyTot           = "$TOT"
	KeyBeginData     = "$BEGINDATA"
	KeyEndData       = "$ENDDATA"
	KeyBeginAnalysis = "$BEGINANALYSIS"
	KeyEndAnalysis   = "$ENDANALYSIS"
	KeyBeginSText    = "$BEGINSTEXT"
	KeyEndSText      = "$ENDSTEXT"
	KeyNextData      = "$NEXTDATA"
)
