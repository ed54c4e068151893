package source

// FileFlags records what Load or Decode changed in the raw bytes.
type FileFlags uint8

const (
	// FileVirtual marks input that did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one normalized input.
type File struct {
	Path    string
	Content []byte
	Flags   FileFlags
}

// Options controls normalization.
type Options struct {
	// NFC rewrites the content into Unicode normalization form C.
	NFC bool
}

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag == flag
}

// HasAny reports whether at least one bit of flags is set.
func (f FileFlags) HasAny(flags FileFlags) bool {
	return f&flags != 0
}
