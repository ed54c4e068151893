// Package source reads inputs and normalizes their bytes before the filters see
// them: a UTF-8 byte order mark is dropped, CRLF becomes LF, and optionally the
// text is put into NFC.
package source

import "os"

// Load reads path from disk and normalizes it.
func Load(path string, opts Options) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := Decode(path, content, opts)
	f.Flags &^= FileVirtual
	return f, nil
}

// Decode normalizes content that was read elsewhere. The result is marked
// FileVirtual.
func Decode(name string, content []byte, opts Options) *File {
	flags := FileVirtual

	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if opts.NFC {
		var changed bool
		if content, changed = normalizeNFC(content); changed {
			flags |= FileNormalizedNFC
		}
	}

	return &File{
		Path:    normalizePath(name),
		Content: content,
		Flags:   flags,
	}
}
