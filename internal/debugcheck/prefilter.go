package debugcheck

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// headerSize is the number of leading bytes filetype needs to match any type.
const headerSize = 262

// HeaderVerdict is the outcome of sniffing a file header.
type HeaderVerdict int

const (
	// HeaderUnknown means the header could not be inspected; the caller must
	// ask the file-type identifier.
	HeaderUnknown HeaderVerdict = iota

	// HeaderELF means the file starts with the ELF magic.
	HeaderELF

	// HeaderNotELF means the file was read and is not ELF.
	HeaderNotELF
)

// String returns a string representation of HeaderVerdict.
func (v HeaderVerdict) String() string {
	switch v {
	case HeaderELF:
		return "elf"
	case HeaderNotELF:
		return "not_elf"
	default:
		return "unknown"
	}
}

// HeaderSniffer inspects the first bytes of a file.
type HeaderSniffer interface {
	Sniff(path string) HeaderVerdict
}

// MagicSniffer recognises ELF headers with github.com/h2non/filetype.
// Only regular files are opened; symlinks and special files are reported
// as HeaderUnknown so that reading them can never block or follow a link
// the file-type identifier would not follow.
type MagicSniffer struct{}

// Sniff implements HeaderSniffer.
func (MagicSniffer) Sniff(path string) HeaderVerdict {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return HeaderUnknown
	}

	// #nosec G304 - path comes from the directory walk
	f, err := os.Open(path)
	if err != nil {
		return HeaderUnknown
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return HeaderUnknown
	}
	return classifyHeader(head[:n])
}

func classifyHeader(head []byte) HeaderVerdict {
	if filetype.Is(head, "elf") {
		return HeaderELF
	}
	return HeaderNotELF
}
