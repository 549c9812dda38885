package sfile

import (
	"encoding/binary"
	"errors"
	"io"
)

// FileType is the kind of program held by a container.
type FileType uint8

const (
	FILETYPE_EXECUTABLE = FileType(0)
	FILETYPE_SHARED     = FileType(1)
)

var fileTypeName = map[FileType]string{
	FILETYPE_EXECUTABLE: "executable",
	FILETYPE_SHARED:     "shared",
}

func (ft FileType) String() string {
	name, ok := fileTypeName[ft]
	if !ok {
		return f("filetype(%d)", uint8(ft))
	}
	return name
}

// Arch is the target architecture of a container.
type Arch uint8

const (
	ARCH_SS64   = Arch(0)
	ARCH_IA32   = Arch(1)
	ARCH_AMD64  = Arch(2)
	ARCH_ARM32  = Arch(3)
	ARCH_ARM64  = Arch(4)
	ARCH_WASM32 = Arch(5)
	ARCH_WASM64 = Arch(6)
)

var archName = map[Arch]string{
	ARCH_SS64:   "ss64",
	ARCH_IA32:   "ia32",
	ARCH_AMD64:  "amd64",
	ARCH_ARM32:  "arm32",
	ARCH_ARM64:  "arm64",
	ARCH_WASM32: "wasm32",
	ARCH_WASM64: "wasm64",
}

func (arch Arch) String() string {
	name, ok := archName[arch]
	if !ok {
		return f("arch(%d)", uint8(arch))
	}
	return name
}

const (
	VERSION_V1 = uint8(0) // Only supported format version.

	WORDS_LIMIT = 1 << 24 // Largest accepted instruction count.
)

// MAGIC identifies a container.
var MAGIC = [2]byte{'S', 'F'}

// Header is the fixed container header.
type Header struct {
	Magic    [2]byte
	FileType FileType
	Arch     Arch
	Version  uint8
}

// NewHeader returns a current-version s64 header of the given file type.
func NewHeader(ft FileType) Header {
	return Header{
		Magic:    MAGIC,
		FileType: ft,
		Arch:     ARCH_SS64,
		Version:  VERSION_V1,
	}
}

// Validate checks the header fields.
func (hdr Header) Validate() (err error) {
	switch {
	case hdr.Magic != MAGIC:
		err = ErrMagic
	case hdr.Version != VERSION_V1:
		err = ErrVersion
	case fileTypeName[hdr.FileType] == "":
		err = ErrFileType
	case archName[hdr.Arch] == "":
		err = ErrArch
	}
	return
}

// Write writes a container holding words.
func Write(w io.Writer, hdr Header, words []uint32) (err error) {
	err = hdr.Validate()
	if err != nil {
		return
	}

	if len(words) > WORDS_LIMIT {
		err = ErrTooLarge
		return
	}

	err = binary.Write(w, binary.LittleEndian, hdr)
	if err != nil {
		return
	}

	err = binary.Write(w, binary.LittleEndian, uint32(len(words)))
	if err != nil {
		return
	}

	if len(words) == 0 {
		return
	}

	err = binary.Write(w, binary.LittleEndian, words)
	return
}

// Read reads a container, returning its header and instruction words.
func Read(r io.Reader) (hdr Header, words []uint32, err error) {
	defer func() {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = errors.Join(ErrTruncated, err)
		}
	}()

	err = binary.Read(r, binary.LittleEndian, &hdr)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return
	}

	err = hdr.Validate()
	if err != nil {
		return
	}

	var count uint32
	err = binary.Read(r, binary.LittleEndian, &count)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return
	}

	if count > WORDS_LIMIT {
		err = ErrTooLarge
		return
	}

	words = make([]uint32, count)
	if count == 0 {
		return
	}

	err = binary.Read(r, binary.LittleEndian, words)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		words = nil
		return
	}

	return
}
