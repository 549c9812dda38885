package sfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	assert := assert.New(t)

	hdr := NewHeader(FILETYPE_EXECUTABLE)
	assert.Equal(MAGIC, hdr.Magic)
	assert.Equal(ARCH_SS64, hdr.Arch)
	assert.Equal(VERSION_V1, hdr.Version)
	assert.NoError(hdr.Validate())

	assert.Equal("executable", FILETYPE_EXECUTABLE.String())
	assert.Equal("shared", FILETYPE_SHARED.String())
	assert.Equal("ss64", ARCH_SS64.String())
	assert.Equal("wasm64", ARCH_WASM64.String())
	assert.Equal("arch(9)", Arch(9).String())

	table := [](struct {
		name   string
		modify func(hdr *Header)
		err    error
	}){
		{"magic", func(hdr *Header) { hdr.Magic = [2]byte{'E', 'L'} }, ErrMagic},
		{"version", func(hdr *Header) { hdr.Version = 1 }, ErrVersion},
		{"filetype", func(hdr *Header) { hdr.FileType = 2 }, ErrFileType},
		{"arch", func(hdr *Header) { hdr.Arch = 7 }, ErrArch},
	}

	for _, entry := range table {
		hdr := NewHeader(FILETYPE_SHARED)
		entry.modify(&hdr)
		assert.True(errors.Is(hdr.Validate(), entry.err), entry.name)

		err := Write(&bytes.Buffer{}, hdr, nil)
		assert.True(errors.Is(err, entry.err), entry.name)
	}
}

func TestWriteRead(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		hdr   Header
		words []uint32
	}){
		{"empty", NewHeader(FILETYPE_EXECUTABLE), nil},
		{"single", NewHeader(FILETYPE_EXECUTABLE), []uint32{0x0003_211a}},
		{"shared", NewHeader(FILETYPE_SHARED), []uint32{1, 2, 3, 0xffff_ffff}},
		{"amd64", Header{MAGIC, FILETYPE_EXECUTABLE, ARCH_AMD64, VERSION_V1}, []uint32{7}},
	}

	for _, entry := range table {
		buff := &bytes.Buffer{}
		err := Write(buff, entry.hdr, entry.words)
		assert.NoError(err, entry.name)
		assert.Equal(5+4+4*len(entry.words), buff.Len(), entry.name)

		hdr, words, err := Read(buff)
		assert.NoError(err, entry.name)
		assert.Equal(entry.hdr, hdr, entry.name)
		assert.Equal(len(entry.words), len(words), entry.name)
		if len(entry.words) > 0 {
			assert.Equal(entry.words, words, entry.name)
		}
	}
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	err := Write(buff, NewHeader(FILETYPE_SHARED), []uint32{0x0403_0201})
	assert.NoError(err)

	assert.Equal([]byte{
		'S', 'F', 1, 0, 0,
		1, 0, 0, 0,
		1, 2, 3, 4,
	}, buff.Bytes())
}

func TestReadErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		data []byte
		err  error
	}){
		{"empty", nil, ErrTruncated},
		{"header", []byte{'S', 'F', 0}, ErrTruncated},
		{"count", []byte{'S', 'F', 0, 0, 0, 1, 0}, ErrTruncated},
		{"words", []byte{'S', 'F', 0, 0, 0, 2, 0, 0, 0, 1, 2, 3, 4, 5}, ErrTruncated},
		{"magic", []byte{'E', 'L', 0, 0, 0, 0, 0, 0, 0}, ErrMagic},
		{"large", []byte{'S', 'F', 0, 0, 0, 0, 0, 0, 0x80}, ErrTooLarge},
	}

	for _, entry := range table {
		_, words, err := Read(bytes.NewReader(entry.data))
		assert.True(errors.Is(err, entry.err), entry.name)
		assert.Nil(words, entry.name)
	}

	err := Write(&bytes.Buffer{}, NewHeader(FILETYPE_EXECUTABLE), make([]uint32, WORDS_LIMIT+1))
	assert.True(errors.Is(err, ErrTooLarge))
}
