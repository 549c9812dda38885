package sfile

import (
	"errors"

	"github.com/ezrec/s64/translate"
)

var f = translate.From

var (
	ErrMagic     = errors.New(f("container magic invalid"))
	ErrVersion   = errors.New(f("container version unsupported"))
	ErrFileType  = errors.New(f("container file type invalid"))
	ErrArch      = errors.New(f("container architecture invalid"))
	ErrTooLarge  = errors.New(f("container too large"))
	ErrTruncated = errors.New(f("container truncated"))
)
