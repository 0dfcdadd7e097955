package huff

import (
	"github.com/pkg/errors"
)

var (
	ErrCorruptArchive = errors.New("huff: corrupt archive")
	ErrEmptyInput     = errors.New("huff: empty input")
	ErrCodeTooLong    = errors.New("huff: code length exceeds block width")
)

func corruptf(format string, args ...any) error {
	return errors.Wrapf(ErrCorruptArchive, format, args...)
}
