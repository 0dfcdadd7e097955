package huff

import (
	"os"

	"github.com/pkg/errors"
)

// Compress writes the archive of the file src to dst. A failure can
// leave a partial dst behind.
func Compress(dst, src string) error {
	return CompressWithOptions(dst, src, nil)
}

func CompressWithOptions(dst, src string, opts *Options) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open source: %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "failed to create destination: %s", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close destination: %s", dst)
		}
	}()

	if err := Encode(out, in, opts); err != nil {
		return errors.Wrapf(err, "failed to compress %s", src)
	}
	return nil
}

// Decompress restores the file dst from the archive src. The archive
// size must match its header before dst is created.
func Decompress(dst, src string) error {
	return DecompressWithOptions(dst, src, nil)
}

func DecompressWithOptions(dst, src string, opts *Options) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive: %s", src)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat archive: %s", src)
	}
	info, err := readArchiveInfo(in)
	if err != nil {
		return errors.Wrapf(err, "failed to read archive: %s", src)
	}
	if size := info.Size(); size != stat.Size() {
		return corruptf("%s: file size %d does not match header (%d)", src, stat.Size(), size)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "failed to create destination: %s", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close destination: %s", dst)
		}
	}()

	if err := decodeData(out, in, info, opts); err != nil {
		return errors.Wrapf(err, "failed to decompress %s", src)
	}
	return nil
}
