package copier

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/kelsos/threadcopy/internal/models"
)

// Verify compares inputPath and outputPath byte for byte, reading both in
// lockstep with two buffers of bufferSize bytes. A length difference is a
// read error, a content difference a verify error.
func Verify(inputPath, outputPath string, bufferSize int) error {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return readError("open input file", inputPath, err)
	}
	defer in.Close()

	out, err := os.Open(outputPath)
	if err != nil {
		return readError("open output file", outputPath, err)
	}
	defer out.Close()

	return compare(in, out, make([]byte, bufferSize), make([]byte, bufferSize), inputPath, outputPath)
}

func compare(in, out io.Reader, ibuf, obuf []byte, inputPath, outputPath string) error {
	for {
		n, err := io.ReadFull(in, ibuf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			if errors.Is(err, io.EOF) {
				return expectEOF(out, obuf, outputPath)
			}
			return readError("read input file", inputPath, err)
		}

		if _, oerr := io.ReadFull(out, obuf[:n]); oerr != nil {
			if errors.Is(oerr, io.EOF) || errors.Is(oerr, io.ErrUnexpectedEOF) {
				return readError("read output file", outputPath, ErrLengthMismatch)
			}
			return readError("read output file", outputPath, oerr)
		}

		if !bytes.Equal(ibuf[:n], obuf[:n]) {
			return &TaskError{
				Result: models.ResultVerifyError,
				Op:     "verify",
				Path:   inputPath + " != " + outputPath,
				Err:    ErrContentMismatch,
			}
		}

		if n < len(ibuf) {
			return expectEOF(out, obuf, outputPath)
		}
	}
}

// expectEOF fails when out still has bytes once the input is exhausted.
func expectEOF(out io.Reader, buf []byte, outputPath string) error {
	n, err := io.ReadFull(out, buf[:1])
	if n == 0 && errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return readError("read output file", outputPath, err)
	}
	return readError("read output file", outputPath, ErrLengthMismatch)
}
