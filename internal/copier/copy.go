package copier

import (
	"errors"
	"io"
	"os"
)

// DefaultBufferSize is the transfer chunk size. It only changes the number
// of read/write calls, never the result.
const DefaultBufferSize = 4096

// Copy streams inputPath into outputPath (created or truncated) through a
// single buffer of bufferSize bytes. Memory use does not depend on file size.
func Copy(inputPath, outputPath string, bufferSize int) error {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return readError("open input file", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return writeError("open output file", outputPath, err)
	}

	if err := stream(in, out, make([]byte, bufferSize), inputPath, outputPath); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return writeError("close output file", outputPath, err)
	}
	return nil
}

func stream(in io.Reader, out io.Writer, buf []byte, inputPath, outputPath string) error {
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			written, werr := out.Write(buf[:n])
			if werr != nil {
				return writeError("write output file", outputPath, werr)
			}
			if written != n {
				return writeError("write output file", outputPath, io.ErrShortWrite)
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return readError("read input file", inputPath, rerr)
		}
	}
}
