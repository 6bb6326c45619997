package copier

import (
	"io"
	"os"
)

// Probe returns the byte length of the file at path by seeking to its end.
func Probe(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, readError("open input file", path, err)
	}
	defer f.Close()

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, readError("seek input file", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, readError("seek input file", path, err)
	}

	return uint64(end), nil
}
