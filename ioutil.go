package jwalk

import (
	"io"
	"os"
	"path/filepath"
)

// Slurp reads path fully into memory and returns its contents, the Go
// equivalent of spec §6's fread(path) — a single allocation sized to the
// file, rather than the growing-buffer read loop a C implementation needs.
func Slurp(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf, nil
}

// rewriteFile atomically replaces the contents of path: render writes the
// new contents to a temporary file in the same directory, which is renamed
// over path only once render returns successfully. On any error the
// original file is untouched. This is the same temp-file-then-rename
// pattern jj.go's journal checkpoint uses for its own file swaps.
func rewriteFile(path string, render func(out Sink) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := render(NewFileSink(tmp)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// SetfFile applies Setf's edit to the file at path in place, using
// rewriteFile's atomic swap so a crash or error mid-write never corrupts
// the original document.
func SetfFile(path string, jsonPath string, format *string, args ...interface{}) (bool, error) {
	input, err := Slurp(path)
	if err != nil {
		return false, err
	}
	var changed bool
	err = rewriteFile(path, func(out Sink) error {
		var werr error
		changed, werr = VSetf(input, out, jsonPath, format, args)
		return werr
	})
	return changed, err
}
