package dirtar

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Result summarizes a completed archive.
type Result struct {
	// Entries is the number of members written with their full content.
	Entries int
	// Skipped counts entries that were left out or written truncated.
	Skipped int
	// Bytes is the number of bytes handed to the sink, trailer included.
	Bytes int64
}

// Archiver writes the regular files directly under a directory as a tar stream.
// An Archiver holds no per-archive state and is safe for concurrent use.
type Archiver struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewArchiver creates an Archiver reading from fsys.
// A nil logger discards all output.
func NewArchiver(fsys afero.Fs, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Archiver{fs: fsys, logger: logger}
}

// Archive writes a tar stream of the regular files directly under root to sink.
// Subdirectories are not descended into.
//
// Entries are written in listing order. Failing to list root, or to write the
// end-of-archive marker, returns a KindDirectoryIO *Error. Failures on a
// single entry are logged and counted in Result.Skipped. If ctx is cancelled
// between entries the walk stops and ctx.Err() is returned.
//
// When sink has a Flush() error method it is called after the trailer.
func (a *Archiver) Archive(ctx context.Context, root string, sink io.Writer) (Result, error) {
	var result Result

	names, err := a.readDirNames(root)
	if err != nil {
		return result, DirectoryIOError(err)
	}

	cw := &countingWriter{w: sink}
	tw := tar.NewWriter(cw)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			result.Bytes = cw.n
			return result, err
		}

		if a.appendEntry(tw, root, name) {
			result.Entries++
		} else {
			result.Skipped++
		}
	}

	if err := tw.Close(); err != nil {
		result.Bytes = cw.n
		return result, DirectoryIOError(fmt.Errorf("finalize archive: %w", err))
	}

	if f, ok := sink.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			result.Bytes = cw.n
			return result, DirectoryIOError(fmt.Errorf("flush archive: %w", err))
		}
	}

	result.Bytes = cw.n
	return result, nil
}

func (a *Archiver) readDirNames(root string) ([]string, error) {
	dir, err := a.fs.Open(root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := dir.Close(); closeErr != nil {
			a.logger.Warn("failed to close directory", "path", root, "err", closeErr)
		}
	}()

	return dir.Readdirnames(-1)
}

// appendEntry reports whether name was written to tw in full.
func (a *Archiver) appendEntry(tw *tar.Writer, root, name string) bool {
	path := filepath.Join(root, name)

	rel, err := relativeName(root, path)
	if err != nil {
		a.logger.Error("skipping entry: strip prefix", "root", root, "path", path, "err", err)
		return false
	}

	info, err := a.lstat(path)
	if err != nil {
		a.logger.Error("skipping entry: file type", "path", path, "err", err)
		return false
	}

	if !info.Mode().IsRegular() {
		a.logger.Warn("skipping non-file entry", "path", path, "mode", info.Mode().Type().String())
		return false
	}

	a.logger.Info("adding entry to archive", "path", path, "name", rel, "size", info.Size())
	if err := a.appendFile(tw, path, rel, info); err != nil {
		a.logger.Error("skipping entry: append", "path", path, "err", err)
		return false
	}

	return true
}

// appendFile writes one member. Once the header is out the member is always
// completed to its declared size, zero-filling whatever could not be read, so
// the following members stay aligned.
func (a *Archiver) appendFile(tw *tar.Writer, path, name string, info fs.FileInfo) error {
	f, err := a.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			a.logger.Warn("failed to close file", "path", path, "err", closeErr)
		}
	}()

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("build header: %w", err)
	}
	hdr.Name = name

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	n, copyErr := io.CopyN(tw, f, hdr.Size)
	if copyErr == nil {
		return nil
	}

	copyErr = fmt.Errorf("copy content (%d of %d bytes): %w", n, hdr.Size, copyErr)
	if _, padErr := io.CopyN(tw, zeros{}, hdr.Size-n); padErr != nil {
		return errors.Join(copyErr, fmt.Errorf("pad content: %w", padErr))
	}
	return copyErr
}

func (a *Archiver) lstat(path string) (fs.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return a.fs.Stat(path)
}

// relativeName returns path relative to root in tar (slash separated) form.
func relativeName(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not below %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
