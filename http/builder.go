package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/net/http/httpguts"

	"github.com/sagarc03/dirtar"
)

// ContentTypeTar is the media type of every archive response.
const ContentTypeTar = "application/x-tar"

// Archiver produces a tar stream of root into sink.
type Archiver interface {
	Archive(ctx context.Context, root string, sink io.Writer) (dirtar.Result, error)
}

// Response is a fully built archive response.
type Response struct {
	Header http.Header
	Body   *bytes.Buffer
}

// BuildResponse archives root into memory and wraps it with the download headers.
// Archiver failures are returned unchanged; a prefix that cannot be carried in
// a header yields a KindResponseConstruction error.
func BuildResponse(ctx context.Context, archiver Archiver, root, prefix string) (*Response, error) {
	body := new(bytes.Buffer)
	if _, err := archiver.Archive(ctx, root, body); err != nil {
		return nil, err
	}

	header, err := archiveHeader(prefix)
	if err != nil {
		return nil, err
	}

	return &Response{Header: header, Body: body}, nil
}

// Write sends the response with status 200.
func (r *Response) Write(w http.ResponseWriter) error {
	for k, v := range r.Header {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Length", strconv.Itoa(r.Body.Len()))
	w.WriteHeader(http.StatusOK)

	_, err := r.Body.WriteTo(w)
	return err
}

// StreamResponse writes the archive straight into w as it is produced.
//
// The status line and headers go out with the first archive byte, so an error
// from listing root leaves w untouched and can still be reported normally.
// Errors after that point are wrapped with ErrResponseCommitted.
func StreamResponse(ctx context.Context, w http.ResponseWriter, archiver Archiver, root, prefix string) error {
	header, err := archiveHeader(prefix)
	if err != nil {
		return err
	}

	sw := &streamWriter{w: w, header: header}
	if _, err := archiver.Archive(ctx, root, sw); err != nil {
		if sw.started {
			return fmt.Errorf("%w: %w", ErrResponseCommitted, err)
		}
		return err
	}

	return nil
}

func archiveHeader(prefix string) (http.Header, error) {
	header := make(http.Header)
	header.Set("Content-Type", ContentTypeTar)

	if prefix != "" {
		disposition := fmt.Sprintf("attachment; filename=%s.tar", prefix)
		if !httpguts.ValidHeaderFieldValue(disposition) {
			return nil, dirtar.ResponseConstructionError(
				fmt.Errorf("invalid Content-Disposition value %q", disposition),
			)
		}
		header.Set("Content-Disposition", disposition)
	}

	return header, nil
}

// streamWriter commits the status line on the first write.
type streamWriter struct {
	w       http.ResponseWriter
	header  http.Header
	started bool
}

func (s *streamWriter) Write(p []byte) (int, error) {
	if !s.started {
		for k, v := range s.header {
			s.w.Header()[k] = v
		}
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	return s.w.Write(p)
}

func (s *streamWriter) Flush() error {
	if !s.started {
		return nil
	}
	err := http.NewResponseController(s.w).Flush()
	if errors.Is(err, http.ErrNotSupported) {
		return nil
	}
	return err
}
