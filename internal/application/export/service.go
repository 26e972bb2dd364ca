// Package export saves rendered documents to disk and hands them to the
// desktop viewer.
package export

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/afero"

	"helpdesk/internal/shared/logger"
)

// Downloader fetches the PDF of one record.
type Downloader func(ctx context.Context, id int64) ([]byte, error)

// Opener launches a viewer for path without waiting for it to exit.
type Opener func(path string) error

type Service struct {
	fs     afero.Fs
	dir    string
	open   Opener
	logger logger.Interface
}

// NewService writes into the system temp dir and opens files with
// viewerCommand. An empty command disables the viewer.
func NewService(fs afero.Fs, viewerCommand string, logger logger.Interface) *Service {
	return &Service{
		fs:     fs,
		open:   CommandOpener(viewerCommand),
		logger: logger,
	}
}

// WithDir overrides the directory documents are written to.
func (s *Service) WithDir(dir string) *Service {
	s.dir = dir
	return s
}

// WithOpener overrides how a saved document is opened.
func (s *Service) WithOpener(open Opener) *Service {
	s.open = open
	return s
}

// CommandOpener runs command with the file path appended, e.g. "xdg-open"
// or "open -a Preview".
func CommandOpener(command string) Opener {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return func(path string) error {
		args := append(fields[1:len(fields):len(fields)], path)
		cmd := exec.Command(fields[0], args...)
		if err := cmd.Start(); err != nil {
			return err
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
}

// PDF downloads the document of record id, writes it to a temp file named
// after kind and opens it when view is set. It returns the file path.
func (s *Service) PDF(ctx context.Context, kind string, id int64, download Downloader, view bool) (string, error) {
	data, err := download(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to download document", "kind", kind, "id", id, "error", err)
		return "", fmt.Errorf("failed to download %s %d: %w", kind, id, err)
	}

	f, err := afero.TempFile(s.fs, s.dir, fmt.Sprintf("%s-%d-*.pdf", kind, id))
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Infow("document saved", "kind", kind, "id", id, "path", path, "bytes", len(data))

	if view && s.open != nil {
		if err := s.open(path); err != nil {
			// The file is still there for the operator to open by hand.
			s.logger.Warnw("failed to open viewer", "path", path, "error", err)
		}
	}
	return path, nil
}
