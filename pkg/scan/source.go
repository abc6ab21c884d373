package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ccollicutt/datefind/pkg/dateparse"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// maxLineSize bounds a single scanned line.
const maxLineSize = 1024 * 1024

// FileSource implements Source over a list of files read in order.
type FileSource struct {
	files     []string
	cfg       *dateparse.Configuration
	reference time.Time
	stdin     io.Reader

	current        io.ReadCloser
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
	skipped        int
}

// NewFileSource creates a Source that parses every line of files with cfg.
// All lines share the same reference so that relative expressions resolve
// consistently across a run.
func NewFileSource(files []string, cfg *dateparse.Configuration, reference time.Time) *FileSource {
	return &FileSource{
		files:     files,
		cfg:       cfg,
		reference: reference,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
}

// SetStdin replaces the reader used for the "-" path.
func (s *FileSource) SetStdin(r io.Reader) {
	s.stdin = r
}

// Next returns the next line holding a date or time.
// Lines without one are skipped and counted.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			raw := s.currentScanner.Text()

			res := s.cfg.Parse(raw, s.reference)
			at, ok := res.Resolve(nil)
			if !ok {
				s.skipped++
				continue
			}

			return &Line{
				Raw:     raw,
				Source:  s.currentSource,
				LineNum: s.currentLine,
				Result:  res,
				At:      at,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		if err := s.closeCurrent(); err != nil {
			return nil, err
		}
	}
}

// Skipped returns how many lines so far held neither a date nor a time.
func (s *FileSource) Skipped() int {
	return s.skipped
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrent()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	if path == Stdin {
		s.current = io.NopCloser(s.stdin)
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		s.current = f
	}

	s.currentScanner = bufio.NewScanner(s.current)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrent() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	s.currentScanner = nil
	return err
}
