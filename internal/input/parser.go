// Package input reads the genotyper's candidate stream: newline-delimited
// JSON records carrying either a genotyped candidate to cache or the
// trailing-window averages that release a position for output.
package input

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patriciabraguine/strelka/internal/somatic"
)

// Record kinds.
const (
	// RecordCandidate carries one genotyped candidate for a position.
	RecordCandidate = "candidate"

	// RecordWindow carries the finalized window averages for a position
	// and triggers its flush.
	RecordWindow = "window"
)

// Record is one line of the candidate stream.
type Record struct {
	Type string `json:"type"`
	Pos  int64  `json:"pos"`

	// Candidate is set for candidate records.
	Candidate *somatic.Candidate `json:"candidate,omitempty"`

	// Normal and Tumor are set for window records.
	Normal *somatic.WindowAverages `json:"normal,omitempty"`
	Tumor  *somatic.WindowAverages `json:"tumor,omitempty"`
}

// Parser reads records from a candidate stream.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a parser for the given file. Plain and gzipped streams
// are supported; "-" reads from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidate stream: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes, then rewind.
	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read candidate stream: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek candidate stream: %w", err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next record from the stream. Returns nil, nil when there
// are no more records. Blank lines and # comment lines are skipped.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read candidate stream line: %w", err)
		}
		atEOF := err == io.EOF
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if atEOF {
				return nil, nil
			}
			continue
		}

		rec, perr := p.parseLine(line)
		if perr != nil {
			return nil, perr
		}
		return rec, nil
	}
}

// parseLine parses and validates a single stream record.
func (p *Parser) parseLine(line string) (*Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
	}

	switch rec.Type {
	case RecordCandidate:
		if rec.Candidate == nil {
			return nil, &ParseError{Line: p.lineNumber, Message: "candidate record without candidate payload"}
		}
	case RecordWindow:
		if rec.Normal == nil || rec.Tumor == nil {
			return nil, &ParseError{Line: p.lineNumber, Message: "window record without both sample averages"}
		}
	default:
		return nil, &ParseError{Line: p.lineNumber, Message: fmt.Sprintf("unknown record type %q", rec.Type)}
	}

	if rec.Pos < 0 {
		return nil, &ParseError{Line: p.lineNumber, Message: fmt.Sprintf("negative position %d", rec.Pos)}
	}

	return &rec, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents a malformed stream record with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("candidate stream parse error at line %d: %s", e.Line, e.Message)
}
