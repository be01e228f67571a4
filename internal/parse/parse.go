// Package parse implements the single-pass log reader: timestamp resolution,
// pattern dispatch, and series accumulation.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/crimson-sun/gccscope/internal/model"
	"github.com/crimson-sun/gccscope/internal/pattern"
)

// maxLineBytes bounds scanner growth for pathological lines.
const maxLineBytes = 1024 * 1024

// Parser classifies log lines against the pattern registry. The zero value
// is not usable; construct with New. A Parser holds no per-run state and is
// safe to reuse across runs.
type Parser struct {
	registry []pattern.Entry
}

// New creates a Parser over the default pattern registry.
func New() *Parser {
	return &Parser{registry: pattern.Registry()}
}

// ParseFile reads and classifies an entire log file. A missing or unreadable
// file is fatal for the run: the error is returned and no partial series set
// is produced.
func (p *Parser) ParseFile(path string) (*model.SeriesSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	set, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return set, nil
}

// Parse runs the single forward pass over r. Carry-forward timestamp state
// is scoped to this call, so independent runs never observe each other and
// parsing the same input twice yields identical series.
//
// Invalid UTF-8 byte sequences are replaced with U+FFFD rather than failing
// the run.
func (p *Parser) Parse(r io.Reader) (*model.SeriesSet, error) {
	set := &model.SeriesSet{}
	carry := pattern.Carry{}

	sc := bufio.NewScanner(transform.NewReader(r, unicode.UTF8.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		line := sc.Text()
		if ms, ok := resolveTimestamp(line); ok {
			carry = pattern.Carry{Ms: ms, Known: true}
		}
		p.classify(line, carry, set)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return set, nil
}

// classify tries each recognizer in precedence order and emits at most one
// event. A line matching nothing is dropped silently: most log lines carry
// no event, so this is the common outcome and not a failure.
func (p *Parser) classify(line string, carry pattern.Carry, set *model.SeriesSet) {
	for _, entry := range p.registry {
		m := entry.Re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entry.Emit(m, carry, set)
		return
	}
}
