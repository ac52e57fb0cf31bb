// Package filter implements the line-oriented scrub of specular references
// from renderer scene files. It is a single forward pass with a small state
// machine: outside any block, lines stream straight through; inside an image
// block, lines accumulate until the closing brace decides whether the block
// is kept or dropped.
package filter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

// Marker substrings of the deprecated asset-naming scheme. All matches are
// literal; the file format is line-oriented and no parsing is attempted.
const (
	specularLineA = " specular "
	specularLineB = "_specular_file.r"

	blockOpenPrefix  = "image"
	blockClosePrefix = "}"
	nameAttr         = "name "
	specularName     = "_specular_file"
)

// Stats summarizes one pass over a file.
type Stats struct {
	LinesRemoved     int // standalone specular lines dropped (rule 1)
	BlocksRemoved    int // image blocks dropped (rule 2)
	BlocksKept       int // well-formed image blocks reproduced verbatim
	TailLinesDropped int // lines of an unterminated trailing block, never emitted
}

// Changed reports whether the pass removed anything.
func (s Stats) Changed() bool {
	return s.LinesRemoved > 0 || s.BlocksRemoved > 0 || s.TailLinesDropped > 0
}

type state int

const (
	stOutside state = iota
	stInBlock
)

// scrubber carries the per-file scan state. Blocks never nest: a second
// image statement while already inside a block is an ordinary body line.
type scrubber struct {
	st         state
	block      []string
	blockStart int
	blockName  string
	skip       bool

	line     int
	path     string
	emit     func(string)
	findings []types.Finding
	stats    Stats
}

func newScrubber(path string, emit func(string)) *scrubber {
	return &scrubber{path: path, emit: emit}
}

func (s *scrubber) feed(line string) {
	s.line++

	// Rule 1 runs before block tracking, so a matching line vanishes even
	// from inside a block that is otherwise kept.
	if strings.Contains(line, specularLineA) && strings.Contains(line, specularLineB) {
		s.stats.LinesRemoved++
		s.findings = append(s.findings, types.Finding{
			Path: s.path,
			Line: s.line,
			Kind: types.KindSpecularLine,
			Name: fieldContaining(line, specularLineB),
		})
		return
	}

	if s.st == stOutside {
		if strings.HasPrefix(strings.TrimSpace(line), blockOpenPrefix) {
			s.st = stInBlock
			s.block = append(s.block[:0], line)
			s.blockStart = s.line
			s.blockName = ""
			s.skip = false
			return
		}
		s.emit(line)
		return
	}

	s.block = append(s.block, line)
	if strings.Contains(line, nameAttr) && strings.Contains(line, specularName) {
		s.skip = true
		if s.blockName == "" {
			s.blockName = fieldAfter(line, "name")
		}
	}
	if strings.HasPrefix(strings.TrimSpace(line), blockClosePrefix) {
		if s.skip {
			s.stats.BlocksRemoved++
			s.findings = append(s.findings, types.Finding{
				Path:  s.path,
				Line:  s.blockStart,
				Kind:  types.KindImageBlock,
				Name:  s.blockName,
				Lines: len(s.block),
			})
		} else {
			s.stats.BlocksKept++
			for _, b := range s.block {
				s.emit(b)
			}
		}
		s.st = stOutside
		s.block = s.block[:0]
		s.skip = false
	}
}

// close finalizes the pass. An unterminated trailing block is not flushed;
// its lines are dropped from the output, matching the historical behavior
// of the tool this replaces.
func (s *scrubber) close() Stats {
	if s.st == stInBlock {
		s.stats.TailLinesDropped = len(s.block)
		s.findings = append(s.findings, types.Finding{
			Path:  s.path,
			Line:  s.blockStart,
			Kind:  types.KindTruncatedBlock,
			Name:  s.blockName,
			Lines: len(s.block),
		})
		s.st = stOutside
		s.block = nil
	}
	return s.stats
}

// Process streams r through the scrub and writes the filtered content to w.
// Lines are preserved byte for byte, including a final line with no trailing
// newline.
func Process(r io.Reader, w io.Writer) (Stats, error) {
	bw := bufio.NewWriter(w)
	var werr error
	s := newScrubber("", func(line string) {
		if werr == nil {
			_, werr = bw.WriteString(line)
		}
	})
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			s.feed(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.stats, err
		}
	}
	stats := s.close()
	if werr != nil {
		return stats, werr
	}
	return stats, bw.Flush()
}

// Scrub runs the filter over src in memory and returns the findings, the
// filtered content, and pass statistics. path is only used to label
// findings.
func Scrub(path string, src []byte) ([]types.Finding, []byte, Stats) {
	var out bytes.Buffer
	out.Grow(len(src))
	s := newScrubber(path, func(line string) {
		out.WriteString(line)
	})
	rest := src
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			s.feed(string(rest))
			break
		}
		s.feed(string(rest[:i+1]))
		rest = rest[i+1:]
	}
	stats := s.close()
	return s.findings, out.Bytes(), stats
}

// fieldAfter returns the whitespace-separated token following the first
// occurrence of key in line, e.g. the texture name after "name".
func fieldAfter(line, key string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == key && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// fieldContaining returns the first whitespace-separated token of line that
// contains sub.
func fieldContaining(line, sub string) string {
	for _, f := range strings.Fields(line) {
		if strings.Contains(f, sub) {
			return f
		}
	}
	return ""
}
