package curve

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// scanState tracks where the RASP scanner is between lines. The legacy
// multi-motor .eng layout has no explicit entry delimiters, so boundary
// detection lives in the state transitions instead of ad-hoc control flow.
type scanState int

const (
	// seekHeader skips blanks/comments looking for the next header line
	seekHeader scanState = iota
	// readSamples consumes data lines of the current entry
	readSamples
	// resync discards the remainder of a rejected entry until a boundary
	resync
)

// RASPScanner parses RASP/ENG input one motor entry at a time, in the manner
// of bufio.Scanner. A file may concatenate several motors separated by
// comment or blank lines; each yields its own Entry, so one bad motor does
// not discard the rest of the file.
type RASPScanner struct {
	sc    *bufio.Scanner
	state scanState
	line  int

	hdr       Header
	startLine int
	val       validator

	queue []Entry
	cur   Entry
	eof   bool
}

// NewRASPScanner returns a scanner reading RASP/ENG entries from r.
func NewRASPScanner(r io.Reader) *RASPScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &RASPScanner{sc: sc}
}

// Scan advances to the next entry. It returns false when the input is
// exhausted; read failures are reported by Err.
func (s *RASPScanner) Scan() bool {
	for len(s.queue) == 0 {
		if s.eof {
			return false
		}
		if !s.sc.Scan() {
			s.eof = true
			if s.state == readSamples {
				s.finishEntry()
			}
			continue
		}
		s.line++
		s.consume(strings.TrimSpace(s.sc.Text()))
	}
	s.cur = s.queue[0]
	s.queue = s.queue[1:]
	return true
}

// Entry returns the entry produced by the last call to Scan.
func (s *RASPScanner) Entry() Entry {
	return s.cur
}

// Err returns the first non-EOF error encountered while reading.
func (s *RASPScanner) Err() error {
	return s.sc.Err()
}

// consume feeds one trimmed line through the state machine.
func (s *RASPScanner) consume(line string) {
	blank := line == ""
	comment := strings.HasPrefix(line, ";")

	switch s.state {
	case seekHeader:
		if blank || comment {
			return
		}
		s.beginEntry(line)

	case readSamples:
		if blank || comment {
			// Entry boundary: blank line or bare comment line.
			s.finishEntry()
			s.state = seekHeader
			return
		}
		t, f, ok := parseDataLine(line)
		if !ok {
			// Not a data line; a new header starting without a boundary
			// line still terminates the previous entry.
			s.finishEntry()
			s.beginEntry(line)
			return
		}
		if err := s.val.add(t, f); err != nil {
			s.reject(s.startLine, err)
			s.state = resync
		}

	case resync:
		if blank || comment {
			s.state = seekHeader
		}
	}
}

// beginEntry parses line as a RASP header and opens a new entry.
func (s *RASPScanner) beginEntry(line string) {
	hdr, err := parseRASPHeader(line)
	if err != nil {
		s.reject(s.line, err)
		s.state = resync
		return
	}
	s.hdr = hdr
	s.startLine = s.line
	s.val = validator{}
	s.state = readSamples
}

// finishEntry closes the current entry and queues the result.
func (s *RASPScanner) finishEntry() {
	samples, err := s.val.finalize()
	if err != nil {
		s.reject(s.startLine, err)
		return
	}
	s.queue = append(s.queue, Entry{Record: &Record{
		Header:  s.hdr,
		Samples: samples,
		Format:  FormatRASP,
	}})
}

func (s *RASPScanner) reject(line int, err error) {
	s.queue = append(s.queue, Entry{Rejected: &Rejected{Line: line, Err: err}})
}

// parseRASPHeader parses the seven-field RASP header:
//
//	name diameter(mm) length(mm) delays propWt(kg) totalWt(kg) manufacturer
//
// Delays "0" means none and "P" means plugged; both map to an empty delay
// list. Weights are converted to grams.
func parseRASPHeader(line string) (Header, error) {
	parts := strings.Fields(line)
	if len(parts) != 7 {
		return Header{}, fmt.Errorf("%d fields, want 7: %w", len(parts), ErrMalformedHeader)
	}

	diameter, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Header{}, fmt.Errorf("diameter %q: %w", parts[1], ErrMalformedHeader)
	}
	length, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Header{}, fmt.Errorf("length %q: %w", parts[2], ErrMalformedHeader)
	}
	propKg, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return Header{}, fmt.Errorf("propellant weight %q: %w", parts[4], ErrMalformedHeader)
	}
	totalKg, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return Header{}, fmt.Errorf("total weight %q: %w", parts[5], ErrMalformedHeader)
	}

	delays := parts[3]
	if delays == "0" || strings.EqualFold(delays, "P") {
		delays = ""
	}

	return Header{
		Designation:      parts[0],
		CommonName:       parts[0],
		Manufacturer:     parts[6],
		Diameter:         diameter,
		Length:           length,
		Delays:           delays,
		PropellantWeight: propKg * 1000,
		TotalWeight:      totalKg * 1000,
		Type:             "SU",
	}, nil
}

// parseDataLine parses a sample line of exactly two float tokens.
func parseDataLine(line string) (t, f float64, ok bool) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, false
	}
	t, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	f, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return t, f, true
}

// ParseRASP reads all entries from r.
func ParseRASP(r io.Reader) ([]Entry, error) {
	s := NewRASPScanner(r)
	var entries []Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	return entries, s.Err()
}
