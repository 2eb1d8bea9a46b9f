package curve

import (
	"errors"
	"strings"
	"testing"
)

const validENG = `; AeroTech F32
; converted from TMT test stand data
F32 24 124 5-10-15 .0377 .0695 RV
0.01 50.0
0.05 56.0
0.10 48.0
2.00 24.0
2.20 19.0
2.24 5.0
2.72 0.0
`

func TestParseRASPValidEntry(t *testing.T) {
	entries, err := ParseRASP(strings.NewReader(validENG))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	rec := entries[0].Record
	if rec == nil {
		t.Fatalf("entry rejected: %v", entries[0].Rejected.Err)
	}

	hdr := rec.Header
	if hdr.Designation != "F32" || hdr.CommonName != "F32" {
		t.Errorf("designation/common name = %q/%q, want F32/F32", hdr.Designation, hdr.CommonName)
	}
	if hdr.Manufacturer != "RV" {
		t.Errorf("manufacturer = %q, want RV", hdr.Manufacturer)
	}
	if hdr.Diameter != 24 || hdr.Length != 124 {
		t.Errorf("dimensions = %gx%g, want 24x124", hdr.Diameter, hdr.Length)
	}
	if hdr.Delays != "5-10-15" {
		t.Errorf("delays = %q, want 5-10-15", hdr.Delays)
	}
	// RASP weights are kg; the header stores grams.
	if hdr.PropellantWeight != 37.7 {
		t.Errorf("propellant weight = %g, want 37.7", hdr.PropellantWeight)
	}
	if hdr.TotalWeight != 69.5 {
		t.Errorf("total weight = %g, want 69.5", hdr.TotalWeight)
	}

	if len(rec.Samples) != 7 {
		t.Fatalf("got %d samples, want 7", len(rec.Samples))
	}
	last := rec.Samples[len(rec.Samples)-1]
	if last.Time != 2.72 || last.Force != 0 {
		t.Errorf("last sample = %+v, want {2.72 0}", last)
	}
}

func TestParseRASPRejections(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "six header fields",
			input:   "F32 24 124 5-10-15 .0377 .0695\n0.1 50\n0.2 0\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "eight header fields",
			input:   "F32 24 124 5-10-15 .0377 .0695 Rocket Vision\n0.1 50\n0.2 0\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "non-numeric diameter",
			input:   "F32 wide 124 5-10-15 .0377 .0695 RV\n0.1 50\n0.2 0\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "premature zero thrust",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n0.01 50\n1.0 0\n2.0 10\n",
			wantErr: ErrPrematureZeroThrust,
		},
		{
			name:    "missing terminal zero",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n0.01 50\n1.0 40\n",
			wantErr: ErrMissingTerminalZero,
		},
		{
			name:    "non-monotonic time",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n0.2 50\n0.1 40\n0.3 0\n",
			wantErr: ErrNonMonotonicTime,
		},
		{
			name:    "duplicate time",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n0.2 50\n0.2 40\n0.3 0\n",
			wantErr: ErrNonMonotonicTime,
		},
		{
			name:    "negative first time",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n-0.1 50\n0.3 0\n",
			wantErr: ErrNonMonotonicTime,
		},
		{
			name: "zero-time sample after stripped origin",
			// The explicit (0,0) is stripped; the next sample must still
			// increase relative to time zero.
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n0 0\n0 50\n0.3 0\n",
			wantErr: ErrNonMonotonicTime,
		},
		{
			name:    "header with no samples",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV\n",
			wantErr: ErrZeroBurnTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := ParseRASP(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ParseRASP returned error: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			rej := entries[0].Rejected
			if rej == nil {
				t.Fatalf("entry accepted, want rejection %v", tc.wantErr)
			}
			if !errors.Is(rej.Err, tc.wantErr) {
				t.Errorf("rejection = %v, want %v", rej.Err, tc.wantErr)
			}
		})
	}
}

func TestParseRASPExplicitOriginStripped(t *testing.T) {
	input := "F32 24 124 0 .0377 .0695 RV\n0 0\n0.01 50\n0.5 0\n"
	entries, err := ParseRASP(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	rec := entries[0].Record
	if rec == nil {
		t.Fatalf("entry rejected: %v", entries[0].Rejected.Err)
	}
	if len(rec.Samples) != 2 {
		t.Fatalf("got %d samples, want 2 (origin stripped)", len(rec.Samples))
	}
	if rec.Samples[0].Time != 0.01 {
		t.Errorf("first sample time = %g, want 0.01", rec.Samples[0].Time)
	}
	if rec.Header.Delays != "" {
		t.Errorf("delays = %q, want empty for %q", rec.Header.Delays, "0")
	}
}

func TestParseRASPPluggedDelays(t *testing.T) {
	input := "K550W 54 410 P .919 1.438 AT\n0.1 600\n3.5 0\n"
	entries, err := ParseRASP(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	rec := entries[0].Record
	if rec == nil {
		t.Fatalf("entry rejected: %v", entries[0].Rejected.Err)
	}
	if rec.Header.Delays != "" {
		t.Errorf("delays = %q, want empty for plugged motor", rec.Header.Delays)
	}
}

func TestParseRASPMultiMotorFile(t *testing.T) {
	input := `; legacy combined file
A8 18 70 3-5-7 .0033 .0162 Estes
0.05 8.0
0.30 2.5
0.50 0.0

; second entry after blank+comment boundary
B6 18 70 0 .0056 .0195 Estes
0.04 10.0
0.80 0.0
`
	entries, err := ParseRASP(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Record == nil {
			t.Fatalf("entry %d rejected: %v", i, e.Rejected.Err)
		}
	}
	if entries[0].Record.Header.Designation != "A8" || entries[1].Record.Header.Designation != "B6" {
		t.Errorf("designations = %q, %q; want A8, B6",
			entries[0].Record.Header.Designation, entries[1].Record.Header.Designation)
	}
}

func TestParseRASPHeaderTerminatesPreviousEntry(t *testing.T) {
	// No comment/blank boundary: a new header line still closes the
	// previous entry.
	input := `A8 18 70 3-5-7 .0033 .0162 Estes
0.05 8.0
0.50 0.0
B6 18 70 0 .0056 .0195 Estes
0.04 10.0
0.80 0.0
`
	entries, err := ParseRASP(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Record == nil || entries[1].Record == nil {
		t.Fatalf("expected both entries accepted")
	}
}

func TestParseRASPPartialSuccess(t *testing.T) {
	// A malformed motor in the middle must not discard its neighbors.
	input := `A8 18 70 3-5-7 .0033 .0162 Estes
0.05 8.0
0.50 0.0

BAD HEADER LINE
0.1 10.0

B6 18 70 0 .0056 .0195 Estes
0.04 10.0
0.80 0.0
`
	entries, err := ParseRASP(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRASP returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Record == nil {
		t.Errorf("first entry rejected: %v", entries[0].Rejected.Err)
	}
	if entries[1].Rejected == nil {
		t.Errorf("middle entry accepted, want MalformedHeader")
	} else if !errors.Is(entries[1].Rejected.Err, ErrMalformedHeader) {
		t.Errorf("middle rejection = %v, want %v", entries[1].Rejected.Err, ErrMalformedHeader)
	}
	if entries[2].Record == nil {
		t.Errorf("last entry rejected: %v", entries[2].Rejected.Err)
	}
}

func TestRASPScannerLazy(t *testing.T) {
	s := NewRASPScanner(strings.NewReader(validENG))
	if !s.Scan() {
		t.Fatalf("Scan returned false, want one entry")
	}
	if s.Entry().Record == nil {
		t.Fatalf("entry rejected: %v", s.Entry().Rejected.Err)
	}
	if s.Scan() {
		t.Fatalf("Scan returned true after last entry")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}
}
