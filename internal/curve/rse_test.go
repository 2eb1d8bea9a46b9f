package curve

import (
	"errors"
	"strings"
	"testing"
)

const validRSE = `<engine-database>
 <engine-list>
  <engine code="H128W-14A" mfg="AeroTech" dia="29" len="194" propWt="62.5" initWt="132.4" delays="6,10,14" Type="reloadable">
   <data>
    <eng-data t="0.02" f="140.0"/>
    <eng-data t="0.5" f="135.0"/>
    <eng-data t="1.6" f="90.0"/>
    <eng-data t="1.9" f="0.0"/>
   </data>
  </engine>
 </engine-list>
</engine-database>`

func TestParseRSEValid(t *testing.T) {
	entries, err := ParseRSE(strings.NewReader(validRSE))
	if err != nil {
		t.Fatalf("ParseRSE returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	rec := entries[0].Record
	if rec == nil {
		t.Fatalf("entry rejected: %v", entries[0].Rejected.Err)
	}

	hdr := rec.Header
	if hdr.Designation != "H128W-14A" {
		t.Errorf("designation = %q, want H128W-14A", hdr.Designation)
	}
	if hdr.CommonName != "H128" {
		t.Errorf("common name = %q, want H128 (propellant suffix stripped)", hdr.CommonName)
	}
	if hdr.Manufacturer != "AeroTech" {
		t.Errorf("manufacturer = %q, want AeroTech", hdr.Manufacturer)
	}
	// RSE weights are already grams; no conversion.
	if hdr.PropellantWeight != 62.5 || hdr.TotalWeight != 132.4 {
		t.Errorf("weights = %g/%g, want 62.5/132.4", hdr.PropellantWeight, hdr.TotalWeight)
	}
	if hdr.Type != "reload" {
		t.Errorf("type = %q, want reload", hdr.Type)
	}
	if rec.Format != FormatRSE {
		t.Errorf("format = %q, want RSE", rec.Format)
	}
	if len(rec.Samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(rec.Samples))
	}
}

func TestParseRSERejections(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "not xml",
			input:   "F32 24 124 5-10-15 .0377 .0695 RV",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "no engine element",
			input:   "<engine-database><engine-list/></engine-database>",
			wantErr: ErrMalformedHeader,
		},
		{
			name: "missing code attribute",
			input: `<engine-database><engine-list><engine mfg="X" dia="18" len="70">
				<data><eng-data t="0.1" f="5"/><eng-data t="0.5" f="0"/></data>
				</engine></engine-list></engine-database>`,
			wantErr: ErrMalformedHeader,
		},
		{
			name: "interior zero thrust",
			input: `<engine-database><engine-list><engine code="A8" mfg="X" dia="18" len="70">
				<data><eng-data t="0.1" f="5"/><eng-data t="0.2" f="0"/><eng-data t="0.5" f="3"/></data>
				</engine></engine-list></engine-database>`,
			wantErr: ErrPrematureZeroThrust,
		},
		{
			name: "nonzero final thrust",
			input: `<engine-database><engine-list><engine code="A8" mfg="X" dia="18" len="70">
				<data><eng-data t="0.1" f="5"/><eng-data t="0.5" f="3"/></data>
				</engine></engine-list></engine-database>`,
			wantErr: ErrMissingTerminalZero,
		},
		{
			name: "non-monotonic data elements",
			input: `<engine-database><engine-list><engine code="A8" mfg="X" dia="18" len="70">
				<data><eng-data t="0.5" f="5"/><eng-data t="0.1" f="3"/><eng-data t="0.6" f="0"/></data>
				</engine></engine-list></engine-database>`,
			wantErr: ErrNonMonotonicTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := ParseRSE(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ParseRSE returned error: %v", err)
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

func TestParseRSEMultipleEngines(t *testing.T) {
	input := `<engine-database><engine-list>
		<engine code="A8-3" mfg="Estes" dia="18" len="70">
			<data><eng-data t="0.05" f="8"/><eng-data t="0.5" f="0"/></data>
		</engine>
		<engine code="B6-4" mfg="Estes" dia="18" len="70">
			<data><eng-data t="0.04" f="10"/><eng-data t="0.8" f="0"/></data>
		</engine>
	</engine-list></engine-database>`

	entries, err := ParseRSE(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRSE returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Record == nil {
			t.Fatalf("entry %d rejected: %v", i, e.Rejected.Err)
		}
	}
}

func TestParseRSEOriginStripped(t *testing.T) {
	input := `<engine-database><engine-list><engine code="A8" mfg="Estes" dia="18" len="70">
		<data><eng-data t="0" f="0"/><eng-data t="0.05" f="8"/><eng-data t="0.5" f="0"/></data>
		</engine></engine-list></engine-database>`

	entries, err := ParseRSE(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRSE returned error: %v", err)
	}
	rec := entries[0].Record
	if rec == nil {
		t.Fatalf("entry rejected: %v", entries[0].Rejected.Err)
	}
	if len(rec.Samples) != 2 {
		t.Errorf("got %d samples, want 2 (origin stripped)", len(rec.Samples))
	}
}
