package curve

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// rseDocument mirrors the RockSim engine file layout:
// <engine-database> -> <engine-list> -> <engine> -> <data> -> <eng-data>
type rseDocument struct {
	XMLName xml.Name    `xml:"engine-database"`
	Engines []rseEngine `xml:"engine-list>engine"`
}

type rseEngine struct {
	Code   string       `xml:"code,attr"`
	Mfg    string       `xml:"mfg,attr"`
	Dia    float64      `xml:"dia,attr"`
	Len    float64      `xml:"len,attr"`
	PropWt float64      `xml:"propWt,attr"`
	InitWt float64      `xml:"initWt,attr"`
	Delays string       `xml:"delays,attr"`
	Type   string       `xml:"Type,attr"`
	Data   []rseSample  `xml:"data>eng-data"`
}

type rseSample struct {
	T float64 `xml:"t,attr"`
	F float64 `xml:"f,attr"`
}

// commonNamePattern extracts the impulse-class prefix from a designation,
// e.g. "H128W" -> "H128", "K550W-L" -> "K550".
var commonNamePattern = regexp.MustCompile(`^([A-Z][0-9]+)`)

// ParseRSE parses a RockSim (.rse) XML document. Header fields arrive as
// named attributes and <eng-data> elements map 1:1 to samples; the sample
// sequence invariants are the same as for RASP input. RSE weights are
// already in grams.
func ParseRSE(r io.Reader) ([]Entry, error) {
	var doc rseDocument
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return []Entry{{Rejected: &Rejected{Err: fmt.Errorf("invalid RSE document: %w", ErrMalformedHeader)}}}, nil
	}
	if len(doc.Engines) == 0 {
		return []Entry{{Rejected: &Rejected{Err: fmt.Errorf("no engine element: %w", ErrMalformedHeader)}}}, nil
	}

	entries := make([]Entry, 0, len(doc.Engines))
	for _, eng := range doc.Engines {
		entries = append(entries, parseRSEEngine(eng))
	}
	return entries, nil
}

func parseRSEEngine(eng rseEngine) Entry {
	if eng.Code == "" {
		return Entry{Rejected: &Rejected{Err: fmt.Errorf("engine without code attribute: %w", ErrMalformedHeader)}}
	}

	delays := eng.Delays
	if delays == "0" || strings.EqualFold(delays, "P") {
		delays = ""
	}

	commonName := eng.Code
	if m := commonNamePattern.FindString(eng.Code); m != "" {
		commonName = m
	}

	motorType := "SU"
	switch strings.ToLower(eng.Type) {
	case "reloadable":
		motorType = "reload"
	case "hybrid":
		motorType = "hybrid"
	}

	var val validator
	for _, pt := range eng.Data {
		if err := val.add(pt.T, pt.F); err != nil {
			return Entry{Rejected: &Rejected{Err: err}}
		}
	}
	samples, err := val.finalize()
	if err != nil {
		return Entry{Rejected: &Rejected{Err: err}}
	}

	return Entry{Record: &Record{
		Header: Header{
			Designation:      eng.Code,
			CommonName:       commonName,
			Manufacturer:     eng.Mfg,
			Diameter:         eng.Dia,
			Length:           eng.Len,
			Delays:           delays,
			PropellantWeight: eng.PropWt,
			TotalWeight:      eng.InitWt,
			Type:             motorType,
		},
		Samples: samples,
		Format:  FormatRSE,
	}}
}
