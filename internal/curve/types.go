package curve

// Format identifies the on-disk thrust-curve file format
type Format string

const (
	FormatRASP Format = "RASP"
	FormatRSE  Format = "RSE"
)

// Source identifies who published a thrust curve
type Source string

const (
	SourceCert Source = "cert" // certification organization data
	SourceMfr  Source = "mfr"  // manufacturer-published data
	SourceUser Source = "user" // user-contributed data
)

// Sample is a single point on a thrust curve
type Sample struct {
	Time  float64 // seconds since ignition
	Force float64 // newtons
}

// Header holds the descriptive fields of a motor entry.
// Weights are stored in grams regardless of the source format
// (RASP files declare them in kilograms, RSE files in grams).
type Header struct {
	Designation      string
	CommonName       string
	Manufacturer     string
	Diameter         float64 // mm
	Length           float64 // mm
	Delays           string  // dash-separated list, empty for none/plugged
	PropellantWeight float64 // grams
	TotalWeight      float64 // grams
	Type             string
}

// Record is a successfully parsed motor entry
type Record struct {
	Header  Header
	Samples []Sample
	Format  Format
}

// Rejected describes a motor entry that failed validation.
// Line is the 1-based input line where the entry started (0 for RSE).
type Rejected struct {
	Line int
	Err  error
}

// Entry is one element of the parse stream: either a Record or a Rejected,
// never both.
type Entry struct {
	Record   *Record
	Rejected *Rejected
}
