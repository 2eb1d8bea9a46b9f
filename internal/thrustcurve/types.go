// Package thrustcurve talks to the thrustcurve.org v1 API and keeps the
// downloaded metadata and simfiles cached on disk between syncs.
package thrustcurve

// MotorMetadata is one motor as returned by the search endpoint. Field
// names follow the API wire format.
type MotorMetadata struct {
	MotorID            string  `json:"motorId"`
	Manufacturer       string  `json:"manufacturer"`
	ManufacturerAbbrev string  `json:"manufacturerAbbrev"`
	Designation        string  `json:"designation"`
	CommonName         string  `json:"commonName"`
	ImpulseClass       string  `json:"impulseClass"`
	Diameter           float64 `json:"diameter"`
	Length             float64 `json:"length"`
	Type               string  `json:"type"`
	AvgThrustN         float64 `json:"avgThrustN"`
	MaxThrustN         float64 `json:"maxThrustN"`
	TotImpulseNs       float64 `json:"totImpulseNs"`
	BurnTimeS          float64 `json:"burnTimeS"`
	DataFiles          int     `json:"dataFiles"`
	InfoURL            string  `json:"infoUrl"`
	TotalWeightG       float64 `json:"totalWeightG"`
	PropWeightG        float64 `json:"propWeightG"`
	Delays             string  `json:"delays"`
	CaseInfo           string  `json:"caseInfo"`
	PropInfo           string  `json:"propInfo"`
	Sparky             bool    `json:"sparky"`
	UpdatedOn          string  `json:"updatedOn"`
}

// SimfileInfo maps a downloaded simfile back to its upstream motor and
// records how the file is licensed and where it came from.
type SimfileInfo struct {
	MotorID string `json:"motorId"`
	Format  string `json:"format"`
	Source  string `json:"source"` // cert, mfr or user
	License string `json:"license"`
	InfoURL string `json:"infoUrl,omitempty"`
	DataURL string `json:"dataUrl,omitempty"`
}

// Manufacturer is one entry of the metadata endpoint's manufacturer list
type Manufacturer struct {
	Name   string `json:"name"`
	Abbrev string `json:"abbreviation"`
}

// DownloadResult is one simfile payload from the download endpoint
type DownloadResult struct {
	SimfileID string `json:"simfileId"`
	Format    string `json:"format"`
	Source    string `json:"source"`
	License   string `json:"license"`
	Data      string `json:"data"` // base64
	InfoURL   string `json:"infoUrl"`
	DataURL   string `json:"dataUrl"`
}
