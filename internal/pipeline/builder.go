// Package pipeline orchestrates a build: collect inputs, fingerprint,
// parse, meter, merge, assemble the artifact and sign it. An unchanged
// input set short-circuits to the previous build's state.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/schollz/progressbar/v3"

	"github.com/openrocket/motor-database/internal/artifact"
	"github.com/openrocket/motor-database/internal/curve"
	"github.com/openrocket/motor-database/internal/fingerprint"
	"github.com/openrocket/motor-database/internal/merge"
	"github.com/openrocket/motor-database/internal/mfr"
	"github.com/openrocket/motor-database/internal/sign"
	"github.com/openrocket/motor-database/internal/store"
	"github.com/openrocket/motor-database/internal/thrustcurve"
	"github.com/openrocket/motor-database/internal/util"
)

var (
	// ErrFingerprintMismatch means the input set changed while the build
	// was running; the artifact would not describe what it was built from
	ErrFingerprintMismatch = errors.New("inputs changed during build")
	// ErrBuildLocked means another build holds the workspace lock
	ErrBuildLocked = errors.New("another build is already running")
)

// simfileIDPattern extracts the 24-hex upstream simfile id that the
// fetcher embeds in downloaded filenames
var simfileIDPattern = regexp.MustCompile(`_([0-9a-f]{24})\.[^.]+$`)

// Config locates everything a build touches
type Config struct {
	DataDir     string // thrust-curve files and fetch caches
	OutDir      string // motors.db, motors.db.gz, manifest.json
	StateFile   string // build state JSON
	LockFile    string // single-instance build lock
	DownloadURL string // published into the manifest, may be empty
	Force       bool   // build even when the fingerprint is unchanged
	Sign        bool   // sign the manifest, requires a configured key
}

// Result is what one build run produced
type Result struct {
	Skipped   bool
	InputHash string
	State     *fingerprint.State
	Manifest  *artifact.Manifest
	Report    *Report
}

// Builder runs the build pipeline
type Builder struct {
	cfg   Config
	clock clockwork.Clock
}

// NewBuilder wires a builder. A nil clock selects the real one.
func NewBuilder(cfg Config, clock clockwork.Clock) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{cfg: cfg, clock: clock}
}

// Run executes the pipeline end to end
func (b *Builder) Run() (*Result, error) {
	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		return nil, err
	}

	lock := flock.New(b.cfg.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire build lock: %w", err)
	}
	if !locked {
		return nil, ErrBuildLocked
	}
	defer lock.Unlock()

	inputs, err := fingerprint.Collect(b.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no thrust-curve files found under %s", b.cfg.DataDir)
	}
	util.InfoLog("Collected %d input files", len(inputs))

	hash, err := fingerprint.Compute(inputs, store.SchemaVersion)
	if err != nil {
		return nil, err
	}

	prev := fingerprint.LoadState(b.cfg.StateFile)
	if !b.cfg.Force && prev != nil && prev.InputHash == hash {
		util.InfoLog("Inputs unchanged since %s, skipping build", prev.GeneratedAt)
		return &Result{Skipped: true, InputHash: hash, State: prev}, nil
	}

	cache := &thrustcurve.Cache{
		DataDir:  b.cfg.DataDir,
		StateDir: filepath.Dir(b.cfg.StateFile),
	}
	report := NewReport()

	mergeInputs := b.parse(inputs, cache, report)

	st, err := store.Open(filepath.Join(b.cfg.OutDir, "motors.db"))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	resolver := mfr.NewResolver(canonicalManufacturers(cache))
	stats, err := merge.NewMerger(st, resolver).Merge(mergeInputs)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	report.Merge = *stats

	// Inputs mutating under a running build would leave the artifact
	// describing a state that never existed on disk
	recheck, err := b.recomputeHash()
	if err != nil {
		return nil, err
	}
	if recheck != hash {
		return nil, ErrFingerprintMismatch
	}

	manifest, state, err := b.assemble(st, hash)
	if err != nil {
		return nil, err
	}
	report.MotorCount = state.MotorCount
	report.CurveCount = state.CurveCount

	if err := fingerprint.SaveState(b.cfg.StateFile, state); err != nil {
		return nil, err
	}

	util.SuccessLog("Build complete: %d motors, %d curves", state.MotorCount, state.CurveCount)
	return &Result{InputHash: hash, State: state, Manifest: manifest, Report: report}, nil
}

// parse reads every input file and turns accepted records into merge
// inputs, attaching upstream metadata where the fetch caches know the file
func (b *Builder) parse(inputs []fingerprint.InputFile, cache *thrustcurve.Cache, report *Report) []merge.Input {
	motorsMeta := cache.LoadMotors()
	simfiles := cache.LoadSimfileMap()

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetDescription("Parsing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	var out []merge.Input
	for _, in := range inputs {
		out = append(out, b.parseFile(in, motorsMeta, simfiles, report)...)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return out
}

func (b *Builder) parseFile(in fingerprint.InputFile, motorsMeta map[string]thrustcurve.MotorMetadata,
	simfiles map[string]thrustcurve.SimfileInfo, report *Report) []merge.Input {

	f, err := os.Open(in.Path)
	if err != nil {
		report.addReject(in.Rel, err)
		return nil
	}
	defer f.Close()

	var entries []curve.Entry
	if strings.EqualFold(filepath.Ext(in.Path), ".rse") {
		entries, err = curve.ParseRSE(f)
	} else {
		entries, err = curve.ParseRASP(f)
	}
	if err != nil {
		report.addReject(in.Rel, err)
		return nil
	}

	simfileID := ""
	if m := simfileIDPattern.FindStringSubmatch(filepath.Base(in.Path)); m != nil {
		simfileID = m[1]
	}

	source := curve.SourceUser
	var simfile *thrustcurve.SimfileInfo
	var meta *thrustcurve.MotorMetadata
	if info, ok := simfiles[simfileID]; ok {
		simfile = &info
		if info.Source != "" {
			source = curve.Source(info.Source)
		}
		if mm, ok := motorsMeta[info.MotorID]; ok {
			meta = &mm
		}
	}

	// The filename carries at most one upstream simfile id. In a
	// multi-motor file it cannot identify any single entry, so the
	// entries fall back to their own (motor, source, format) identity;
	// only the provenance tag still applies to all of them.
	records := 0
	for _, e := range entries {
		if e.Record != nil {
			records++
		}
	}
	if records > 1 {
		simfileID = ""
		simfile = nil
		meta = nil
	}

	var out []merge.Input
	for _, e := range entries {
		if e.Rejected != nil {
			report.addReject(in.Rel, e.Rejected.Err)
			continue
		}
		metrics, err := curve.ComputeMetrics(e.Record.Samples)
		if err != nil {
			report.addReject(in.Rel, err)
			continue
		}
		report.addAccept(source)
		out = append(out, merge.Input{
			File:      in.Rel,
			Record:    e.Record,
			Metrics:   metrics,
			Source:    source,
			SimfileID: simfileID,
			Simfile:   simfile,
			Meta:      meta,
		})
	}
	return out
}

// assemble finalizes the database, compresses it and writes the manifest.
// The compressed artifact and manifest land under temp names and are
// renamed into place only after signing succeeds.
func (b *Builder) assemble(st *store.Store, inputHash string) (*artifact.Manifest, *fingerprint.State, error) {
	now := b.clock.Now().UTC()
	generatedAt := now.Format(time.RFC3339)
	databaseVersion, _ := strconv.ParseInt(now.Format("20060102150405"), 10, 64)

	motorCount, err := st.CountMotors(st.DB())
	if err != nil {
		return nil, nil, err
	}
	curveCount, err := st.CountCurves(st.DB())
	if err != nil {
		return nil, nil, err
	}

	for key, value := range map[string]string{
		"schema_version":   strconv.Itoa(store.SchemaVersion),
		"database_version": strconv.FormatInt(databaseVersion, 10),
		"generated_at":     generatedAt,
		"motor_count":      strconv.Itoa(motorCount),
		"curve_count":      strconv.Itoa(curveCount),
	} {
		if err := st.SetMeta(st.DB(), key, value); err != nil {
			return nil, nil, err
		}
	}

	if err := st.Vacuum(); err != nil {
		return nil, nil, fmt.Errorf("vacuum failed: %w", err)
	}
	if err := st.CheckIntegrity(); err != nil {
		return nil, nil, err
	}
	// The file is hashed and compressed while the connection stays open,
	// so the WAL must be folded into the main file first
	if err := st.Checkpoint(); err != nil {
		return nil, nil, fmt.Errorf("checkpoint failed: %w", err)
	}

	dbPath := filepath.Join(b.cfg.OutDir, "motors.db")
	gzPath := filepath.Join(b.cfg.OutDir, "motors.db.gz")
	manifestPath := filepath.Join(b.cfg.OutDir, "manifest.json")
	tmpGz := gzPath + ".tmp"
	tmpManifest := manifestPath + ".tmp"

	if err := artifact.Compress(dbPath, tmpGz); err != nil {
		return nil, nil, err
	}
	sha, err := artifact.SHA256File(dbPath)
	if err != nil {
		return nil, nil, err
	}
	shaGz, err := artifact.SHA256File(tmpGz)
	if err != nil {
		return nil, nil, err
	}

	manifest := &artifact.Manifest{
		SchemaVersion:   store.SchemaVersion,
		DatabaseVersion: databaseVersion,
		GeneratedAt:     generatedAt,
		MotorCount:      motorCount,
		CurveCount:      curveCount,
		SHA256:          sha,
		SHA256Gz:        shaGz,
		DownloadURL:     b.cfg.DownloadURL,
	}

	if b.cfg.Sign {
		if err := sign.SignManifest(manifest); err != nil {
			os.Remove(tmpGz)
			return nil, nil, err
		}
	}

	if err := manifest.Write(tmpManifest); err != nil {
		os.Remove(tmpGz)
		return nil, nil, err
	}
	if err := os.Rename(tmpGz, gzPath); err != nil {
		return nil, nil, err
	}
	if err := os.Rename(tmpManifest, manifestPath); err != nil {
		return nil, nil, err
	}

	state := &fingerprint.State{
		InputHash:   inputHash,
		MotorCount:  motorCount,
		CurveCount:  curveCount,
		GeneratedAt: generatedAt,
	}
	return manifest, state, nil
}

func (b *Builder) recomputeHash() (string, error) {
	inputs, err := fingerprint.Collect(b.cfg.DataDir)
	if err != nil {
		return "", err
	}
	return fingerprint.Compute(inputs, store.SchemaVersion)
}

// canonicalManufacturers seeds the alias resolver with the upstream list
// when the fetch cache has one
func canonicalManufacturers(cache *thrustcurve.Cache) []mfr.Canonical {
	var out []mfr.Canonical
	for _, m := range cache.LoadManufacturers() {
		out = append(out, mfr.Canonical{Name: m.Name, Abbrev: m.Abbrev})
	}
	return out
}
