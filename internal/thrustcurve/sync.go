package thrustcurve

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/schollz/progressbar/v3"

	"github.com/openrocket/motor-database/internal/util"
)

// SyncResult summarizes one fetch pass
type SyncResult struct {
	ManufacturersSeen int
	MotorsUpdated     int
	FilesDownloaded   int
}

// Syncer pulls motor metadata and simfiles from the API into the cache.
// One pass, no retries; a failed manufacturer or motor is logged and
// skipped so the rest of the sync still completes.
type Syncer struct {
	client *Client
	cache  *Cache
	clock  clockwork.Clock

	// Format requested from the download endpoint, "RASP" by default
	Format string
}

// NewSyncer wires a syncer. A nil clock selects the real one.
func NewSyncer(client *Client, cache *Cache, clock clockwork.Clock) *Syncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Syncer{client: client, cache: cache, clock: clock, Format: "RASP"}
}

// Sync performs an incremental fetch. Motors whose updatedOn stamp is on
// or after the last completed sync are re-downloaded; with no usable sync
// state everything is fetched.
func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	since := s.cache.LastSync()
	motors := s.cache.LoadMotors()
	simfiles := s.cache.LoadSimfileMap()

	if len(motors) == 0 {
		util.InfoLog("No cached metadata, performing full sync")
		since = epoch
	} else {
		util.InfoLog("Checking for updates since %s", since)
	}

	manufacturers, err := s.client.Manufacturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manufacturer list: %w", err)
	}
	if len(manufacturers) == 0 {
		return nil, fmt.Errorf("manufacturer list is empty")
	}
	if err := s.cache.SaveManufacturers(manufacturers); err != nil {
		return nil, err
	}
	util.InfoLog("Fetched %d manufacturers", len(manufacturers))

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(manufacturers),
			progressbar.OptionSetDescription("Syncing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	result := &SyncResult{ManufacturersSeen: len(manufacturers)}
	for _, mfr := range manufacturers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.syncManufacturer(ctx, mfr, since, motors, simfiles, result); err != nil {
			util.WarnLog("Skipping %s: %v", mfr.Name, err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if result.MotorsUpdated > 0 {
		if err := s.cache.SaveMotors(motors); err != nil {
			return nil, err
		}
	}
	if result.FilesDownloaded > 0 {
		if err := s.cache.SaveSimfileMap(simfiles); err != nil {
			return nil, err
		}
	}
	if result.MotorsUpdated > 0 || result.FilesDownloaded > 0 {
		stamp := s.clock.Now().Format("2006-01-02 15:04:05")
		if err := s.cache.SaveLastSync(stamp); err != nil {
			return nil, err
		}
	}

	util.SuccessLog("Sync complete: %d motors updated, %d files downloaded",
		result.MotorsUpdated, result.FilesDownloaded)
	return result, nil
}

func (s *Syncer) syncManufacturer(ctx context.Context, mfr Manufacturer, since string,
	motors map[string]MotorMetadata, simfiles map[string]SimfileInfo, result *SyncResult) error {

	found, err := s.client.Search(ctx, mfr.Name)
	if err != nil {
		return err
	}

	for _, motor := range found {
		updatedOn := motor.UpdatedOn
		if updatedOn == "" {
			updatedOn = epoch
		}
		// The search endpoint cannot filter by date, so the cutoff is
		// applied here. String comparison works for YYYY-MM-DD stamps.
		if updatedOn < since {
			continue
		}

		motors[motor.MotorID] = motor
		result.MotorsUpdated++

		count, err := s.downloadMotor(ctx, motor, simfiles)
		if err != nil {
			util.WarnLog("Download failed for %s %s: %v", mfr.Name, motor.CommonName, err)
			continue
		}
		result.FilesDownloaded += count
		if count > 0 {
			util.DebugLog("Downloaded %d files for %s %s", count, mfr.Name, motor.CommonName)
		}
	}
	return nil
}

func (s *Syncer) downloadMotor(ctx context.Context, motor MotorMetadata,
	simfiles map[string]SimfileInfo) (int, error) {

	results, err := s.client.Download(ctx, motor.MotorID, s.Format)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, res := range results {
		if res.SimfileID == "" || res.Data == "" {
			continue
		}
		simfiles[res.SimfileID] = SimfileInfo{
			MotorID: motor.MotorID,
			Format:  res.Format,
			Source:  res.Source,
			License: res.License,
			InfoURL: res.InfoURL,
			DataURL: res.DataURL,
		}

		data, err := DecodePayload(res)
		if err != nil {
			util.WarnLog("%v", err)
			continue
		}
		path := s.cache.SimfilePath(motor.Manufacturer, motor.CommonName, res.SimfileID, res.Format)
		if err := s.cache.WriteSimfile(path, data); err != nil {
			util.WarnLog("Failed to write %s: %v", path, err)
			continue
		}
		saved++
	}
	return saved, nil
}
