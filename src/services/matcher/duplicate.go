package matcher

import (
	"bytes"
	"context"
	"fmt"

	"Backend-Bioattend-003/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionSample is a sample already accepted in the current enrollment
// session (same owner, another slot).
type SessionSample struct {
	Label     string
	ImageData []byte
}

// DuplicateDetector decides, before a sample is written to an enrollment
// slot, whether the same physical trait is already registered. Duplicate
// checks run at a stricter threshold than verification: a false "unique"
// during enrollment is worse than a false "duplicate" prompting a retry.
type DuplicateDetector struct {
	scorer Scorer
	cache  *PopulationCache
	cfg    Config
}

func NewDuplicateDetector(scorer Scorer, cache *PopulationCache, cfg Config) *DuplicateDetector {
	return &DuplicateDetector{scorer: scorer, cache: cache, cfg: cfg}
}

// Check returns nil when the sample may be accepted into its slot.
// Rejections come back as ErrSlotAlreadyCaptured or *DuplicateError;
// transport failures as ErrMatcherUnavailable / *Error.
func (d *DuplicateDetector) Check(ctx context.Context, sample *models.BiometricSample, captured []SessionSample, ownerID primitive.ObjectID) error {
	// target slot already filled, no network call
	for _, s := range captured {
		if s.Label == sample.Kind {
			return fmt.Errorf("%w: %s", ErrSlotAlreadyCaptured, sample.Kind)
		}
	}

	// literal reuse of an earlier capture, no network call
	// a genuine re-scan of the same finger has different bytes and is
	// left to the scored checks below
	for _, s := range captured {
		if bytes.Equal(s.ImageData, sample.ImageData) {
			return &DuplicateError{ConflictingLabel: s.Label, Reason: "identical capture resubmitted"}
		}
	}

	// score against the session's other captured slots
	if len(captured) > 0 {
		entries := make([]DatabaseEntry, 0, len(captured))
		for i, s := range captured {
			entries = append(entries, DatabaseEntry{
				ID:        fmt.Sprintf("session-%d", i),
				OwnerID:   ownerID.Hex(),
				Label:     s.Label,
				ImageData: s.ImageData,
			})
		}
		resp, err := d.scorer.Match(ctx, sample.ImageData, entries, true)
		if err != nil {
			return err
		}
		if resp.Matched && resp.BestMatch.Score >= d.cfg.DuplicateThreshold {
			return &DuplicateError{ConflictingLabel: resp.BestMatch.Label, Reason: "matches another slot in this session"}
		}
	}

	// score against the full persisted population
	population, err := d.cache.Get(ctx)
	if err != nil {
		return err
	}
	if len(population) == 0 {
		return nil
	}

	resp, err := d.scorer.Match(ctx, sample.ImageData, toEntries(population), true)
	if err != nil {
		return err
	}
	if resp.Matched && resp.BestMatch.Score >= d.cfg.DuplicateThreshold && resp.BestMatch.OwnerID != ownerID.Hex() {
		return &DuplicateError{ConflictingOwner: resp.BestMatch.OwnerID, Reason: "already enrolled for another student"}
	}
	// a best match on the same owner is the re-enrollment path: accept
	return nil
}
