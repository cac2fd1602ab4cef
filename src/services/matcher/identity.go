package matcher

import (
	"context"
	"fmt"

	"Backend-Bioattend-003/src/models"
)

// IdentityMatcher resolves "who is this sample" against the full enrolled
// population in one batch call, then applies the verification threshold.
type IdentityMatcher struct {
	scorer Scorer
	cache  *PopulationCache
	cfg    Config
}

func NewIdentityMatcher(scorer Scorer, cache *PopulationCache, cfg Config) *IdentityMatcher {
	return &IdentityMatcher{scorer: scorer, cache: cache, cfg: cfg}
}

// Resolve matches a live sample against every enrolled candidate. The
// quality gate runs first so a bad capture never reaches the network.
func (m *IdentityMatcher) Resolve(ctx context.Context, sample *models.BiometricSample) (*models.MatchOutcome, error) {
	if sample.QualityScore < m.cfg.MinCaptureQuality {
		return nil, fmt.Errorf("%w: %d < %d", ErrCaptureQualityTooLow, sample.QualityScore, m.cfg.MinCaptureQuality)
	}

	population, err := m.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(population) == 0 {
		return nil, ErrNoCandidatesEnrolled
	}

	resp, err := m.scorer.Match(ctx, sample.ImageData, toEntries(population), false)
	if err != nil {
		return nil, err
	}

	outcome := &models.MatchOutcome{
		TotalCompared: len(population),
	}
	if resp.BestMatch != nil {
		outcome.Score = resp.BestMatch.Score
	}
	if !resp.Matched || resp.BestMatch.Score < m.cfg.VerifyThreshold {
		return outcome, nil
	}

	outcome.Matched = true
	outcome.Confidence = resp.BestMatch.Score // monotonic, already 0-100
	outcome.StudentName = resp.BestMatch.StudentName
	outcome.Candidate = findCandidate(population, resp.BestMatch.ID)
	if outcome.Candidate == nil {
		return nil, &Error{Message: "bestMatch id not in submitted population"}
	}
	return outcome, nil
}

func toEntries(population []models.CandidateRecord) []DatabaseEntry {
	entries := make([]DatabaseEntry, 0, len(population))
	for _, rec := range population {
		entries = append(entries, DatabaseEntry{
			ID:        rec.ID.Hex(),
			OwnerID:   rec.OwnerID.Hex(),
			Label:     rec.Label,
			ImageData: rec.ImageData,
		})
	}
	return entries
}

func findCandidate(population []models.CandidateRecord, idHex string) *models.CandidateRecord {
	for i := range population {
		if population[i].ID.Hex() == idHex {
			return &population[i]
		}
	}
	return nil
}
