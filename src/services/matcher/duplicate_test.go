package matcher

import (
	"context"
	"testing"

	"Backend-Bioattend-003/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckRejectsFilledSlotWithoutNetworkCall(t *testing.T) {
	scorer := &stubScorer{}
	d := NewDuplicateDetector(scorer, staticCache(nil), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-thumb", ImageData: []byte("new"), QualityScore: 90},
		[]SessionSample{{Label: "right-thumb", ImageData: []byte("old")}},
		primitive.NewObjectID(),
	)

	assert.ErrorIs(t, err, ErrSlotAlreadyCaptured)
	assert.Equal(t, 0, scorer.calls)
}

func TestCheckRejectsIdenticalBytesWithoutNetworkCall(t *testing.T) {
	scorer := &stubScorer{}
	d := NewDuplicateDetector(scorer, staticCache(nil), testConfig())

	image := []byte("raw-capture-bytes")
	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-index", ImageData: image, QualityScore: 90},
		[]SessionSample{{Label: "right-thumb", ImageData: image}},
		primitive.NewObjectID(),
	)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "right-thumb", dup.ConflictingLabel)
	assert.Equal(t, 0, scorer.calls)
}

func TestCheckRejectsSessionScoreMatch(t *testing.T) {
	scorer := &stubScorer{resp: &MatchResponse{
		Success: true,
		Matched: true,
		BestMatch: &BestMatch{
			ID:      "session-0",
			OwnerID: "x",
			Label:   "right-thumb",
			Score:   88,
		},
		TotalCompared: 1,
	}}
	d := NewDuplicateDetector(scorer, staticCache(nil), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-index", ImageData: []byte("different"), QualityScore: 90},
		[]SessionSample{{Label: "right-thumb", ImageData: []byte("other")}},
		primitive.NewObjectID(),
	)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "right-thumb", dup.ConflictingLabel)
	assert.True(t, scorer.lastDup)
}

func TestCheckSessionScoreBelowDuplicateThresholdPasses(t *testing.T) {
	// 60 clears verification (45) but not the stricter duplicate bar (80)
	scorer := &stubScorer{resp: &MatchResponse{
		Success: true,
		Matched: true,
		BestMatch: &BestMatch{
			ID:      "session-0",
			OwnerID: "x",
			Label:   "right-thumb",
			Score:   60,
		},
		TotalCompared: 1,
	}}
	d := NewDuplicateDetector(scorer, staticCache(nil), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-index", ImageData: []byte("different"), QualityScore: 90},
		[]SessionSample{{Label: "right-thumb", ImageData: []byte("other")}},
		primitive.NewObjectID(),
	)

	assert.NoError(t, err)
}

func TestCheckRejectsPersistedMatchForOtherOwner(t *testing.T) {
	population := somePopulation(3)
	otherOwner := population[2].OwnerID
	scorer := &stubScorer{resp: &MatchResponse{
		Success: true,
		Matched: true,
		BestMatch: &BestMatch{
			ID:      population[2].ID.Hex(),
			OwnerID: otherOwner.Hex(),
			Label:   population[2].Label,
			Score:   95,
		},
		TotalCompared: 3,
	}}
	d := NewDuplicateDetector(scorer, staticCache(population), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-thumb", ImageData: []byte("new"), QualityScore: 90},
		nil,
		primitive.NewObjectID(),
	)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, otherOwner.Hex(), dup.ConflictingOwner)
}

func TestCheckAcceptsPersistedMatchForSameOwner(t *testing.T) {
	// the re-enrollment path: the best match is the student themselves
	population := somePopulation(1)
	owner := population[0].OwnerID
	scorer := &stubScorer{resp: &MatchResponse{
		Success: true,
		Matched: true,
		BestMatch: &BestMatch{
			ID:      population[0].ID.Hex(),
			OwnerID: owner.Hex(),
			Label:   population[0].Label,
			Score:   95,
		},
		TotalCompared: 1,
	}}
	d := NewDuplicateDetector(scorer, staticCache(population), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-thumb", ImageData: []byte("new"), QualityScore: 90},
		nil,
		owner,
	)

	assert.NoError(t, err)
}

func TestCheckEmptyPopulationAccepts(t *testing.T) {
	scorer := &stubScorer{}
	d := NewDuplicateDetector(scorer, staticCache(nil), testConfig())

	err := d.Check(context.Background(),
		&models.BiometricSample{Kind: "right-thumb", ImageData: []byte("new"), QualityScore: 90},
		nil,
		primitive.NewObjectID(),
	)

	assert.NoError(t, err)
	assert.Equal(t, 0, scorer.calls)
}
