package enrollment

import (
	"context"
	"testing"

	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/matcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeChecker struct {
	err   error
	calls int
}

func (f *fakeChecker) Check(ctx context.Context, sample *models.BiometricSample, captured []matcher.SessionSample, ownerID primitive.ObjectID) error {
	f.calls++
	return f.err
}

func sample(kind string, quality int, image string) *models.BiometricSample {
	return &models.BiometricSample{Kind: kind, QualityScore: quality, ImageData: []byte(image)}
}

func TestOpenCreatesAllSlotsEmpty(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	assert.Len(t, sess.Slots, len(models.EnrollmentSlotLabels))
	for _, slot := range sess.Slots {
		assert.Equal(t, models.SlotEmpty, slot.State)
	}
	assert.False(t, sess.Complete())
}

func TestSubmitRejectsLowQualityBeforeDuplicateCheck(t *testing.T) {
	checker := &fakeChecker{}
	svc := NewService(checker, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	slot, err := svc.Submit(context.Background(), sess.ID, sample("right-thumb", 49, "img"))

	assert.ErrorIs(t, err, matcher.ErrCaptureQualityTooLow)
	assert.Equal(t, models.SlotRejectedQuality, slot.State)
	assert.NotEmpty(t, slot.Reason)
	// no duplicate check, hence no network, on a quality rejection
	assert.Equal(t, 0, checker.calls)
}

func TestSubmitAcceptsGoodSample(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	slot, err := svc.Submit(context.Background(), sess.ID, sample("right-thumb", 85, "img"))

	require.NoError(t, err)
	assert.Equal(t, models.SlotCaptured, slot.State)
	require.NotNil(t, slot.Sample)
}

func TestSubmitDuplicateMarksSlotRejected(t *testing.T) {
	checker := &fakeChecker{err: &matcher.DuplicateError{ConflictingLabel: "right-thumb", Reason: "identical capture resubmitted"}}
	svc := NewService(checker, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	slot, err := svc.Submit(context.Background(), sess.ID, sample("right-index", 85, "img"))

	var dup *matcher.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, models.SlotRejectedDuplicate, slot.State)
	assert.Contains(t, slot.Reason, "right-thumb")
}

func TestSubmitMatcherOutageLeavesSlotEmpty(t *testing.T) {
	checker := &fakeChecker{err: matcher.ErrMatcherUnavailable}
	svc := NewService(checker, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	slot, err := svc.Submit(context.Background(), sess.ID, sample("right-thumb", 85, "img"))

	assert.ErrorIs(t, err, matcher.ErrMatcherUnavailable)
	// the attempt can simply be repeated
	assert.Equal(t, models.SlotEmpty, slot.State)
	assert.Nil(t, slot.Sample)
}

func TestSubmitFilledSlotRejected(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	_, err := svc.Submit(context.Background(), sess.ID, sample("right-thumb", 85, "one"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), sess.ID, sample("right-thumb", 85, "two"))
	assert.ErrorIs(t, err, matcher.ErrSlotAlreadyCaptured)
}

func TestSubmitUnknownSlot(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	_, err := svc.Submit(context.Background(), sess.ID, sample("left-pinky", 85, "img"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestSessionCompleteAfterAllSlots(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	for i, label := range models.EnrollmentSlotLabels {
		_, err := svc.Submit(context.Background(), sess.ID, sample(label, 85, string(rune('a'+i))))
		require.NoError(t, err)
	}
	assert.True(t, sess.Complete())
}

func TestRejectedSlotCanBeRecaptured(t *testing.T) {
	checker := &fakeChecker{err: &matcher.DuplicateError{ConflictingLabel: "right-thumb"}}
	svc := NewService(checker, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	_, err := svc.Submit(context.Background(), sess.ID, sample("right-index", 85, "dup"))
	require.Error(t, err)

	checker.err = nil
	slot, err := svc.Submit(context.Background(), sess.ID, sample("right-index", 85, "fresh"))
	require.NoError(t, err)
	assert.Equal(t, models.SlotCaptured, slot.State)
}

func TestPersistRequiresAllSlots(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	err := svc.Persist(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrSessionIncomplete)
}

func TestAbortDiscardsSession(t *testing.T) {
	svc := NewService(&fakeChecker{}, nil, 50)
	sess := svc.Open(primitive.NewObjectID())

	svc.Abort(sess.ID)
	_, err := svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
