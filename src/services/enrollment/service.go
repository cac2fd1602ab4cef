package enrollment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/candidates"
	"Backend-Bioattend-003/src/services/matcher"
	"Backend-Bioattend-003/src/services/students"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrSessionNotFound   = errors.New("enrollment session not found")
	ErrUnknownSlot       = errors.New("unknown enrollment slot")
	ErrSessionIncomplete = errors.New("enrollment incomplete: not all slots captured")
)

// DuplicateChecker is what the session needs from the duplicate detector.
type DuplicateChecker interface {
	Check(ctx context.Context, sample *models.BiometricSample, captured []matcher.SessionSample, ownerID primitive.ObjectID) error
}

// Session is one student's in-progress enrollment: the fixed slot set and
// the samples accepted so far. Samples stay in memory until Complete.
type Session struct {
	ID        string
	StudentID primitive.ObjectID
	Slots     []*models.EnrollmentSlot
	OpenedAt  time.Time
}

func newSession(studentID primitive.ObjectID) *Session {
	slots := make([]*models.EnrollmentSlot, 0, len(models.EnrollmentSlotLabels))
	for _, label := range models.EnrollmentSlotLabels {
		slots = append(slots, &models.EnrollmentSlot{Label: label, State: models.SlotEmpty})
	}
	return &Session{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Slots:     slots,
		OpenedAt:  time.Now(),
	}
}

func (s *Session) slot(label string) *models.EnrollmentSlot {
	for _, sl := range s.Slots {
		if sl.Label == label {
			return sl
		}
	}
	return nil
}

func (s *Session) capturedSamples() []matcher.SessionSample {
	var out []matcher.SessionSample
	for _, sl := range s.Slots {
		if sl.State == models.SlotCaptured && sl.Sample != nil {
			out = append(out, matcher.SessionSample{Label: sl.Label, ImageData: sl.Sample.ImageData})
		}
	}
	return out
}

// Complete reports whether every slot holds an accepted sample.
func (s *Session) Complete() bool {
	for _, sl := range s.Slots {
		if sl.State != models.SlotCaptured {
			return false
		}
	}
	return true
}

// Service owns the open enrollment sessions, the duplicate detector and
// the population cache it invalidates after a persist.
type Service struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	checker    DuplicateChecker
	cache      *matcher.PopulationCache
	minQuality int
}

func NewService(checker DuplicateChecker, cache *matcher.PopulationCache, minQuality int) *Service {
	return &Service{
		sessions:   make(map[string]*Session),
		checker:    checker,
		cache:      cache,
		minQuality: minQuality,
	}
}

// Default is wired in main; controllers go through it.
var Default *Service

func Init(checker DuplicateChecker, cache *matcher.PopulationCache, minQuality int) {
	Default = NewService(checker, cache, minQuality)
}

// CacheInvalidate drops the population snapshot after an out-of-band
// candidate write, e.g. deleting a set before re-enrollment.
func (s *Service) CacheInvalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

// Open starts an enrollment session for the student and pre-warms the
// population cache so the persisted-population check usually finds a
// fresh snapshot waiting.
func (s *Service) Open(studentID primitive.ObjectID) *Session {
	sess := newSession(studentID)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Prewarm()
	}
	return sess
}

// Get returns an open session by id.
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Abort discards an open session and every sample it held.
func (s *Service) Abort(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Submit runs one captured sample through the quality gate and the
// duplicate detector, then accepts it into its slot. Quality and
// duplicate rejections leave the slot re-capturable; a matcher outage
// leaves it Empty so the attempt can simply be repeated.
func (s *Service) Submit(ctx context.Context, sessionID string, sample *models.BiometricSample) (*models.EnrollmentSlot, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	slot := sess.slot(sample.Kind)
	if slot == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, sample.Kind)
	}
	if slot.State == models.SlotCaptured {
		return slot, fmt.Errorf("%w: %s", matcher.ErrSlotAlreadyCaptured, slot.Label)
	}

	slot.State = models.SlotCapturing
	slot.Reason = ""

	if sample.QualityScore < s.minQuality {
		slot.State = models.SlotRejectedQuality
		slot.Reason = fmt.Sprintf("quality %d below minimum %d", sample.QualityScore, s.minQuality)
		return slot, fmt.Errorf("%w: %d < %d", matcher.ErrCaptureQualityTooLow, sample.QualityScore, s.minQuality)
	}

	if err := s.checker.Check(ctx, sample, sess.capturedSamples(), sess.StudentID); err != nil {
		var dup *matcher.DuplicateError
		if errors.As(err, &dup) {
			slot.State = models.SlotRejectedDuplicate
			slot.Reason = dup.Error()
		} else {
			slot.State = models.SlotEmpty
		}
		return slot, err
	}

	slot.Sample = sample
	slot.State = models.SlotCaptured
	return slot, nil
}

// Persist writes the completed slot set as one candidate batch, flags the
// student enrolled, invalidates the population cache and closes the
// session. Nothing is written before the last slot is captured.
func (s *Service) Persist(ctx context.Context, sessionID string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if !sess.Complete() {
		return ErrSessionIncomplete
	}

	records := make([]models.CandidateRecord, 0, len(sess.Slots))
	for _, slot := range sess.Slots {
		records = append(records, models.CandidateRecord{
			OwnerID:   sess.StudentID,
			Label:     slot.Label,
			ImageData: slot.Sample.ImageData,
			Quality:   slot.Sample.QualityScore,
		})
	}

	if err := candidates.InsertSet(ctx, records); err != nil {
		return err
	}
	if err := students.SetEnrolled(ctx, sess.StudentID, true); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	s.Abort(sessionID)
	return nil
}
