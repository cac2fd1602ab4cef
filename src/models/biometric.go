package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slot labels for a full enrollment: five finger captures. Face samples
// are accepted for verification but are not part of the enrolled set.
var EnrollmentSlotLabels = []string{
	"right-thumb",
	"right-index",
	"right-middle",
	"left-thumb",
	"left-index",
}

// BiometricSample is a freshly captured sample. It lives in memory only,
// owned by the capture flow until accepted into a slot or discarded.
type BiometricSample struct {
	Kind         string    `json:"kind" validate:"required"` // finger slot label or "face"
	ImageData    []byte    `json:"imageData" validate:"required"`
	QualityScore int       `json:"qualityScore" validate:"min=0,max=100"`
	CapturedAt   time.Time `json:"capturedAt"`
}

// CandidateRecord is a persisted enrolled sample. Immutable once written;
// re-enrollment replaces the owner's whole set.
type CandidateRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Label     string             `bson:"label" json:"label"`
	ImageData []byte             `bson:"imageData" json:"-"`
	Quality   int                `bson:"quality" json:"quality"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MatchOutcome is the result of resolving a live sample against the
// enrolled population. Derived, never persisted.
type MatchOutcome struct {
	Matched       bool             `json:"matched"`
	Candidate     *CandidateRecord `json:"candidate,omitempty"`
	StudentName   string           `json:"studentName,omitempty"`
	Score         float64          `json:"score"`
	Confidence    float64          `json:"confidence"`
	TotalCompared int              `json:"totalCompared"`
}

// EnrollmentSlotState tracks one capture position during enrollment.
type EnrollmentSlotState string

const (
	SlotEmpty             EnrollmentSlotState = "empty"
	SlotCapturing         EnrollmentSlotState = "capturing"
	SlotRejectedQuality   EnrollmentSlotState = "rejected-quality"
	SlotRejectedDuplicate EnrollmentSlotState = "rejected-duplicate"
	SlotCaptured          EnrollmentSlotState = "captured"
)

// EnrollmentSlot is one designated finger capture position.
type EnrollmentSlot struct {
	Label  string              `json:"label"`
	State  EnrollmentSlotState `json:"state"`
	Sample *BiometricSample    `json:"-"`
	Reason string              `json:"reason,omitempty"` // set on rejection
}
