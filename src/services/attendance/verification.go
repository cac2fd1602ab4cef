package attendance

import (
	"context"

	"Backend-Bioattend-003/src/models"
	"Backend-Bioattend-003/src/services/students"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolver is the identity-matching step Verify depends on.
type Resolver interface {
	Resolve(ctx context.Context, sample *models.BiometricSample) (*models.MatchOutcome, error)
}

var resolver Resolver

// Init wires the identity matcher built in main.
func Init(r Resolver) {
	resolver = r
}

// VerifyResult is what the operator station shows after one attempt.
type VerifyResult struct {
	Outcome *models.MatchOutcome     `json:"outcome"`
	Student *models.Student          `json:"student,omitempty"`
	Record  *models.AttendanceRecord `json:"record,omitempty"`
}

// gateRegistered downgrades a successful biometric match when the resolved
// identity is not registered for the session's course. The record
// transaction must not run in that case.
func gateRegistered(outcome *models.MatchOutcome, registered bool) error {
	if outcome.Matched && !registered {
		return ErrNotRegisteredForCourse
	}
	return nil
}

// Verify runs one verification attempt against an open session: resolve
// the identity, check course registration, then apply the record
// transaction. No attendance mutation happens unless every step passes.
func Verify(ctx context.Context, sessionID string, sample *models.BiometricSample) (*VerifyResult, error) {
	session, err := GetOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := resolver.Resolve(ctx, sample)
	if err != nil {
		return nil, err
	}
	if !outcome.Matched {
		return &VerifyResult{Outcome: outcome}, nil
	}

	ownerID := outcome.Candidate.OwnerID
	registered, err := students.IsRegisteredForCourse(ctx, ownerID, session.CourseID)
	if err != nil {
		return nil, err
	}
	if err := gateRegistered(outcome, registered); err != nil {
		return nil, err
	}

	student, err := lookupStudent(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	method := models.VerificationFingerprint
	if sample.Kind == "face" {
		method = models.VerificationFace
	}

	record, err := Apply(ctx, session, ownerID, method, outcome.Candidate.Label)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{Outcome: outcome, Student: student, Record: record}, nil
}

func lookupStudent(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return students.GetStudentByID(ctx, id.Hex())
}
