package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionTypeSignIn  = "signin"
	SessionTypeSignOut = "signout"

	SignInStatusPresent    = "present"
	SignOutStatusCompleted = "completed"

	VerificationFingerprint = "fingerprint"
	VerificationFace        = "face"
)

// AttendanceSession is an operator-opened window during which verification
// attempts are attributed to one course and one action type.
type AttendanceSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	Type        string             `bson:"type" json:"type"` // signin | signout
	OpenedBy    string             `bson:"openedBy" json:"openedBy"`
	OpenedAt    time.Time          `bson:"openedAt" json:"openedAt"`
	ClosedAt    *time.Time         `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	MarkedCount int                `bson:"markedCount" json:"markedCount"`
}

// AttendanceRecord is the one record per (student, course, date). Created on
// first sign-in, mutated in place by the matching sign-out.
type AttendanceRecord struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID            primitive.ObjectID `bson:"studentId" json:"studentId"`
	CourseID             primitive.ObjectID `bson:"courseId" json:"courseId"`
	Date                 string             `bson:"date" json:"date"` // YYYY-MM-DD, local day bucket
	SignInTime           *time.Time         `bson:"signInTime,omitempty" json:"signInTime,omitempty"`
	SignInStatus         string             `bson:"signInStatus,omitempty" json:"signInStatus,omitempty"`
	SignOutTime          *time.Time         `bson:"signOutTime,omitempty" json:"signOutTime,omitempty"`
	SignOutStatus        string             `bson:"signOutStatus,omitempty" json:"signOutStatus,omitempty"`
	VerificationMethod   string             `bson:"verificationMethod" json:"verificationMethod"`
	BiometricLabel       string             `bson:"biometricLabel,omitempty" json:"biometricLabel,omitempty"`
	TotalDurationMinutes int                `bson:"totalDurationMinutes" json:"totalDurationMinutes"`
}

// SessionReport is the aggregate written by the background job when a
// session closes.
type SessionReport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"sessionId" json:"sessionId"`
	CourseID     primitive.ObjectID `bson:"courseId" json:"courseId"`
	Type         string             `bson:"type" json:"type"`
	Date         string             `bson:"date" json:"date"`
	MarkedCount  int                `bson:"markedCount" json:"markedCount"`
	AbsentCount  int                `bson:"absentCount" json:"absentCount"`
	GeneratedAt  time.Time          `bson:"generatedAt" json:"generatedAt"`
	StudentMarks []StudentMark      `bson:"studentMarks" json:"studentMarks"`
}

// StudentMark is one row of a session report.
type StudentMark struct {
	StudentID  primitive.ObjectID `bson:"studentId" json:"studentId"`
	Name       string             `bson:"name" json:"name"`
	Code       string             `bson:"code" json:"code"`
	SignedIn   bool               `bson:"signedIn" json:"signedIn"`
	SignedOut  bool               `bson:"signedOut" json:"signedOut"`
	DurationMn int                `bson:"durationMinutes" json:"durationMinutes"`
}
