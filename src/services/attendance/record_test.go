package attendance

import (
	"testing"
	"time"

	"Backend-Bioattend-003/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInCreatesPresentRecord(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	rec := &models.AttendanceRecord{}

	err := applySignIn(rec, now, models.VerificationFingerprint, "right-thumb")
	require.NoError(t, err)

	assert.Equal(t, models.SignInStatusPresent, rec.SignInStatus)
	assert.Equal(t, now, *rec.SignInTime)
	assert.Equal(t, models.VerificationFingerprint, rec.VerificationMethod)
	assert.Equal(t, "right-thumb", rec.BiometricLabel)
	assert.Nil(t, rec.SignOutTime)
}

func TestSecondSignInIsRejectedAndLeavesRecordUntouched(t *testing.T) {
	first := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	rec := &models.AttendanceRecord{}
	require.NoError(t, applySignIn(rec, first, models.VerificationFingerprint, "right-thumb"))

	err := applySignIn(rec, first.Add(10*time.Minute), models.VerificationFace, "face")

	var already *AlreadySignedInError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, first, already.At)
	// the original sign-in is unchanged by the second attempt
	assert.Equal(t, first, *rec.SignInTime)
	assert.Equal(t, models.VerificationFingerprint, rec.VerificationMethod)
}

func TestSignOutWithoutSignInIsRejected(t *testing.T) {
	rec := &models.AttendanceRecord{}
	err := applySignOut(rec, time.Now())
	assert.ErrorIs(t, err, ErrNotYetSignedIn)
	assert.Nil(t, rec.SignOutTime)
}

func TestSignOutComputesDurationOnce(t *testing.T) {
	signIn := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	rec := &models.AttendanceRecord{}
	require.NoError(t, applySignIn(rec, signIn, models.VerificationFingerprint, "right-thumb"))

	signOut := signIn.Add(95 * time.Minute)
	require.NoError(t, applySignOut(rec, signOut))

	assert.Equal(t, models.SignOutStatusCompleted, rec.SignOutStatus)
	assert.Equal(t, 95, rec.TotalDurationMinutes)

	// a repeated sign-out neither mutates the record nor recomputes
	err := applySignOut(rec, signOut.Add(30*time.Minute))
	var already *AlreadySignedOutError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, signOut, already.At)
	assert.Equal(t, 95, rec.TotalDurationMinutes)
}

func TestSignOutDurationRoundsDown(t *testing.T) {
	signIn := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	rec := &models.AttendanceRecord{}
	require.NoError(t, applySignIn(rec, signIn, models.VerificationFingerprint, "right-thumb"))

	require.NoError(t, applySignOut(rec, signIn.Add(95*time.Minute+59*time.Second)))
	assert.Equal(t, 95, rec.TotalDurationMinutes)
}

func TestGateRegisteredDowngradesUnregisteredMatch(t *testing.T) {
	outcome := &models.MatchOutcome{Matched: true, Score: 90}

	err := gateRegistered(outcome, false)
	assert.ErrorIs(t, err, ErrNotRegisteredForCourse)

	assert.NoError(t, gateRegistered(outcome, true))
	assert.NoError(t, gateRegistered(&models.MatchOutcome{Matched: false}, false))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2026-08-31", DayKey(time.Date(2026, 8, 31, 23, 59, 0, 0, time.Local)))
}
