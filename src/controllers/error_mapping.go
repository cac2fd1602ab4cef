package controllers

import (
	"errors"

	"Backend-Bioattend-003/src/services/attendance"
	"Backend-Bioattend-003/src/services/enrollment"
	"Backend-Bioattend-003/src/services/matcher"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps engine errors onto HTTP statuses. Every rejection
// keeps its human-readable reason; nothing is swallowed.
func statusForError(err error) int {
	var dup *matcher.DuplicateError
	var signedIn *attendance.AlreadySignedInError
	var signedOut *attendance.AlreadySignedOutError
	var svcErr *matcher.Error

	switch {
	case errors.Is(err, matcher.ErrCaptureQualityTooLow):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &dup),
		errors.Is(err, matcher.ErrSlotAlreadyCaptured),
		errors.As(err, &signedIn),
		errors.As(err, &signedOut),
		errors.Is(err, attendance.ErrSessionAlreadyOpen):
		return fiber.StatusConflict
	case errors.Is(err, matcher.ErrMatcherUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &svcErr):
		return fiber.StatusBadGateway
	case errors.Is(err, matcher.ErrNoCandidatesEnrolled),
		errors.Is(err, attendance.ErrNotRegisteredForCourse),
		errors.Is(err, attendance.ErrNotYetSignedIn),
		errors.Is(err, attendance.ErrNoPendingSignIns),
		errors.Is(err, enrollment.ErrUnknownSlot),
		errors.Is(err, enrollment.ErrSessionIncomplete):
		return fiber.StatusBadRequest
	case errors.Is(err, attendance.ErrSessionNotOpen),
		errors.Is(err, enrollment.ErrSessionNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
