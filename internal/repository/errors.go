// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrHasDependents signals that a delete cannot proceed due
// to existing dependent records (e.g. deleting a project with
// milestones), while ErrBadReference indicates that a write referenced
// a client or project that does not exist.
package repository

import (
	"errors"
	"strings"
)

// ErrSlugTaken is returned when a blog or portfolio create/update would
// collide with a different row's slug. Handlers should translate this
// into an HTTP 409 response.
var ErrSlugTaken = errors.New("slug already in use")

// ErrBadReference is returned when a write names a client or project id
// that does not exist. Handlers should translate this into an HTTP 409
// response identifying the dangling reference.
var ErrBadReference = errors.New("referenced record does not exist")

// ErrHasDependents is returned when a delete cannot be performed because
// dependent records still exist, such as attempting to delete a project
// that still has milestones or payments. The policy is to block the
// delete rather than cascade. Handlers should translate this into an
// HTTP 409 response.
var ErrHasDependents = errors.New("dependent records exist")

// ErrBadTransition is returned when a status update names a transition
// the milestone state machine does not allow (e.g. leaving a terminal
// state). Handlers should translate this into an HTTP 409 response.
var ErrBadTransition = errors.New("invalid status transition")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062), which is how unique slug and email collisions surface
// from the driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
