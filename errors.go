package redo

import "errors"

// Namespace prefixes every sentinel error in this package.
const Namespace = "redo"

var (
	// ErrNoSuchBranch is returned by History.GoTo when the requested branch
	// id does not exist.
	ErrNoSuchBranch = errors.New(Namespace + ": no such branch")

	// ErrNoTimestamps is returned by History.GoToTime when the history was
	// built without timestamps enabled, so there is nothing to search by.
	ErrNoTimestamps = errors.New(Namespace + ": timestamps are not enabled on this history")

	// ErrNoTarget is returned by History.GoTo when the requested cursor lies
	// outside the target branch, and by History.GoToTime when the history
	// contains no timestamped command to travel to.
	ErrNoTarget = errors.New(Namespace + ": history has no commands to travel to")
)
