package repository

import "errors"

var (
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	// ErrStatusConflict means the row changed status between read and write.
	ErrStatusConflict = errors.New("status changed concurrently")
)
