package persistence

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrCommitmentNotFound = errors.New("commitment not found")
)
