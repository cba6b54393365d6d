package model

import "errors"

var (
	// ErrNotBuilt is returned by TrainBatch when called before Build.
	ErrNotBuilt = errors.New("model: train_batch called on a non-built model")
	// ErrAlreadyBuilt is returned by Build when called a second time.
	ErrAlreadyBuilt = errors.New("model: build called on an already-built model")
	// ErrBatchSizeMismatch is returned when a caller's input/expected batch
	// does not contain exactly BatchSize rows.
	ErrBatchSizeMismatch = errors.New("model: batch row count does not match the compiled batch size")
	// ErrWidthMismatch is returned when a caller's row width does not match
	// the model's input or output width.
	ErrWidthMismatch = errors.New("model: row width does not match the model's input or output")
)
