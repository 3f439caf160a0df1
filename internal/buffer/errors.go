package buffer

import "errors"

var (
	// ErrNoFilename is returned by Save when the buffer was never named.
	ErrNoFilename = errors.New("no filename set")

	// ErrUnknownChange means a document reported a change kind outside the
	// known set. It indicates a broken document implementation.
	ErrUnknownChange = errors.New("unknown document change")
)
