package video

import "errors"

// Error kinds. Both are terminal for the request that produced them.
var (
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrMetadataUnavailable   = errors.New("metadata unavailable")
)

// UnavailableError reports an upstream failure. Its message is the upstream
// description, unchanged, so it can be handed to clients as is.
type UnavailableError struct {
	Kind error // ErrTranscriptUnavailable or ErrMetadataUnavailable
	Err  error
}

func (e *UnavailableError) Error() string { return e.Err.Error() }

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *UnavailableError) Unwrap() []error { return []error{e.Kind, e.Err} }

func transcriptUnavailable(err error) error {
	return &UnavailableError{Kind: ErrTranscriptUnavailable, Err: err}
}

func metadataUnavailable(err error) error {
	return &UnavailableError{Kind: ErrMetadataUnavailable, Err: err}
}
