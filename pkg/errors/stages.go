package errors

import "errors"

// Pipeline stage errors.
//
// The processing pipeline distinguishes fatal stages from absorbed ones.
// Transcription and summarization failures abort the run; extraction and
// persistence failures degrade the result instead. Calendar errors are scoped
// to the calendar operation only.
var (
	// ErrTranscription indicates the speech-to-text stage failed: provider
	// outage, unsupported format, or empty transcript. Fatal to the run.
	ErrTranscription = errors.New("transcription failed")

	// ErrSummarization indicates the summary stage returned empty content or
	// the provider call failed. Fatal to the run.
	ErrSummarization = errors.New("summarization failed")

	// ErrExtraction indicates deadline extraction failed. Callers absorb this
	// and continue with an empty deadline list.
	ErrExtraction = errors.New("deadline extraction failed")

	// ErrPersistence indicates the record store write failed. Callers absorb
	// this and return the in-memory result without a meeting id.
	ErrPersistence = errors.New("persistence failed")

	// ErrCalendarAuth indicates the calendar service is unreachable or has no
	// valid credentials. Fatal to the whole calendar batch.
	ErrCalendarAuth = errors.New("calendar service unavailable")
)

// IsTranscription reports whether any error in err's chain is ErrTranscription.
func IsTranscription(err error) bool {
	return errors.Is(err, ErrTranscription)
}

// IsSummarization reports whether any error in err's chain is ErrSummarization.
func IsSummarization(err error) bool {
	return errors.Is(err, ErrSummarization)
}

// IsExtraction reports whether any error in err's chain is ErrExtraction.
func IsExtraction(err error) bool {
	return errors.Is(err, ErrExtraction)
}

// IsPersistence reports whether any error in err's chain is ErrPersistence.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsCalendarAuth reports whether any error in err's chain is ErrCalendarAuth.
func IsCalendarAuth(err error) bool {
	return errors.Is(err, ErrCalendarAuth)
}
