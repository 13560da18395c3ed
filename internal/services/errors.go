package services

import "errors"

var (
	// ErrUnsupportedFormat is returned for uploads whose extension is not pdf, doc or docx.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrExtractionFailed is returned when a supported document could not be read.
	ErrExtractionFailed = errors.New("failed to extract text from document")
	// ErrGenerationFailed covers transport, auth and quota failures of the generative API.
	ErrGenerationFailed = errors.New("AI analysis failed, please try again")
	// ErrValidation marks missing or conflicting request fields.
	ErrValidation = errors.New("invalid request")
)
