package services

import "errors"

// Stable error kinds exposed to the transport layer. Controllers map these
// to HTTP statuses; anything else is an internal fault and stays logged.
var (
	// input errors
	ErrPayloadTooLarge   = errors.New("upload exceeds the configured size limit")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrUsageNotFound     = errors.New("no usage record")

	// authorization errors
	ErrForbidden = errors.New("not allowed")

	// policy errors
	ErrContentRejected = errors.New("uploading prohibited content is not allowed")

	// infrastructure errors
	ErrStorageWriteFailed = errors.New("failed to write file to local storage")
	ErrPersistenceFailed  = errors.New("failed to persist file metadata")
)
