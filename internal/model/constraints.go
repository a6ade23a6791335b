package model

// Domain constants shared across handler, validation, and storage packages.
const (
	DefaultUploadPrefix         = "v1/"
	DefaultURLExpirationSeconds = 900 // 15 minutes
)
