package config

type SubmissionStatus string

const (
	SubmissionStatusSent   SubmissionStatus = "sent"
	SubmissionStatusFailed SubmissionStatus = "failed"
)
