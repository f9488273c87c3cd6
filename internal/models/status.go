package models

// Status is the derived compliance state of an expirable record.
type Status string

const (
	StatusValid    Status = "VALID"
	StatusExpiring Status = "EXPIRING"
	StatusExpired  Status = "EXPIRED"
)
