package domain

import "time"

// AuditEntry is an immutable record of one login attempt.
// Username is whatever was submitted and may not match a real user.
type AuditEntry struct {
	ID        int64
	Username  string
	Success   bool
	IPAddress string
	LoginTime time.Time
}
