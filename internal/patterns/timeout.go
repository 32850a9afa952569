package patterns

import "time"

// DefaultTimeout is the default timeout for collaborator HTTP requests.
// Retries are deliberately absent: every gateway action is user-retriable.
const DefaultTimeout = 3 * time.Second

// SessionTimeout bounds the per-request session lookup; the gate fails closed
// when it elapses, so it stays short.
const SessionTimeout = 2 * time.Second
