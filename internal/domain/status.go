package domain

import "strings"

// TransactionStatus is the canonical lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusPending   TransactionStatus = "pending"
	StatusCancelled TransactionStatus = "cancelled"
)

var validStatuses = map[TransactionStatus]bool{
	StatusCompleted: true,
	StatusFailed:    true,
	StatusPending:   true,
	StatusCancelled: true,
}

// statusSynonyms maps lower-cased free-form tokens to canonical statuses.
var statusSynonyms = map[string]TransactionStatus{
	"completed": StatusCompleted, "complete": StatusCompleted,
	"success": StatusCompleted, "done": StatusCompleted, "ok": StatusCompleted,
	"failed": StatusFailed, "fail": StatusFailed,
	"error": StatusFailed, "rejected": StatusFailed,
	"pending": StatusPending, "processing": StatusPending, "ongoing": StatusPending,
	"cancelled": StatusCancelled, "canceled": StatusCancelled, "aborted": StatusCancelled,
}

// ParseStatus resolves a free-form token to a canonical status. Lookup is
// case-insensitive; unmatched tokens return ok=false, never an error.
func ParseStatus(raw string) (TransactionStatus, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", false
	}

	if s, ok := statusSynonyms[token]; ok {
		return s, true
	}

	if s := TransactionStatus(token); validStatuses[s] {
		return s, true
	}

	return "", false
}

// Valid reports whether s is a member of the canonical status set.
func (s TransactionStatus) Valid() bool {
	return validStatuses[s]
}

func (s TransactionStatus) String() string {
	return string(s)
}
