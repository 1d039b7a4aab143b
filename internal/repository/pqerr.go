package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a violated unique
// constraint. The constraint is authoritative for duplicate detection: no
// repository pre-checks existence before inserting, so a race between two
// identical inserts leaves exactly one row and hands the loser this code.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is the store rejecting a duplicate.
// This is the "insert-or-reject-duplicate" contract every like/follow/block
// repository relies on.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
