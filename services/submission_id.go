package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSubmissionID allocates a submission identifier of the form
// SUB_<year>_<token>. The token is a v4 UUID without dashes, so two
// allocations collide only if crypto/rand does. Uniqueness is still enforced
// by the database constraint; a collision there is retried with a fresh ID.
func NewSubmissionID(now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("SUB_%d_%s", now.Year(), token)
}
