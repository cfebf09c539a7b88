package submission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	keyPrefix       = "submissions/"
	timestampLayout = "20060102T150405Z"
)

// newKey builds submissions/<utc timestamp>-<unix millis>-<uuid>.json.
// The uuid keeps keys distinct for submissions within the same millisecond.
func newKey(now time.Time) (key, timestamp string) {
	timestamp = now.UTC().Format(timestampLayout)
	key = fmt.Sprintf("%s%s-%d-%s.json", keyPrefix, timestamp, now.UnixMilli(), uuid.NewString())
	return key, timestamp
}
