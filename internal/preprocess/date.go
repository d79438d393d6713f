package preprocess

import (
	"errors"
	"fmt"
	"time"
)

// tweetTimeLayout is the created_at layout used by the tweet source,
// e.g. "Mon Jan 22 22:01:10 +0000 2018".
const tweetTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// ErrBadTimestamp reports a raw date that does not match the source layout.
var ErrBadTimestamp = errors.New("timestamp does not match tweet date format")

// CleanDate converts a source timestamp into the sortable YYYYMMDD form. The
// calendar date is kept as written; no timezone conversion is applied.
func CleanDate(raw string) (string, error) {
	t, err := time.Parse(tweetTimeLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
	}
	return t.Format("20060102"), nil
}
