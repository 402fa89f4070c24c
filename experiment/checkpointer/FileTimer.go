package checkpointer

import (
	"fmt"
	"time"
)

// timeLayout sorts lexically in time order
const timeLayout = "20060102T150405.000000000"

// FileTimer returns a function which names each checkpoint by the UTC
// time it is taken at, down to the nanosecond, so that checkpoint
// files sort by time. If now is nil, time.Now is used.
func FileTimer(filename, extension string, now func() time.Time) func() string {
	if now == nil {
		now = time.Now
	}

	return func() string {
		stamp := now().UTC().Format(timeLayout)
		return fmt.Sprintf("%v%v%v", filename, stamp, extension)
	}
}
