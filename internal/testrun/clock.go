package testrun

import "time"

// epoch anchors the monotonic durations recorded in teststatus.Result:
// spec.md requires start/end as "nanosecond monotonic durations since an
// arbitrary epoch", and time.Since already rides Go's monotonic clock
// reading as long as both readings come from time.Now values taken after
// process start, so epoch only needs to predate every call to now().
var epoch = time.Now()

func now() time.Duration {
	return time.Since(epoch)
}
