package scheduler

import "errors"

// ErrSchedulerNotRunning is returned when triggering a run on a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")
