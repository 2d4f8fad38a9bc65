package submission

import "time"

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules on the runtime timer heap.
func RealScheduler() Scheduler {
	return realScheduler{}
}
