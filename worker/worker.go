package worker

import (
	"runtime"

	"github.com/getsentry/sentry-go"
)

// Deep enough that a burst of recording flushes at round end does not stall
// the frame loop.
var workerQueue = make(chan func(), runtime.NumCPU()*4)

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	defer sentry.Recover()

	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}

		f()
	}
}

// Submit queues work to be run off the frame loop, such as IO or anything
// CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}
