// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/autocrm/autocrm/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. A panic is logged with its
// stack instead of crashing the process; done, when non-nil, is closed on exit.
func SafeGo(log logger.Interface, name string, fn func(), done ...chan<- struct{}) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
			for _, ch := range done {
				close(ch)
			}
		}()
		fn()
	}()
}
