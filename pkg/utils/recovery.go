package utils

import (
	"fmt"
	"os"
	"runtime/debug"

	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"go.uber.org/zap"
)

// RecoverFn is a function that handles a recovered panic
type RecoverFn func(r interface{}, stack []byte)

// SafeGo executes the given function in a goroutine with panic recovery
func SafeGo(fn func(), onPanic RecoverFn) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				if onPanic != nil {
					onPanic(r, stack)
				} else {
					// Default handler logs the panic
					if logger.Log != nil {
						logger.Log.Error("[panic] Recovered from panic in goroutine",
							zap.Any("panic", r),
							zap.ByteString("stack", stack),
						)
					} else {
						// Fallback to printing to stderr if logger isn't available
						fmt.Fprintf(os.Stderr, "[PANIC] Recovered from panic in goroutine: %v\n%s\n", r, stack)
					}
				}
			}
		}()
		fn()
	}()
}
