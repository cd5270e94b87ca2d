package utils

import (
	"sync"
	"testing"
	"time"

	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"go.uber.org/zap/zaptest"
)

// setupTestLogger sets up a test logger and returns a function to restore the original logger
func setupTestLogger(t *testing.T) func() {
	testLogger := zaptest.NewLogger(t)
	originalLogger := logger.Log
	logger.Log = testLogger
	return func() {
		logger.Log = originalLogger
	}
}

func TestSafeGo_NoPanic(t *testing.T) {
	cleanup := setupTestLogger(t)
	defer cleanup()

	successChan := make(chan bool, 1)
	SafeGo(func() {
		successChan <- true
	}, nil)

	select {
	case <-successChan:
	case <-time.After(time.Second):
		t.Error("Function did not execute in time")
	}
}

func TestSafeGo_PanicInvokesHandler(t *testing.T) {
	cleanup := setupTestLogger(t)
	defer cleanup()

	var wg sync.WaitGroup
	wg.Add(1)

	var recovered interface{}
	SafeGo(func() {
		panic("boom")
	}, func(r interface{}, stack []byte) {
		recovered = r
		if len(stack) == 0 {
			t.Error("Expected a stack trace with the recovered panic")
		}
		wg.Done()
	})

	wg.Wait()
	if recovered != "boom" {
		t.Errorf("Expected recovered value %q, got %v", "boom", recovered)
	}
}

func TestSafeGo_PanicDefaultHandler(t *testing.T) {
	cleanup := setupTestLogger(t)
	defer cleanup()

	done := make(chan struct{})
	SafeGo(func() {
		defer close(done)
		panic("default handler")
	}, nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Panicking goroutine did not finish in time")
	}
}
