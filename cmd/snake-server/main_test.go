package main

import (
	"os"
	"testing"
)

func TestStopDoesNotBlockWhenAlreadySignalled(t *testing.T) {
	done := make(chan os.Signal, 1)

	stop(done)
	stop(done)

	if len(done) != 1 {
		t.Fatalf("done holds %d values, want 1", len(done))
	}
	if sig := <-done; sig != nil {
		t.Errorf("got %v, want nil", sig)
	}
}
