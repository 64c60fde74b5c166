//go:build windows

package app

import (
	"fmt"
	"os"
)

// shutdownSignals stop a foreground or daemonized watch run gracefully.
var shutdownSignals = []os.Signal{os.Interrupt}

// stopDaemon terminates the export-watch daemon recorded in the PID file.
// Windows has no SIGTERM equivalent, so the process is killed outright.
func stopDaemon() error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no watch daemon running (could not read PID file: %v)", err)
	}

	if !processExists(pid) {
		os.Remove(pidFilePath())
		return fmt.Errorf("no watch daemon running (PID %d is not active, removed stale PID file)", pid)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process (PID %d): %w", pid, err)
	}

	if err := proc.Kill(); err != nil {
		return fmt.Errorf("failed to stop watch daemon (PID %d): %w", pid, err)
	}

	os.Remove(pidFilePath())
	fmt.Printf("Stopped watch daemon (PID %d)\n", pid)
	return nil
}

// processExists reports whether pid names a live process. FindProcess always
// succeeds on Windows, so a nil signal probes for liveness.
func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(os.Signal(nil)) == nil
}
