package simproc

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	ps "github.com/mitchellh/go-ps"
)

// ProcessControl abstracts OS-level process introspection and signalling so
// teardown logic can be exercised without real processes.
type ProcessControl interface {
	// ListDescendants returns every transitive child of pid, parents before
	// their children.
	ListDescendants(pid int) ([]int, error)

	// Terminate sends a graceful termination signal to pid.
	Terminate(pid int) error

	// ForceKill kills pid without giving it a chance to clean up.
	ForceKill(pid int) error

	// Alive reports whether pid still refers to a running process.
	Alive(pid int) bool
}

// OSProcessControl implements ProcessControl with the process table and
// POSIX signals. The simulator may fork helper processes, so descendant
// enumeration walks the full table rather than trusting the direct children.
type OSProcessControl struct{}

// ListDescendants walks the process table breadth-first from pid.
func (OSProcessControl) ListDescendants(pid int) ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("read process table: %w", err)
	}

	children := make(map[int][]int, len(procs))
	for _, p := range procs {
		children[p.PPid()] = append(children[p.PPid()], p.Pid())
	}

	var out []int
	queue := []int{pid}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out, nil
}

// Terminate sends SIGTERM to pid.
func (OSProcessControl) Terminate(pid int) error {
	return syscall.Kill(pid, syscall.SIGTERM)
}

// ForceKill sends SIGKILL to pid.
func (OSProcessControl) ForceKill(pid int) error {
	return syscall.Kill(pid, syscall.SIGKILL)
}

// Alive probes pid with signal 0.
func (OSProcessControl) Alive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

// processGone reports whether err means the target process no longer
// exists. Teardown treats that as success, not failure.
func processGone(err error) bool {
	return errors.Is(err, syscall.ESRCH) || errors.Is(err, os.ErrProcessDone)
}
