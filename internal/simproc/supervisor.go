// Package simproc spawns the external simulator process and reliably tears
// down its whole process tree when a run completes.
package simproc

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/MadeInShineA/forest-fire-simulation/internal/monitoring"
)

// DefaultGracePeriod is how long teardown waits for a terminated process to
// exit before force-killing it.
const DefaultGracePeriod = 3 * time.Second

// Handle represents one spawned simulator process.
type Handle struct {
	cmd     *exec.Cmd
	waitErr error
	waitCh  chan struct{}
}

// PID returns the root process ID.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Exited reports whether the root process has been reaped.
func (h *Handle) Exited() bool {
	select {
	case <-h.waitCh:
		return true
	default:
		return false
	}
}

// waitTimeout blocks until the root process exits or d elapses.
func (h *Handle) waitTimeout(d time.Duration) bool {
	select {
	case <-h.waitCh:
		return true
	case <-time.After(d):
		return false
	}
}

// Supervisor spawns simulator runs and terminates their process trees.
type Supervisor interface {
	// Spawn starts the command in workDir. It fails if the executable is
	// missing or not runnable.
	Spawn(command string, args []string, workDir string) (*Handle, error)

	// Teardown terminates the process tree rooted at h: descendants first
	// (graceful signal, bounded wait, force kill), then the root the same
	// way. It is idempotent and tolerates processes that already exited.
	Teardown(h *Handle)
}

// ExecSupervisor is the production Supervisor backed by os/exec.
type ExecSupervisor struct {
	// Control provides process introspection and signalling. Defaults to
	// OSProcessControl.
	Control ProcessControl

	// GracePeriod bounds the wait between graceful termination and force
	// kill. Defaults to DefaultGracePeriod.
	GracePeriod time.Duration
}

// NewExecSupervisor creates a supervisor with OS-backed process control.
func NewExecSupervisor() *ExecSupervisor {
	return &ExecSupervisor{Control: OSProcessControl{}, GracePeriod: DefaultGracePeriod}
}

// Spawn starts the simulator detached into its own process group so the
// harness can signal it independently of its own lifecycle.
func (s *ExecSupervisor) Spawn(command string, args []string, workDir string) (*Handle, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", command, err)
	}

	h := &Handle{cmd: cmd, waitCh: make(chan struct{})}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.waitCh)
	}()
	return h, nil
}

// Teardown terminates the whole tree under h. A process that is already
// gone is logged and treated as success: the run completed normally before
// teardown got to it.
func (s *ExecSupervisor) Teardown(h *Handle) {
	if h == nil || h.cmd.Process == nil {
		return
	}

	pc := s.Control
	if pc == nil {
		pc = OSProcessControl{}
	}
	grace := s.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	descendants, err := pc.ListDescendants(h.PID())
	if err != nil {
		monitoring.Logf("could not enumerate process tree of pid %d: %v", h.PID(), err)
	}

	for _, pid := range descendants {
		s.signal(pc.Terminate, pid, "terminate")
	}
	awaitExit(pc, descendants, grace)
	for _, pid := range descendants {
		if pc.Alive(pid) {
			s.signal(pc.ForceKill, pid, "kill")
		}
	}

	// Root last, with the same graceful-then-forceful fallback.
	s.signal(pc.Terminate, h.PID(), "terminate")
	if !h.waitTimeout(grace) {
		s.signal(pc.ForceKill, h.PID(), "kill")
		h.waitTimeout(grace)
	}
}

func (s *ExecSupervisor) signal(f func(int) error, pid int, verb string) {
	if err := f(pid); err != nil {
		if processGone(err) {
			monitoring.Logf("pid %d already exited before %s", pid, verb)
			return
		}
		monitoring.Logf("could not %s pid %d: %v", verb, pid, err)
	}
}

// awaitExit polls until every pid is gone or the grace period elapses.
func awaitExit(pc ProcessControl, pids []int, grace time.Duration) {
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		alive := false
		for _, pid := range pids {
			if pc.Alive(pid) {
				alive = true
				break
			}
		}
		if !alive {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
