package simproc

import (
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/MadeInShineA/forest-fire-simulation/internal/monitoring"
)

func init() {
	// Keep teardown diagnostics out of test output.
	monitoring.SetLogger(nil)
}

func TestSpawnMissingExecutable(t *testing.T) {
	s := NewExecSupervisor()

	_, err := s.Spawn("/nonexistent/simulator", nil, t.TempDir())
	if err == nil {
		t.Fatal("expected spawn error for missing executable")
	}
}

func TestSpawnAndTeardown(t *testing.T) {
	s := NewExecSupervisor()
	s.GracePeriod = time.Second

	h, err := s.Spawn("sleep", []string{"60"}, "")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	s.Teardown(h)

	if !h.Exited() {
		t.Error("process still running after teardown")
	}
}

func TestTeardownAlreadyExitedProcess(t *testing.T) {
	s := NewExecSupervisor()
	s.GracePeriod = 200 * time.Millisecond

	h, err := s.Spawn("true", nil, "")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	// Wait for natural exit before tearing down.
	deadline := time.Now().Add(5 * time.Second)
	for !h.Exited() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !h.Exited() {
		t.Fatal("process did not exit on its own")
	}

	// Must not panic or block; a missing process during teardown is success.
	s.Teardown(h)
	s.Teardown(h) // idempotent
}

func TestTeardownKillsDescendants(t *testing.T) {
	s := NewExecSupervisor()
	s.GracePeriod = time.Second

	// The shell forks a sleep helper, mirroring a simulator that spawns
	// workers.
	h, err := s.Spawn("sh", []string{"-c", "sleep 60 & wait"}, "")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	var pc OSProcessControl
	var descendants []int
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		descendants, _ = pc.ListDescendants(h.PID())
		if len(descendants) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(descendants) == 0 {
		t.Fatal("no descendants observed for forking process")
	}

	s.Teardown(h)

	if !h.Exited() {
		t.Error("root still running after teardown")
	}
	for _, pid := range descendants {
		if syscall.Kill(pid, 0) == nil {
			t.Errorf("descendant pid %d survived teardown", pid)
		}
	}
}

// fakeControl scripts process liveness so teardown ordering and the
// force-kill fallback can be asserted without real processes.
type fakeControl struct {
	mu          sync.Mutex
	descendants []int
	stubborn    map[int]bool // pids that ignore Terminate
	terminated  []int
	killed      []int
}

func (f *fakeControl) ListDescendants(pid int) ([]int, error) {
	return f.descendants, nil
}

func (f *fakeControl) Terminate(pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated = append(f.terminated, pid)
	return nil
}

func (f *fakeControl) ForceKill(pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed = append(f.killed, pid)
	return nil
}

func (f *fakeControl) Alive(pid int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stubborn[pid] {
		for _, p := range f.terminated {
			if p == pid {
				return false
			}
		}
	}
	for _, p := range f.killed {
		if p == pid {
			return false
		}
	}
	return true
}

func TestTeardownForceKillsStubbornDescendants(t *testing.T) {
	fake := &fakeControl{
		descendants: []int{111, 222},
		stubborn:    map[int]bool{111: true},
	}
	s := &ExecSupervisor{Control: fake, GracePeriod: 100 * time.Millisecond}

	h, err := s.Spawn("sleep", []string{"60"}, "")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer NewExecSupervisor().Teardown(h)

	s.Teardown(h)

	// Both descendants got a graceful signal before the root did.
	if len(fake.terminated) < 3 {
		t.Fatalf("terminated = %v, want descendants then root", fake.terminated)
	}
	if fake.terminated[0] != 111 || fake.terminated[1] != 222 {
		t.Errorf("descendants not terminated first: %v", fake.terminated)
	}
	if fake.terminated[2] != h.PID() {
		t.Errorf("root terminated out of order: %v", fake.terminated)
	}

	// Only the stubborn descendant needed force-killing.
	wantKilled := map[int]bool{111: true}
	for _, pid := range fake.killed {
		if pid == h.PID() {
			continue // root may be force-killed depending on timing
		}
		if !wantKilled[pid] {
			t.Errorf("unexpected force kill of pid %d", pid)
		}
		delete(wantKilled, pid)
	}
	if len(wantKilled) != 0 {
		t.Errorf("stubborn descendant never force-killed; killed = %v", fake.killed)
	}
}

func TestListDescendantsUnknownPid(t *testing.T) {
	var pc OSProcessControl

	// A pid with no children yields an empty tree, not an error.
	descendants, err := pc.ListDescendants(-1)
	if err != nil {
		t.Fatalf("ListDescendants: %v", err)
	}
	if len(descendants) != 0 {
		t.Errorf("descendants of bogus pid = %v, want none", descendants)
	}
}
