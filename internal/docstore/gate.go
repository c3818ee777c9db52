package docstore

import "sync"

// GateRegistry maps collection file paths to their gates.
//
// One gate exists per collection file and serializes every operation
// against that collection, plain reads included: a reader must never
// observe a half-rewritten file, and two writers must never interleave
// their read-modify-write cycles. Gates for different paths are fully
// independent.
//
// The registry is owned by a store Env, not shared globally, so unrelated
// environments (and tests) never contend.
type GateRegistry struct {
	mu    sync.Mutex
	gates map[string]*sync.Mutex
}

// NewGateRegistry creates an empty registry.
func NewGateRegistry() *GateRegistry {
	return &GateRegistry{gates: make(map[string]*sync.Mutex)}
}

// Gate returns the gate for path, creating it on first use.
//
// The returned mutex is not reentrant and has no timeout: a wedged
// critical section stalls all future operations on that collection. That
// is acceptable for a single-user offline app and nothing else.
func (r *GateRegistry) Gate(path string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gates[path]
	if !ok {
		g = &sync.Mutex{}
		r.gates[path] = g
	}
	return g
}
