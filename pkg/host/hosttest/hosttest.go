package hosttest

import (
	"sort"
	"sync"

	"github.com/replaywatch/replaywatch-go/pkg/host"
)

// Host bundles a full fake host environment.
type Host struct {
	Registry  *Registry
	Bus       *SignalBus
	Scheduler *ManualScheduler
	Replay    *ReplayRecorder
}

// NewHost creates a fake host with all capabilities wired together.
func NewHost() *Host {
	return &Host{
		Registry:  NewRegistry(),
		Bus:       NewSignalBus(),
		Scheduler: NewManualScheduler(),
		Replay:    NewReplayRecorder(),
	}
}

// Source is a scripted source handle.
type Source struct {
	mu       sync.Mutex
	name     string
	kind     string
	showing  bool
	active   bool
	released int
}

// NewSource creates a source with the given name and kind.
func NewSource(name, kind string) *Source {
	return &Source{name: name, kind: kind}
}

// Name returns the source name.
func (s *Source) Name() string { return s.name }

// Kind returns the source kind.
func (s *Source) Kind() string { return s.kind }

// Showing reports the scripted showing state.
func (s *Source) Showing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showing
}

// Active reports the scripted active state.
func (s *Source) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Release records that the handle was dropped.
func (s *Source) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released++
}

// SetShowing scripts the showing state.
func (s *Source) SetShowing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showing = v
}

// SetActive scripts the active state.
func (s *Source) SetActive(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = v
}

// ReleaseCount returns how many times Release was called.
func (s *Source) ReleaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// Compile-time interface satisfaction check.
var _ host.Source = (*Source)(nil)

// Registry is a scripted source registry.
type Registry struct {
	mu      sync.Mutex
	sources map[string]*Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]*Source)}
}

// Add registers a source and returns it for further scripting.
func (r *Registry) Add(name, kind string) *Source {
	src := NewSource(name, kind)
	r.mu.Lock()
	r.sources[name] = src
	r.mu.Unlock()
	return src
}

// Remove deletes a source, making it unresolvable.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.sources, name)
	r.mu.Unlock()
}

// SourceByName resolves a scripted source.
func (r *Registry) SourceByName(name string) (host.Source, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[name]
	if !ok {
		return nil, false
	}
	return src, true
}

// Sources enumerates scripted sources in name order.
func (r *Registry) Sources() []host.SourceInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]host.SourceInfo, 0, len(r.sources))
	for _, src := range r.sources {
		infos = append(infos, host.SourceInfo{Name: src.Name(), Kind: src.Kind()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Compile-time interface satisfaction check.
var _ host.Registry = (*Registry)(nil)

// SignalBus fans out emitted signals to connected callbacks.
type SignalBus struct {
	mu          sync.Mutex
	nextToken   host.SignalToken
	connections map[host.SignalToken]busConnection
}

type busConnection struct {
	src    host.Source
	signal string
	fn     host.SignalFunc
}

// NewSignalBus creates an empty signal bus.
func NewSignalBus() *SignalBus {
	return &SignalBus{connections: make(map[host.SignalToken]busConnection)}
}

// Connect wires fn to the named signal on src.
func (b *SignalBus) Connect(src host.Source, signal string, fn host.SignalFunc) host.SignalToken {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextToken++
	token := b.nextToken
	b.connections[token] = busConnection{src: src, signal: signal, fn: fn}
	return token
}

// Disconnect removes a connection. Unknown tokens are ignored.
func (b *SignalBus) Disconnect(token host.SignalToken) {
	b.mu.Lock()
	delete(b.connections, token)
	b.mu.Unlock()
}

// Emit fires the named signal on src, invoking every connected callback.
func (b *SignalBus) Emit(src host.Source, signal string) {
	b.mu.Lock()
	var fns []host.SignalFunc
	for _, c := range b.connections {
		if c.src == src && c.signal == signal {
			fns = append(fns, c.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ConnectedSignals returns the signal names currently wired on src,
// sorted, with duplicates removed.
func (b *SignalBus) ConnectedSignals(src host.Source) []string {
	b.mu.Lock()
	seen := make(map[string]bool)
	for _, c := range b.connections {
		if c.src == src {
			seen[c.signal] = true
		}
	}
	b.mu.Unlock()

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConnectionCount returns the total number of live connections.
func (b *SignalBus) ConnectionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.connections)
}

// Compile-time interface satisfaction check.
var _ host.SignalBus = (*SignalBus)(nil)

// ReplayRecorder implements the replay buffer toggle and records calls.
type ReplayRecorder struct {
	mu         sync.Mutex
	active     bool
	startCalls int
	stopCalls  int
}

// NewReplayRecorder creates a recorder with the buffer off.
func NewReplayRecorder() *ReplayRecorder {
	return &ReplayRecorder{}
}

// Active reports the current buffer state.
func (r *ReplayRecorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Start turns the buffer on and counts the call.
func (r *ReplayRecorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
	r.active = true
}

// Stop turns the buffer off and counts the call.
func (r *ReplayRecorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCalls++
	r.active = false
}

// SetActive forces the buffer state without counting a call, simulating
// a change made through another host path.
func (r *ReplayRecorder) SetActive(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = v
}

// StartCalls returns how many times Start was called.
func (r *ReplayRecorder) StartCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startCalls
}

// StopCalls returns how many times Stop was called.
func (r *ReplayRecorder) StopCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopCalls
}

// Compile-time interface satisfaction check.
var _ host.ReplayBuffer = (*ReplayRecorder)(nil)
