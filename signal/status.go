package signal

import (
	"math/rand"
	"slices"
	"sort"
	"sync"
	"time"
)

const (
	MinVehicles = 10
	MaxVehicles = 100

	Green  = "green"
	Yellow = "yellow"
	Red    = "red"
)

// DefaultDirections are the four approaches of the demo intersection.
var DefaultDirections = []string{"North", "South", "East", "West"}

// RandSource is the subset of *rand.Rand the simulation needs.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// Status is what the live dashboard shows for one direction.
type Status struct {
	Signal   string `json:"signal"`
	Vehicles int    `json:"vehicles"`
}

// Reporter simulates vehicle counts and derives a display state per direction.
type Reporter struct {
	mu         sync.Mutex
	src        RandSource
	directions []string
}

func NewReporter(src RandSource, directions ...string) *Reporter {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(directions) == 0 {
		directions = DefaultDirections
	}
	dirs := append([]string(nil), directions...)
	sort.Strings(dirs)
	return &Reporter{src: src, directions: slices.Compact(dirs)}
}

func (r *Reporter) Directions() []string {
	return append([]string(nil), r.directions...)
}

// Snapshot draws a count in [MinVehicles, MaxVehicles] for every direction.
func (r *Reporter) Snapshot() TrafficSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Reporter) snapshotLocked() TrafficSnapshot {
	counts := make(TrafficSnapshot, len(r.directions))
	for _, d := range r.directions {
		counts[d] = MinVehicles + r.src.Intn(MaxVehicles-MinVehicles+1)
	}
	return counts
}

// Report produces one green direction; the rest get yellow or red on a coin flip.
func (r *Reporter) Report() (map[string]Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := r.snapshotLocked()
	decision, err := Select(counts, nil)
	if err != nil {
		return nil, err
	}

	status := make(map[string]Status, len(counts))
	for _, d := range r.directions {
		signal := Green
		if d != decision.GreenDirection {
			signal = Red
			if r.src.Float64() > 0.5 {
				signal = Yellow
			}
		}
		status[d] = Status{Signal: signal, Vehicles: counts[d]}
	}
	return status, nil
}

// PickEmergency chooses one direction of the snapshot uniformly at random.
// Keys are sorted first so a seeded source gives reproducible picks.
func PickEmergency(src RandSource, snapshot TrafficSnapshot) string {
	if len(snapshot) == 0 {
		return ""
	}
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[src.Intn(len(keys))]
}

// LockedSource makes a RandSource safe for concurrent handlers.
type LockedSource struct {
	mu  sync.Mutex
	src RandSource
}

func NewLockedSource(src RandSource) *LockedSource {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LockedSource{src: src}
}

func (l *LockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

func (l *LockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
