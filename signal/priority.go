package signal

import (
	"container/heap"
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid traffic snapshot")

// TrafficSnapshot maps a direction label to its current vehicle count.
type TrafficSnapshot map[string]int

// EmergencySet holds the directions flagged for priority override.
type EmergencySet map[string]struct{}

func NewEmergencySet(directions ...string) EmergencySet {
	set := make(EmergencySet, len(directions))
	for _, d := range directions {
		set[d] = struct{}{}
	}
	return set
}

func (s EmergencySet) Contains(direction string) bool {
	_, ok := s[direction]
	return ok
}

// Decision is the outcome of one selection cycle.
type Decision struct {
	GreenDirection     string
	IsEmergency        bool
	EmergencyDirection string // empty when no emergency direction won
}

// Ranked is a direction together with the keys it was ordered by.
type Ranked struct {
	Direction string
	Vehicles  int
	Emergency bool
}

type rankQueue []Ranked

func (q rankQueue) Len() int { return len(q) }

// Less puts emergency directions first, then higher counts, then lexical label.
func (q rankQueue) Less(i, j int) bool {
	if q[i].Emergency != q[j].Emergency {
		return q[i].Emergency
	}
	if q[i].Vehicles != q[j].Vehicles {
		return q[i].Vehicles > q[j].Vehicles
	}
	return q[i].Direction < q[j].Direction
}

func (q rankQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *rankQueue) Push(x interface{}) { *q = append(*q, x.(Ranked)) }

func (q *rankQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func validate(snapshot TrafficSnapshot) error {
	if len(snapshot) == 0 {
		return fmt.Errorf("no directions supplied: %w", ErrInvalidInput)
	}
	for direction, count := range snapshot {
		if count < 0 {
			return fmt.Errorf("direction %s has negative count %d: %w", direction, count, ErrInvalidInput)
		}
	}
	return nil
}

func newRankQueue(snapshot TrafficSnapshot, emergency EmergencySet) *rankQueue {
	q := make(rankQueue, 0, len(snapshot))
	for direction, count := range snapshot {
		q = append(q, Ranked{
			Direction: direction,
			Vehicles:  count,
			Emergency: emergency.Contains(direction),
		})
	}
	heap.Init(&q)
	return &q
}

// Rank returns every direction of the snapshot in green-priority order.
func Rank(snapshot TrafficSnapshot, emergency EmergencySet) ([]Ranked, error) {
	if err := validate(snapshot); err != nil {
		return nil, err
	}
	q := newRankQueue(snapshot, emergency)
	ranked := make([]Ranked, 0, q.Len())
	for q.Len() > 0 {
		ranked = append(ranked, heap.Pop(q).(Ranked))
	}
	return ranked, nil
}

// Select picks the direction that gets the green signal this cycle.
// Emergency directions that are not part of the snapshot are ignored.
func Select(snapshot TrafficSnapshot, emergency EmergencySet) (Decision, error) {
	if err := validate(snapshot); err != nil {
		return Decision{}, err
	}
	best := heap.Pop(newRankQueue(snapshot, emergency)).(Ranked)

	decision := Decision{
		GreenDirection: best.Direction,
		IsEmergency:    best.Emergency,
	}
	if best.Emergency {
		decision.EmergencyDirection = best.Direction
	}
	return decision, nil
}

// Message is the human readable summary shown next to the signal.
func (d Decision) Message() string {
	if d.IsEmergency {
		return fmt.Sprintf("%s has emergency vehicle", d.GreenDirection)
	}
	return "Normal priority"
}
