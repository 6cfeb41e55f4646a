package routing

import (
	"container/heap"
	"log"
)

// PathResult is the least-cost route between two nodes. TotalCost is nil when
// the destination cannot be reached, in which case Path is empty.
type PathResult struct {
	Path      []string `json:"path"`
	TotalCost *int     `json:"totalCost"`
}

func (r PathResult) Reachable() bool {
	return r.TotalCost != nil
}

type PriorityQueueItem struct {
	NodeID   string
	Priority int
	Index    int
}

type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

// Less orders by cost, then by node label so equal-cost frontiers pop deterministically.
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].NodeID < pq[j].NodeID
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// ShortestPath runs Dijkstra from start and stops as soon as end is settled.
// Edge weights are assumed non-negative (AddEdge enforces it).
func (g *Graph) ShortestPath(start, end string) PathResult {
	unreachable := PathResult{Path: []string{}}

	if !g.HasNode(start) {
		log.Printf("Start node %q not found in graph", start)
		return unreachable
	}
	if !g.HasNode(end) {
		log.Printf("End node %q not found in graph", end)
		return unreachable
	}

	distances := map[string]int{start: 0}
	previous := make(map[string]string)
	visited := make(map[string]bool)

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	heap.Push(openSet, &PriorityQueueItem{NodeID: start, Priority: 0})

	found := false
	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PriorityQueueItem)
		if visited[current.NodeID] {
			continue
		}
		visited[current.NodeID] = true

		if current.NodeID == end {
			found = true
			break
		}

		for _, edge := range g.Neighbors(current.NodeID) {
			if visited[edge.To] {
				continue
			}
			tentative := current.Priority + edge.Weight
			if existing, ok := distances[edge.To]; !ok || tentative < existing {
				distances[edge.To] = tentative
				previous[edge.To] = current.NodeID
				heap.Push(openSet, &PriorityQueueItem{NodeID: edge.To, Priority: tentative})
			}
		}
	}

	if !found {
		return unreachable
	}

	cost := distances[end]
	return PathResult{
		Path:      reconstructPath(previous, start, end),
		TotalCost: &cost,
	}
}

func reconstructPath(previous map[string]string, start, end string) []string {
	path := []string{end}
	for current := end; current != start; {
		prev := previous[current]
		path = append([]string{prev}, path...)
		current = prev
	}
	return path
}
