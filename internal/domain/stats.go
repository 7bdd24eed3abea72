package domain

import "math"

// Stats summarizes the whole task list.
type Stats struct {
	Total          int
	Pending        int
	Completed      int
	CompletionRate int // Rounded percentage, 0 when Total is 0
}

// ComputeStats counts tasks and derives the completion rate.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
