package domain

// Stride returns the static round-robin assignment of count items to workers.
// Worker i receives indices i, i+n, i+2n, ... where n is the effective worker count.
// The worker count is clamped to [1, count]; no empty partitions are produced.
func Stride(count, workers int) [][]int {
	if count <= 0 {
		return nil
	}
	workers = ClampWorkers(workers, count)

	parts := make([][]int, workers)
	for i := range workers {
		part := make([]int, 0, (count-i+workers-1)/workers)
		for idx := i; idx < count; idx += workers {
			part = append(part, idx)
		}
		parts[i] = part
	}
	return parts
}

// ClampWorkers bounds a requested worker count to [1, count].
// It returns 0 when there is nothing to do.
func ClampWorkers(workers, count int) int {
	if count <= 0 {
		return 0
	}
	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}
	return workers
}
