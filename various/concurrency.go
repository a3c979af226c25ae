package various

import "sync"

// NumWorkers is the number of goroutines KickOffChunkWorkers starts at most.
var NumWorkers = 8

// KickOffChunkWorkers splits [0, totalItems) into at most NumWorkers ranges
// of equal size (the last one may be shorter), runs fn on each range in its
// own goroutine and waits for all of them.
func KickOffChunkWorkers(totalItems int, fn func(start, end int)) {
	if totalItems <= 0 {
		return
	}
	workers := NumWorkers
	if workers < 1 {
		workers = 1
	}
	chunk := (totalItems + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < totalItems; start += chunk {
		end := start + chunk
		if end > totalItems {
			end = totalItems
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
