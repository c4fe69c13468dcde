package claypolish

import (
	"runtime"
	"sync"
)

// parallelThreshold is the smallest vertex count worth spreading over
// goroutines; below it scheduling overhead dominates the arithmetic.
const parallelThreshold = 2048

// parallelRange splits [0,n) into contiguous chunks, one per available
// CPU, and runs fn on each chunk concurrently. Chunks cover disjoint
// index ranges and every vertex computation reads only the previous
// buffer, so the outcome does not depend on the worker count. Returns
// after all chunks complete, which gives callers their barrier between
// sub-steps.
func parallelRange(n int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n < parallelThreshold || workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
