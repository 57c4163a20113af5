package dynamo

import "sync"

// ParallelFor executes fn over [0, n) split into at most workers
// contiguous chunks. Small ranges run on the calling goroutine.
// It returns the number of chunks used; chunk i covers
// [i*ceil(n/chunks), min(n, (i+1)*ceil(n/chunks))).
func ParallelFor(n, workers, minChunk int, fn func(chunk, start, end int)) int {
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, 0, n)
		return 1
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	chunks := (n + chunkSize - 1) / chunkSize

	var wg sync.WaitGroup
	wg.Add(chunks)

	for w := 0; w < chunks; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(c, s, e int) {
			defer wg.Done()
			fn(c, s, e)
		}(w, start, end)
	}

	wg.Wait()
	return chunks
}

// Chunks reports how many chunks ParallelFor will use for the same arguments.
func Chunks(n, workers, minChunk int) int {
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		return 1
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (n + workers - 1) / workers
	return (n + chunkSize - 1) / chunkSize
}
