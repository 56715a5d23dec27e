package gridastar

import (
	"context"
	"sync"
)

// Query is one start/goal pair for FindPaths.
type Query struct {
	Start Coord `json:"start"`
	Goal  Coord `json:"goal"`
}

// BatchResult pairs a Query with its outcome.
type BatchResult struct {
	Query  Query
	Result Result
	Err    error
}

type batchTask struct {
	index int
	query Query
}

// FindPaths runs FindPath for every query on a pool of worker goroutines
// sharing grid. Results come back in query order. Queries not yet started
// when ctx is cancelled carry ctx.Err().
func FindPaths(ctx context.Context, grid *Grid, queries []Query, options ...Option) []BatchResult {
	searchOptions := applyOptions(options)
	results := make([]BatchResult, len(queries))
	for i, q := range queries {
		results[i].Query = q
	}

	taskChannel := make(chan batchTask)
	var wg sync.WaitGroup
	for i := 0; i < searchOptions.NumberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				if err := ctx.Err(); err != nil {
					results[task.index].Err = err
					continue
				}
				result, err := FindPath(grid, task.query.Start, task.query.Goal, options...)
				results[task.index].Result = result
				results[task.index].Err = err
			}
		}()
	}

	next := 0
feed:
	for ; next < len(queries); next++ {
		select {
		case <-ctx.Done():
			break feed
		case taskChannel <- batchTask{index: next, query: queries[next]}:
		}
	}
	close(taskChannel)
	wg.Wait()

	for ; next < len(queries); next++ {
		results[next].Err = ctx.Err()
	}
	return results
}
