// Package scenario runs batches of independent valuations in parallel and
// summarizes the results.
//
// Every valuation is a pure function of its own inputs, so jobs need no
// coordination beyond collecting results.
package scenario

import (
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/cds"
)

// Job is a named, self-contained valuation.
type Job struct {
	Name    string
	Compute func() (float64, error)
}

// Result is the outcome of one Job.
type Result struct {
	Name  string
	Value float64
	Err   error
}

// Summary aggregates the successful values of a batch.
type Summary struct {
	Count  int
	Failed int
	Mean   float64
	Min    float64
	Max    float64
	Total  float64
}

// BondPriceJob wraps a bond pricing request as a Job.
func BondPriceJob(name string, in bond.PriceInput) Job {
	return Job{Name: name, Compute: func() (float64, error) {
		res, err := bond.ComputePrice(in)
		if err != nil {
			return 0, err
		}
		return res.Price, nil
	}}
}

// CDSNPVJob wraps a CDS valuation request as a Job.
func CDSNPVJob(name string, in cds.PriceInput) Job {
	return Job{Name: name, Compute: func() (float64, error) {
		res, err := cds.ComputePrice(in)
		if err != nil {
			return 0, err
		}
		return res.NPV, nil
	}}
}

// Run executes the jobs across the given number of workers and returns
// per-job results in input order plus a summary over the successes.
//
// A canceled context marks unstarted jobs as failed with the context error.
func Run(ctx context.Context, jobs []Job, workers int) ([]Result, Summary, error) {
	if workers <= 0 {
		return nil, Summary{}, fmt.Errorf("scenario.Run: workers must be positive, got %d", workers)
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]Result, len(jobs))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				v, err := jobs[i].Compute()
				results[i] = Result{Name: jobs[i].Name, Value: v, Err: err}
			}
		}()
	}

feed:
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Name: jobs[j].Name, Err: err}
			}
			break feed
		}
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Name: jobs[j].Name, Err: ctx.Err()}
			}
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	return results, summarize(results), nil
}

func summarize(results []Result) Summary {
	values := make([]float64, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		values = append(values, r.Value)
	}

	s := Summary{Count: len(values), Failed: failed}
	if len(values) == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Total = floats.Sum(values)
	return s
}
