// Package enrich fans pending items out to llm backed steps over a bounded worker pool.
// Every task runs in its own store session and persists its own result, so one failing
// item never affects its siblings.
package enrich

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
)

// Outcome is the terminal result of a single enrichment task
type Outcome string

const (
	OutcomeDone       Outcome = "done"
	OutcomeFailed     Outcome = "failed"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeIrrelevant Outcome = "irrelevant"
)

// Counts aggregates task outcomes, Label names the done outcome ("translated", "analyzed")
type Counts struct {
	Label      string
	Done       int
	Failed     int
	Skipped    int
	Irrelevant int
}

// Add counts an outcome
func (c *Counts) Add(o Outcome) {
	switch o {
	case OutcomeDone:
		c.Done++
	case OutcomeSkipped:
		c.Skipped++
	case OutcomeIrrelevant:
		c.Irrelevant++
	default:
		c.Failed++
	}
}

// Merge adds other counts
func (c *Counts) Merge(other Counts) {
	c.Done += other.Done
	c.Failed += other.Failed
	c.Skipped += other.Skipped
	c.Irrelevant += other.Irrelevant
}

// Total returns the number of processed tasks
func (c Counts) Total() int { return c.Done + c.Failed + c.Skipped + c.Irrelevant }

func (c Counts) String() string {
	label := c.Label
	if label == "" {
		label = string(OutcomeDone)
	}
	return fmt.Sprintf("%s %d, failed %d, skipped %d, irrelevant %d", label, c.Done, c.Failed, c.Skipped, c.Irrelevant)
}

// Task is a single unit of work built by a step for one pending item
type Task struct {
	Key string
	Run func(ctx context.Context, s Session) Outcome
}

// Step selects pending items and turns them into tasks
type Step interface {
	Name() string
	Label() string // name of the done outcome in counts
	Pending(ctx context.Context, s Session, limit int) ([]Task, error)
}

// Params configures the dispatcher
type Params struct {
	Workers   int
	BatchSize int
}

// Dispatcher runs step tasks concurrently
type Dispatcher struct {
	store  Store
	params Params
}

// NewDispatcher makes a dispatcher with 8 workers and batches of 50 unless set
func NewDispatcher(store Store, params Params) *Dispatcher {
	if params.Workers <= 0 {
		params.Workers = 8
	}
	if params.BatchSize <= 0 {
		params.BatchSize = 50
	}
	return &Dispatcher{store: store, params: params}
}

// ProcessBatch runs tasks with bounded parallelism, each in its own session.
// A task error or panic is counted as failed and doesn't stop the others.
func (d *Dispatcher) ProcessBatch(ctx context.Context, step Step, tasks []Task) Counts {
	counts := Counts{Label: step.Label()}
	if len(tasks) == 0 {
		return counts
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(d.params.Workers)
	for _, task := range tasks {
		g.Go(func() error {
			outcome := d.runTask(ctx, step, task)
			mu.Lock()
			counts.Add(outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return counts
}

// Drain processes pending batches until none is left. It stops early when a batch
// holds only items already attempted, e.g. rows stuck pending after a failed status write.
func (d *Dispatcher) Drain(ctx context.Context, step Step) (Counts, error) {
	total := Counts{Label: step.Label()}
	attempted := map[string]bool{}
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		var tasks []Task
		err := d.store.WithSession(ctx, func(s Session) (err error) {
			tasks, err = step.Pending(ctx, s, d.params.BatchSize)
			return err
		})
		if err != nil {
			return total, fmt.Errorf("%s: get pending: %w", step.Name(), err)
		}
		if len(tasks) == 0 {
			break
		}

		fresh := tasks[:0]
		for _, t := range tasks {
			if !attempted[t.Key] {
				attempted[t.Key] = true
				fresh = append(fresh, t)
			}
		}
		if len(fresh) == 0 {
			lgr.Printf("[WARN] %s: %d items still pending after being attempted, stop", step.Name(), len(tasks))
			break
		}

		counts := d.ProcessBatch(ctx, step, fresh)
		lgr.Printf("[DEBUG] %s batch: %s", step.Name(), counts)
		total.Merge(counts)
	}
	if total.Total() > 0 {
		lgr.Printf("[INFO] %s: %s", step.Name(), total)
	}
	return total, nil
}

func (d *Dispatcher) runTask(ctx context.Context, step Step, task Task) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] %s: panic in task %s: %v\n%s", step.Name(), task.Key, r, debug.Stack())
			outcome = OutcomeFailed
		}
	}()

	err := d.store.WithSession(ctx, func(s Session) error {
		outcome = task.Run(ctx, s)
		return nil
	})
	if err != nil {
		lgr.Printf("[WARN] %s: task %s: %v", step.Name(), task.Key, err)
		return OutcomeFailed
	}
	return outcome
}
