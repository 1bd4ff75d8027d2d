// Package schedule runs periodic tasks on cron expressions or fixed
// intervals. The schedule:run command uses it to re-evaluate alerts.
//
//	s := schedule.New()
//	_ = s.Cron("alerts:generate", "0 * * * *", evaluate)
//	s.Run(ctx) // blocks until ctx is done
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/beshgebeya/pos/pkg/logger"
)

// Task is one scheduled unit of work.
type Task func(ctx context.Context) error

type entry struct {
	name     string
	cron     *cronSpec
	interval time.Duration
	task     Task

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// Scheduler dispatches due entries once per tick. A run that is still in
// progress is never started again.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
	tick    time.Duration
}

func New() *Scheduler {
	return &Scheduler{tick: time.Second}
}

// Cron registers task under a 5-field expression: minute hour dom month dow.
// Each field accepts *, */step, n, a-b and comma lists of those.
func (s *Scheduler) Cron(name, expr string, task Task) error {
	spec, err := parseCron(expr)
	if err != nil {
		return fmt.Errorf("schedule: %s: %w", name, err)
	}
	s.add(&entry{name: name, cron: spec, task: task})
	return nil
}

// Every registers task to run at a fixed interval, first on the next tick.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	if interval <= 0 {
		return fmt.Errorf("schedule: %s: interval must be positive", name)
	}
	s.add(&entry{name: name, interval: interval, task: task})
	return nil
}

func (s *Scheduler) add(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Run blocks dispatching tasks until ctx is cancelled, then waits for
// in-flight runs.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("schedule: started", "entries", len(s.List()))
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("schedule: stopped")
			return
		case now := <-ticker.C:
			s.dispatchDue(ctx, now)
		}
	}
}

func (s *Scheduler) dispatchDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	current := append([]*entry(nil), s.entries...)
	s.mu.Unlock()

	for _, e := range current {
		if s.claim(e, now) {
			s.wg.Add(1)
			go s.execute(ctx, e)
		}
	}
}

// claim marks e running when it is due at now. Cron entries fire at most
// once per matching minute.
func (s *Scheduler) claim(e *entry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return false
	}

	if e.cron != nil {
		minute := now.Truncate(time.Minute)
		if !e.cron.matches(now) || !e.lastRun.Before(minute) {
			return false
		}
	} else if !e.lastRun.IsZero() && now.Sub(e.lastRun) < e.interval {
		return false
	}

	e.running = true
	e.lastRun = now
	return true
}

func (s *Scheduler) execute(ctx context.Context, e *entry) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("schedule: task panicked", "task", e.name, "panic", fmt.Sprint(r))
		}
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	start := time.Now()
	if err := e.task(ctx); err != nil {
		logger.Error("schedule: task failed", "task", e.name, "error", err)
		return
	}
	logger.Info("schedule: task finished", "task", e.name, "duration", time.Since(start).String())
}

// List describes every entry for display.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		freq := e.interval.String()
		if e.cron != nil {
			freq = e.cron.expr
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.name, freq))
	}
	return out
}

// cronSpec holds the allowed values of each field.
type cronSpec struct {
	expr   string
	fields [5]map[int]bool
}

var cronBounds = [5][2]int{{0, 59}, {0, 23}, {1, 31}, {1, 12}, {0, 6}}

func parseCron(expr string) (*cronSpec, error) {
	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return nil, fmt.Errorf("cron %q: want 5 fields, got %d", expr, len(parts))
	}

	spec := &cronSpec{expr: expr}
	for i, part := range parts {
		set, err := parseField(part, cronBounds[i][0], cronBounds[i][1])
		if err != nil {
			return nil, fmt.Errorf("cron %q: field %d: %w", expr, i+1, err)
		}
		spec.fields[i] = set
	}
	return spec, nil
}

func parseField(field string, lo, hi int) (map[int]bool, error) {
	set := map[int]bool{}
	for _, item := range strings.Split(field, ",") {
		from, to, step := lo, hi, 1

		base, stepStr, hasStep := strings.Cut(item, "/")
		if hasStep {
			n, err := strconv.Atoi(stepStr)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("bad step %q", item)
			}
			step = n
		}

		switch {
		case base == "*":
		case strings.Contains(base, "-"):
			a, b, _ := strings.Cut(base, "-")
			var err1, err2 error
			from, err1 = strconv.Atoi(a)
			to, err2 = strconv.Atoi(b)
			if err1 != nil || err2 != nil || from > to {
				return nil, fmt.Errorf("bad range %q", item)
			}
		default:
			n, err := strconv.Atoi(base)
			if err != nil {
				return nil, fmt.Errorf("bad value %q", item)
			}
			from, to = n, n
			if hasStep {
				to = hi
			}
		}

		if from < lo || to > hi {
			return nil, fmt.Errorf("%q out of range %d-%d", item, lo, hi)
		}
		for v := from; v <= to; v += step {
			set[v] = true
		}
	}
	return set, nil
}

func (c *cronSpec) matches(t time.Time) bool {
	values := [5]int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, v := range values {
		if !c.fields[i][v] {
			return false
		}
	}
	return true
}
