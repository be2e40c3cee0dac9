// Package runner uruchamia joby po kolei na wspólnym środowisku.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bartek5186/catalogsync/internal/jobs"
	"github.com/rs/zerolog"
)

var ErrBusy = errors.New("runner: already running")

type Result struct {
	Job  string
	Err  error
	Took time.Duration
}

type Runner struct {
	log zerolog.Logger
	env *jobs.Env

	mu      sync.Mutex
	running bool
}

func New(log zerolog.Logger, env *jobs.Env) *Runner {
	return &Runner{log: log, env: env}
}

// Run wykonuje joby sekwencyjnie. Błąd joba jest logowany i zapisany w wyniku,
// kolejne joby lecą dalej. Przerwanie ctx kończy pętlę.
func (r *Runner) Run(ctx context.Context, names []string) ([]Result, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	r.log.Info().Strs("jobs", names).Msg("run start")
	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			r.log.Warn().Err(err).Str("job", name).Msg("run interrupted")
			break
		}
		res := r.runOne(ctx, name)
		results = append(results, res)
	}

	failed := Failed(results)
	r.log.Info().Int("jobs", len(results)).Int("failed", failed).Msg("run done")
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, name string) Result {
	log := r.log.With().Str("job", name).Logger()
	res := Result{Job: name}

	f, ok := jobs.Get(name)
	if !ok {
		res.Err = fmt.Errorf("unknown job %q (known: %v)", name, jobs.Names())
		log.Error().Err(res.Err).Msg("skipped")
		return res
	}
	job, err := f(log, r.env)
	if err != nil {
		res.Err = fmt.Errorf("init: %w", err)
		log.Error().Err(err).Msg("init error")
		return res
	}

	start := time.Now()
	log.Info().Msg("start")
	res.Err = job.Run(ctx)
	res.Took = time.Since(start)
	if res.Err != nil {
		log.Error().Err(res.Err).Dur("took", res.Took).Msg("finished with error")
	} else {
		log.Info().Dur("took", res.Took).Msg("finished")
	}
	return res
}

func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
