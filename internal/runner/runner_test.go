package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/jobs"
	"github.com/rs/zerolog"
)

type stubJob struct {
	name string
	run  func(ctx context.Context) error
}

func (j stubJob) Name() string                  { return j.name }
func (j stubJob) Run(ctx context.Context) error { return j.run(ctx) }

func register(name string, run func(ctx context.Context) error) {
	jobs.Register(name, func(zerolog.Logger, *jobs.Env) (jobs.Job, error) {
		return stubJob{name: name, run: run}, nil
	})
}

func newRunner() *Runner {
	return New(zerolog.Nop(), jobs.NewEnv(conf.Default(), zerolog.Nop()))
}

func TestRunContinuesAfterFailure(t *testing.T) {
	var order []string
	register("test-a", func(context.Context) error { order = append(order, "a"); return nil })
	register("test-fail", func(context.Context) error { order = append(order, "fail"); return errors.New("boom") })
	register("test-c", func(context.Context) error { order = append(order, "c"); return nil })
	jobs.Register("test-badinit", func(zerolog.Logger, *jobs.Env) (jobs.Job, error) {
		return nil, errors.New("bad config")
	})

	results, err := newRunner().Run(context.Background(), []string{"test-a", "test-fail", "test-nope", "test-badinit", "test-c"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Join(order, ",") != "a,fail,c" {
		t.Fatalf("order = %v", order)
	}
	if len(results) != 5 || Failed(results) != 3 {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[2].Err.Error(), "unknown job") {
		t.Fatalf("unknown job err = %v", results[2].Err)
	}
	if !strings.Contains(results[3].Err.Error(), "init") {
		t.Fatalf("init err = %v", results[3].Err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := 0
	register("test-cancel", func(context.Context) error { ran++; cancel(); return nil })
	register("test-after", func(context.Context) error { ran++; return nil })

	results, _ := newRunner().Run(ctx, []string{"test-cancel", "test-after"})
	if ran != 1 || len(results) != 1 {
		t.Fatalf("ran=%d results=%d", ran, len(results))
	}
}

func TestRunRejectsNestedRun(t *testing.T) {
	r := newRunner()
	var nested error
	register("test-nested", func(ctx context.Context) error {
		_, nested = r.Run(ctx, []string{"test-a"})
		return nil
	})
	if _, err := r.Run(context.Background(), []string{"test-nested"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !errors.Is(nested, ErrBusy) {
		t.Fatalf("nested = %v", nested)
	}
	// po zakończeniu kolejny przebieg znów jest możliwy
	if _, err := r.Run(context.Background(), []string{"test-a"}); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
