package jobs

import (
	"context"

	"github.com/rs/zerolog"
)

// Job – jeden krok operatorski (pobranie katalogu, rekoncyliacja, raport...).
type Job interface {
	Name() string
	Run(ctx context.Context) error // blokuje do końca pracy albo ctx.Done
}

type Factory func(log zerolog.Logger, env *Env) (Job, error)

// funcJob – job bez własnego stanu
type funcJob struct {
	name string
	run  func(ctx context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.run(ctx) }
