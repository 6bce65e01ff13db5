package pack

import (
	"context"

	"git.home.luguber.info/inful/packforge/internal/executor"
)

// MemoryGenerator assembles the pack in memory and never touches storage.
// There is no persisted prior state to compare against, so every result is
// reported as changed.
type MemoryGenerator struct{}

// NewMemory creates an in-memory-only generator.
func NewMemory() *MemoryGenerator { return &MemoryGenerator{} }

func (MemoryGenerator) Generate(ctx context.Context, provider Provider, pool *executor.Pool) (*Result, error) {
	res, err := assemble(ctx, provider, pool)
	if err != nil {
		return nil, err
	}
	res.freeze(true)
	return res, nil
}
