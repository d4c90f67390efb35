// =============================================================================
// txcompare - Comparison Pipeline
// =============================================================================
//
// The pipeline ties the pieces together for one comparison request: resolve
// both format identifiers against the registry, decode the two byte streams,
// then hand the sequences to the comparator. The two decodes are mutually
// independent and run concurrently by default; both results are always
// awaited so error reporting does not depend on scheduling. Nothing outlives
// the request and no state is shared between the two sides.
//
// =============================================================================

package compare

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ypbank/txcompare/internal/codec"
	"github.com/ypbank/txcompare/internal/record"
	"github.com/ypbank/txcompare/internal/registry"
)

// Input is one side of a comparison: a byte stream plus the format
// identifier to decode it with. Name labels the side in logs and reports.
type Input struct {
	Name   string
	Format string
	Reader io.Reader
}

// Pipeline runs comparison requests against a fixed registry.
type Pipeline struct {
	registry *registry.Registry
	log      zerolog.Logger

	// Sequential disables the concurrent decode; results are identical
	// either way.
	Sequential bool
}

// NewPipeline returns a pipeline using the given registry and logger.
func NewPipeline(reg *registry.Registry, log zerolog.Logger) *Pipeline {
	return &Pipeline{registry: reg, log: log}
}

// Run decodes both inputs and returns the first divergence (or Match). A
// failed decode short-circuits into a DecodeFailure tagged with the side
// that failed; the comparator is never invoked in that case.
func (p *Pipeline) Run(ctx context.Context, first, second Input) Outcome {
	left, right, failure := p.decodeBoth(ctx, first, second)
	if failure != nil {
		return *failure
	}
	return Compare(left, right)
}

// RunAll is Run with an exhaustive divergence report.
func (p *Pipeline) RunAll(ctx context.Context, first, second Input) []Outcome {
	left, right, failure := p.decodeBoth(ctx, first, second)
	if failure != nil {
		return []Outcome{*failure}
	}
	return CompareAll(left, right)
}

type sideResult struct {
	side    Side
	records []record.TransactionRecord
	err     error
}

// decodeBoth resolves and decodes the two inputs. When both sides fail, the
// first side's failure is reported, keeping the outcome independent of
// decode scheduling.
func (p *Pipeline) decodeBoth(ctx context.Context, first, second Input) ([]record.TransactionRecord, []record.TransactionRecord, *DecodeFailure) {
	log := p.log.With().Str("run_id", uuid.NewString()).Logger()

	firstCodec, err := p.registry.Lookup(first.Format)
	if err != nil {
		return nil, nil, &DecodeFailure{Side: SideFirst, Err: err}
	}
	secondCodec, err := p.registry.Lookup(second.Format)
	if err != nil {
		return nil, nil, &DecodeFailure{Side: SideSecond, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, &DecodeFailure{Side: SideFirst, Err: fmt.Errorf("comparison canceled: %w", err)}
	}

	results := make(chan sideResult, 2)
	decode := func(side Side, in Input, c codec.Codec) {
		start := time.Now()
		records, err := c.Decode(in.Reader)
		if err == nil {
			log.Debug().
				Str("side", side.String()).
				Str("input", in.Name).
				Str("format", in.Format).
				Int("records", len(records)).
				Dur("elapsed", time.Since(start)).
				Msg("decoded input")
		}
		results <- sideResult{side: side, records: records, err: err}
	}

	if p.Sequential {
		decode(SideFirst, first, firstCodec)
		decode(SideSecond, second, secondCodec)
	} else {
		go decode(SideFirst, first, firstCodec)
		go decode(SideSecond, second, secondCodec)
	}

	// Both sides are awaited even when one fails fast.
	bySide := make(map[Side]sideResult, 2)
	for i := 0; i < 2; i++ {
		res := <-results
		bySide[res.side] = res
	}

	for _, side := range []Side{SideFirst, SideSecond} {
		if res := bySide[side]; res.err != nil {
			log.Debug().Str("side", side.String()).Err(res.err).Msg("decode failed")
			return nil, nil, &DecodeFailure{Side: side, Err: res.err}
		}
	}

	return bySide[SideFirst].records, bySide[SideSecond].records, nil
}
