// Package domain contains the mutation dispatcher and the batch generation workflow.
package domain

import (
	"context"
	"sort"

	"gooze.dev/pkg/fuzzmut/internal/domain/mutagens"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// Mutagen produces one mutated test case per call with a fixed strategy.
type Mutagen interface {
	Strategy() m.Strategy
	Mutate(ctx context.Context, src []byte) ([]byte, error)
}

type mutateFunc func(data []byte, rng m.RandomSource, minSeed int) ([]byte, error)

type registration struct {
	info   m.StrategyInfo
	mutate mutateFunc
}

func unseeded[F ~func([]byte, m.RandomSource) ([]byte, error)](fn F) mutateFunc {
	return func(data []byte, rng m.RandomSource, _ int) ([]byte, error) {
		return fn(data, rng)
	}
}

func register(strategy m.Strategy, family m.Family, description string, fn mutateFunc, seeded bool) registration {
	return registration{
		info: m.StrategyInfo{
			Strategy:    strategy,
			Family:      family,
			Description: description,
			Seeded:      seeded,
		},
		mutate: fn,
	}
}

var strategyRegistry = map[m.Strategy]registration{
	m.StrategyByteDrop:      register(m.StrategyByteDrop, m.FamilyByte, "remove one byte", mutagens.DropByte, true),
	m.StrategyByteFlip:      register(m.StrategyByteFlip, m.FamilyByte, "flip one bit of one byte", mutagens.FlipBit, true),
	m.StrategyByteInsert:    register(m.StrategyByteInsert, m.FamilyByte, "insert a random byte", mutagens.InsertByte, true),
	m.StrategyByteRepeat:    register(m.StrategyByteRepeat, m.FamilyByte, "repeat one byte", mutagens.RepeatByte, true),
	m.StrategyBytePermute:   register(m.StrategyBytePermute, m.FamilyByte, "shuffle bytes after the seed index", mutagens.PermuteBytes, true),
	m.StrategyByteIncrement: register(m.StrategyByteIncrement, m.FamilyByte, "increment one byte modulo 127", mutagens.IncrementByte, true),
	m.StrategyByteDecrement: register(m.StrategyByteDecrement, m.FamilyByte, "decrement one byte modulo 127", mutagens.DecrementByte, true),
	m.StrategyByteRandomize: register(m.StrategyByteRandomize, m.FamilyByte, "overwrite one byte", mutagens.RandomizeByte, true),

	m.StrategyLineDelete:         register(m.StrategyLineDelete, m.FamilyLine, "delete one line", unseeded(mutagens.DeleteLine), false),
	m.StrategyLineDeleteSequence: register(m.StrategyLineDeleteSequence, m.FamilyLine, "delete a run of lines", unseeded(mutagens.DeleteSequentialLines), false),
	m.StrategyLineDuplicate:      register(m.StrategyLineDuplicate, m.FamilyLine, "duplicate one line", unseeded(mutagens.DuplicateLine), false),
	m.StrategyLineRepeat:         register(m.StrategyLineRepeat, m.FamilyLine, "repeat one line many times", unseeded(mutagens.RepeatLine), false),
	m.StrategyLineCopyCloseBy:    register(m.StrategyLineCopyCloseBy, m.FamilyLine, "copy a line to another line boundary", unseeded(mutagens.CopyLineCloseBy), false),
	m.StrategyLineSwap:           register(m.StrategyLineSwap, m.FamilyLine, "swap two adjacent lines", unseeded(mutagens.SwapLine), false),
	m.StrategyLinePermute:        register(m.StrategyLinePermute, m.FamilyLine, "shuffle lines", unseeded(mutagens.PermuteLines), false),

	m.StrategyTreeDeleteNode:    register(m.StrategyTreeDeleteNode, m.FamilyTree, "delete a node and its subtree", unseeded(mutagens.DeleteNode), false),
	m.StrategyTreeReplaceNode:   register(m.StrategyTreeReplaceNode, m.FamilyTree, "copy one node label onto another", unseeded(mutagens.ReplaceNode), false),
	m.StrategyTreeDuplicateNode: register(m.StrategyTreeDuplicateNode, m.FamilyTree, "copy a subtree under another node", unseeded(mutagens.DuplicateNode), false),
	m.StrategyTreeRepeatPath:    register(m.StrategyTreeRepeatPath, m.FamilyTree, "nest copies of a node inside itself", unseeded(mutagens.RepeatPathMutation), false),

	m.StrategyFuseSelf:   register(m.StrategyFuseSelf, m.FamilyFusion, "splice the input with itself", unseeded(mutagens.FuseSelf), false),
	m.StrategyFuseHalves: register(m.StrategyFuseHalves, m.FamilyFusion, "splice the two halves twice", unseeded(mutagens.FuseHalves), false),
	m.StrategyFuseDouble: register(m.StrategyFuseDouble, m.FamilyFusion, "splice twice through the whole input", unseeded(mutagens.FuseDouble), false),
	m.StrategyFuseTriple: register(m.StrategyFuseTriple, m.FamilyFusion, "splice three times through the whole input", unseeded(mutagens.FuseTriple), false),

	m.StrategyNumber:   register(m.StrategyNumber, m.FamilyText, "rewrite an embedded integer", unseeded(mutagens.MutateNumber), false),
	m.StrategyASCIIBad: register(m.StrategyASCIIBad, m.FamilyText, "inject a hostile string into a quoted string", unseeded(mutagens.MutateASCIIBad), false),
}

var familyOrder = map[m.Family]int{
	m.FamilyByte:   0,
	m.FamilyLine:   1,
	m.FamilyTree:   2,
	m.FamilyFusion: 3,
	m.FamilyText:   4,
}

// Strategies lists every registered strategy ordered by family, then name.
func Strategies() []m.StrategyInfo {
	infos := make([]m.StrategyInfo, 0, len(strategyRegistry))
	for _, reg := range strategyRegistry {
		infos = append(infos, reg.info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Family != infos[j].Family {
			return familyOrder[infos[i].Family] < familyOrder[infos[j].Family]
		}

		return infos[i].Strategy < infos[j].Strategy
	})

	return infos
}

// LookupStrategy returns the registration of strategy, if any.
func LookupStrategy(strategy m.Strategy) (m.StrategyInfo, bool) {
	reg, ok := strategyRegistry[strategy]
	return reg.info, ok
}

// MutagenOption configures a Mutagen.
type MutagenOption func(*mutagenConfig)

type mutagenConfig struct {
	minSeedIndex int
}

// WithMinSeedIndex sets the lowest byte index the byte strategies may edit.
func WithMinSeedIndex(index int) MutagenOption {
	return func(c *mutagenConfig) {
		c.minSeedIndex = index
	}
}

// mutagen dispatches to a single registered primitive.
type mutagen struct {
	reg    registration
	rng    m.RandomSource
	config mutagenConfig
}

// NewMutagen binds strategy to rng. Unknown strategies fail with a usage error.
func NewMutagen(strategy m.Strategy, rng m.RandomSource, opts ...MutagenOption) (Mutagen, error) {
	reg, ok := strategyRegistry[strategy]
	if !ok {
		return nil, m.NewUsageError("unknown strategy %q", strategy)
	}

	if rng == nil {
		return nil, m.NewUsageError("strategy %q needs a random source", strategy)
	}

	var config mutagenConfig
	for _, opt := range opts {
		opt(&config)
	}

	return &mutagen{reg: reg, rng: rng, config: config}, nil
}

func (mg *mutagen) Strategy() m.Strategy {
	return mg.reg.info.Strategy
}

// Mutate returns a freshly allocated null-terminated mutation of src.
func (mg *mutagen) Mutate(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return mg.reg.mutate(src, mg.rng, mg.config.minSeedIndex)
}
