package domain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

func TestNewMutagen_UnknownStrategy(t *testing.T) {
	_, err := NewMutagen(m.Strategy("no-such-strategy"), pkg.NewRandomSource(1))
	if !errors.Is(err, m.ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	var mutationErr *m.MutationError
	if !errors.As(err, &mutationErr) || mutationErr.Code != m.CodeUsage {
		t.Fatalf("expected usage code, got %v", err)
	}
}

func TestNewMutagen_MissingRandomSource(t *testing.T) {
	_, err := NewMutagen(m.StrategyByteDrop, nil)
	if !errors.Is(err, m.ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestMutagen_EveryStrategyProducesTerminatedOutput(t *testing.T) {
	inputs := map[m.Family][]byte{
		m.FamilyByte:   []byte("hello fuzzing world"),
		m.FamilyLine:   []byte("alpha\nbeta\ngamma\ndelta\n"),
		m.FamilyTree:   []byte("root(a(b)(c))(d(e))"),
		m.FamilyFusion: []byte("abcabcabdabcabd"),
		m.FamilyText:   []byte("size=\"large\" count=42"),
	}

	for _, info := range Strategies() {
		t.Run(string(info.Strategy), func(t *testing.T) {
			input := inputs[info.Family]
			original := bytes.Clone(input)

			mg, err := NewMutagen(info.Strategy, pkg.NewRandomSource(1234))
			if err != nil {
				t.Fatalf("NewMutagen failed: %v", err)
			}

			if mg.Strategy() != info.Strategy {
				t.Fatalf("expected strategy %s, got %s", info.Strategy, mg.Strategy())
			}

			out, err := mg.Mutate(context.Background(), input)
			if err != nil {
				t.Fatalf("Mutate failed: %v", err)
			}

			if len(out) == 0 || out[len(out)-1] != 0 {
				t.Fatalf("expected null-terminated output, got %q", out)
			}

			if !bytes.Equal(input, original) {
				t.Fatalf("input was modified: %q", input)
			}
		})
	}
}

func TestMutagen_Deterministic(t *testing.T) {
	input := []byte("one\ntwo\nthree\n")

	for _, info := range Strategies() {
		if info.Family != m.FamilyByte && info.Family != m.FamilyLine {
			continue
		}

		first, err := mutateOnce(info.Strategy, 77, input)
		if err != nil {
			t.Fatalf("%s: %v", info.Strategy, err)
		}

		second, err := mutateOnce(info.Strategy, 77, input)
		if err != nil {
			t.Fatalf("%s: %v", info.Strategy, err)
		}

		if !bytes.Equal(first, second) {
			t.Fatalf("%s: expected identical output for the same seed, got %q and %q", info.Strategy, first, second)
		}
	}
}

func mutateOnce(strategy m.Strategy, seed uint64, input []byte) ([]byte, error) {
	mg, err := NewMutagen(strategy, pkg.NewRandomSource(seed))
	if err != nil {
		return nil, err
	}

	return mg.Mutate(context.Background(), input)
}

func TestMutagen_MinSeedIndexKeepsPrefix(t *testing.T) {
	input := []byte("HEADERpayload")

	for seed := range uint64(25) {
		mg, err := NewMutagen(m.StrategyByteRandomize, pkg.NewRandomSource(seed), WithMinSeedIndex(6))
		if err != nil {
			t.Fatalf("NewMutagen failed: %v", err)
		}

		out, err := mg.Mutate(context.Background(), input)
		if err != nil {
			t.Fatalf("Mutate failed: %v", err)
		}

		if !bytes.HasPrefix(out, []byte("HEADER")) {
			t.Fatalf("seed %d edited the protected prefix: %q", seed, out)
		}
	}
}

func TestMutagen_MinSeedIndexOutOfRange(t *testing.T) {
	mg, err := NewMutagen(m.StrategyByteDrop, pkg.NewRandomSource(1), WithMinSeedIndex(10))
	if err != nil {
		t.Fatalf("NewMutagen failed: %v", err)
	}

	_, err = mg.Mutate(context.Background(), []byte("short"))
	if !errors.Is(err, m.ErrIndexOutOfRange) {
		t.Fatalf("expected index out of range, got %v", err)
	}
}

func TestMutagen_PropagatesUsageErrors(t *testing.T) {
	mg, err := NewMutagen(m.StrategyLinePermute, pkg.NewRandomSource(1))
	if err != nil {
		t.Fatalf("NewMutagen failed: %v", err)
	}

	_, err = mg.Mutate(context.Background(), []byte("G\n"))
	if !errors.Is(err, m.ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestMutagen_CancelledContext(t *testing.T) {
	mg, err := NewMutagen(m.StrategyByteDrop, pkg.NewRandomSource(1))
	if err != nil {
		t.Fatalf("NewMutagen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mg.Mutate(ctx, []byte("abc")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStrategies_OrderedAndComplete(t *testing.T) {
	infos := Strategies()
	if len(infos) != len(strategyRegistry) {
		t.Fatalf("expected %d strategies, got %d", len(strategyRegistry), len(infos))
	}

	if infos[0].Family != m.FamilyByte || infos[len(infos)-1].Family != m.FamilyText {
		t.Fatalf("unexpected family order: first %s, last %s", infos[0].Family, infos[len(infos)-1].Family)
	}

	for i := 1; i < len(infos); i++ {
		prev, cur := infos[i-1], infos[i]
		if prev.Family == cur.Family && prev.Strategy >= cur.Strategy {
			t.Fatalf("strategies not sorted within family %s: %s before %s", cur.Family, prev.Strategy, cur.Strategy)
		}
	}

	info, ok := LookupStrategy(m.StrategyTreeRepeatPath)
	if !ok || info.Family != m.FamilyTree || info.Seeded {
		t.Fatalf("unexpected registration for %s: %+v", m.StrategyTreeRepeatPath, info)
	}
}
