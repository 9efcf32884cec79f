package random

import (
	"errors"
	"testing"
)

func TestNewSeedIsNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seed == 0 {
			t.Fatal("expected non-zero seed")
		}
	}
}

func TestResolveSeedKeepsExplicitSeed(t *testing.T) {
	called := false
	seed, err := ResolveSeed(42, func() (int64, error) {
		called = true
		return 7, nil
	})
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed != 42 || called {
		t.Fatalf("seed = %d, called = %v, want 42 without generator", seed, called)
	}
}

func TestResolveSeedGeneratesWhenUnset(t *testing.T) {
	seed, err := ResolveSeed(0, func() (int64, error) { return 7, nil })
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed != 7 {
		t.Fatalf("seed = %d, want 7", seed)
	}

	boom := errors.New("boom")
	if _, err := ResolveSeed(0, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestResolveSeedDefaultGenerator(t *testing.T) {
	seed, err := ResolveSeed(0, nil)
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed == 0 {
		t.Fatal("expected generated seed")
	}
}
