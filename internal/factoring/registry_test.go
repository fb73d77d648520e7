package factoring

import (
	"context"
	"math/big"
	"reflect"
	"testing"
)

func TestFactoryList(t *testing.T) {
	f := NewDefaultFactory()
	want := []string{"classical", "shor"}
	if got := f.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestFactoryHas(t *testing.T) {
	f := NewDefaultFactory()
	if !f.Has("classical") || !f.Has("shor") {
		t.Error("expected the default algorithms to be registered")
	}
	if f.Has("grover") {
		t.Error("expected unknown names to report false")
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewDefaultFactory()

	t.Run("Classical", func(t *testing.T) {
		alg, err := f.Create("classical", DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		factors, err := alg.Factor(context.Background(), big.NewInt(15))
		if err != nil {
			t.Fatalf("Factor failed: %v", err)
		}
		if len(factors) != 2 || factors[0].Int64() != 3 || factors[1].Int64() != 5 {
			t.Errorf("expected [3 5], got %v", factors)
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		if _, err := f.Create("grover", DefaultConfig()); err == nil {
			t.Error("expected an error for an unregistered name")
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shots = -1
		if _, err := f.Create("shor", cfg); err == nil {
			t.Error("expected an error for negative shots")
		}
	})

	t.Run("ZeroConfigNormalized", func(t *testing.T) {
		alg, err := f.Create("classical", Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if alg.Config().Backend != DefaultBackend {
			t.Errorf("expected backend %q, got %q", DefaultBackend, alg.Config().Backend)
		}
	})
}

func TestFactoryRegisterNilBuilder(t *testing.T) {
	f := NewDefaultFactory()
	if err := f.Register("broken", nil); err == nil {
		t.Error("expected an error for a nil builder")
	}
	if f.Has("broken") {
		t.Error("a nil builder must not be registered")
	}
}

func TestFactoryMustCreatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustCreate to panic on an unknown name")
		}
	}()
	NewDefaultFactory().MustCreate("grover", DefaultConfig())
}

func TestGlobalFactory(t *testing.T) {
	if GlobalFactory() == nil {
		t.Fatal("global factory must not be nil")
	}
	if !GlobalFactory().Has("classical") {
		t.Error("global factory must carry the default algorithms")
	}
}
