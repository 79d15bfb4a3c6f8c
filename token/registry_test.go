package token_test

import (
	"testing"

	"github.com/parkercole/feesim/token"
)

func TestRegistrySymbols(t *testing.T) {
	r := token.NewRegistryWithSymbols([]string{"USD", "ETH", "BTC"})
	if r.Len() != 3 {
		t.Fatalf("expected 3 assets, got %d", r.Len())
	}
	if r.Symbol(1) != "ETH" {
		t.Fatalf("expected ETH, got %s", r.Symbol(1))
	}
	if tok := r.Token(1); tok == nil {
		t.Fatalf("expected non-nil token metadata")
	}
}

func TestPoolIDDeterministicAndDistinct(t *testing.T) {
	r := token.NewRegistry(3)
	a := r.PoolID(0, 1, 0)
	b := r.PoolID(0, 1, 0)
	if a != b {
		t.Fatalf("expected deterministic pool id, got %s vs %s", a, b)
	}
	c := r.PoolID(0, 1, 1)
	if a == c {
		t.Fatalf("expected distinct pool ids for distinct pool indices")
	}
}
