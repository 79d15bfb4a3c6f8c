// Package token gives the multi-asset engine stable identity for the
// assets in its token universe: a symbol, a daoleno/uniswap-sdk-core
// Token (decimals/symbol metadata only, never touched by reserve math),
// and a deterministic pool-id hash derived from go-ethereum's Keccak256.
package token

import (
	"fmt"

	core "github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// chainID is a placeholder identity used purely to satisfy core.NewToken;
// this module never touches a real chain.
const chainID = 1

// Registry assigns each simulation asset index a symbol and a
// core.Token for metadata purposes.
type Registry struct {
	symbols []string
	tokens  []*core.Token
}

// NewRegistry builds a Registry for n assets named asset0, asset1, ...;
// use NewRegistryWithSymbols to choose the names.
func NewRegistry(n int) *Registry {
	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("asset%d", i)
	}
	return newRegistryFromSymbols(symbols)
}

// NewRegistryWithSymbols builds a Registry using the given symbol list;
// len(symbols) determines the asset count.
func NewRegistryWithSymbols(symbols []string) *Registry {
	return newRegistryFromSymbols(symbols)
}

func newRegistryFromSymbols(symbols []string) *Registry {
	tokens := make([]*core.Token, len(symbols))
	for i, sym := range symbols {
		addr := syntheticAddress(i)
		tokens[i] = core.NewToken(chainID, addr, 18, sym, sym)
	}
	return &Registry{symbols: append([]string(nil), symbols...), tokens: tokens}
}

// syntheticAddress derives a stable, collision-free placeholder address
// for asset index i, since this module has no real on-chain tokens.
func syntheticAddress(i int) common.Address {
	h := crypto.Keccak256Hash([]byte(fmt.Sprintf("feesim-asset-%d", i)))
	return common.BytesToAddress(h.Bytes())
}

// Symbol returns the display symbol for asset index i.
func (r *Registry) Symbol(i int) string {
	if i < 0 || i >= len(r.symbols) {
		return fmt.Sprintf("asset%d", i)
	}
	return r.symbols[i]
}

// Token returns the core.Token metadata handle for asset index i.
func (r *Registry) Token(i int) *core.Token {
	if i < 0 || i >= len(r.tokens) {
		return nil
	}
	return r.tokens[i]
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	return len(r.symbols)
}

// PoolID derives a stable identifier for the pool trading tokenA/tokenB
// at the given pool index, via Keccak256 over the ordered symbols. Two
// pools trading the same pair at different indices still hash
// distinctly because the index is folded in.
func (r *Registry) PoolID(tokenA, tokenB, poolIndex int) string {
	data := fmt.Sprintf("%s/%s#%d", r.Symbol(tokenA), r.Symbol(tokenB), poolIndex)
	h := crypto.Keccak256Hash([]byte(data))
	return h.Hex()
}
