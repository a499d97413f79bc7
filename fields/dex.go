// Package fields provides DEX-specific logging field helpers.
//
// These helpers create structured fields with consistent naming for
// pool, token, and swap data across Lumine services.
//
// Usage:
//
//	import "github.com/luminelabs/glint/fields"
//
//	log.Info(ctx, "pool decoded",
//	    fields.PoolAddress("8sLbN..."),
//	    fields.TokenMint("So111..."),
//	    fields.LatencyMs(12.5),
//	)
package fields

import "github.com/luminelabs/glint"

// --- Pool fields ---

// PoolAddress creates a pool address field.
func PoolAddress(addr string) glint.Field {
	return glint.String("pool_address", addr)
}

// PoolProgram creates a pool program (AMM) field.
func PoolProgram(program string) glint.Field {
	return glint.String("pool_program", program)
}

// Reserves creates base/quote reserve fields rendered as one list.
func Reserves(base, quote string) glint.Field {
	return glint.Strings("reserves", []string{base, quote})
}

// --- Token fields ---

// TokenMint creates a token mint field.
func TokenMint(mint string) glint.Field {
	return glint.String("token_mint", mint)
}

// TokenSymbol creates a token symbol field.
func TokenSymbol(symbol string) glint.Field {
	return glint.String("token_symbol", symbol)
}

// Decimals creates a token decimals field.
func Decimals(d int) glint.Field {
	return glint.Int("decimals", d)
}

// --- Transaction fields ---

// TxSignature creates a transaction signature field.
func TxSignature(sig string) glint.Field {
	return glint.String("tx_signature", sig)
}

// Slot creates a slot field without truncation.
func Slot(slot uint64) glint.Field {
	return glint.Uint64("slot", slot)
}

// BlockHeight creates a block height field without truncation.
func BlockHeight(height uint64) glint.Field {
	return glint.Uint64("block_height", height)
}

// --- Timing fields ---

// LatencyMs creates a latency field in milliseconds.
func LatencyMs(ms float64) glint.Field {
	return glint.Float64("latency_ms", ms)
}

// BatchSize creates a batch size field.
func BatchSize(n int) glint.Field {
	return glint.Int("batch_size", n)
}
