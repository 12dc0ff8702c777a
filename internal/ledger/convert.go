package ledger

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// convertTransaction maps an RPC GetTransactionResult onto a RawTransaction.
//
// For versioned transactions the static account list excludes addresses
// loaded from lookup tables; the runtime appends writable then read-only
// loaded addresses, so we do the same to keep balance arrays aligned with
// account indexes.
func convertTransaction(sig solana.Signature, result *rpc.GetTransactionResult) (*RawTransaction, error) {
	if result == nil {
		return nil, fmt.Errorf("empty result for %s", sig)
	}

	tx, err := result.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", sig, err)
	}

	raw := &RawTransaction{
		Signature:  sig.String(),
		Slot:       result.Slot,
		NumSigners: int(tx.Message.Header.NumRequiredSignatures),
	}

	if result.BlockTime != nil {
		t := result.BlockTime.Time()
		raw.BlockTime = &t
	}

	keys := make([]solana.PublicKey, 0, len(tx.Message.AccountKeys))
	keys = append(keys, tx.Message.AccountKeys...)
	if result.Meta != nil {
		keys = append(keys, result.Meta.LoadedAddresses.Writable...)
		keys = append(keys, result.Meta.LoadedAddresses.ReadOnly...)
	}
	raw.AccountKeys = make([]string, len(keys))
	for i, k := range keys {
		raw.AccountKeys[i] = k.String()
	}

	for _, inst := range tx.Message.Instructions {
		ri := RawInstruction{Data: inst.Data}
		if int(inst.ProgramIDIndex) < len(raw.AccountKeys) {
			ri.ProgramID = raw.AccountKeys[inst.ProgramIDIndex]
		}
		for _, idx := range inst.Accounts {
			ri.Accounts = append(ri.Accounts, int(idx))
		}
		raw.Instructions = append(raw.Instructions, ri)
	}

	if result.Meta != nil {
		raw.Failed = result.Meta.Err != nil
		raw.PreBalances = result.Meta.PreBalances
		raw.PostBalances = result.Meta.PostBalances
		raw.PreTokenBalances = convertTokenBalances(result.Meta.PreTokenBalances)
		raw.PostTokenBalances = convertTokenBalances(result.Meta.PostTokenBalances)
	}

	return raw, nil
}

// convertTokenBalances maps RPC token balance snapshots onto our flat form.
// Unparseable amounts degrade to zero rather than failing the record.
func convertTokenBalances(balances []rpc.TokenBalance) []TokenBalance {
	out := make([]TokenBalance, 0, len(balances))
	for _, b := range balances {
		tb := TokenBalance{
			AccountIndex: int(b.AccountIndex),
			Mint:         b.Mint.String(),
		}
		if b.Owner != nil {
			tb.Owner = b.Owner.String()
		}
		if b.UiTokenAmount != nil {
			tb.Decimals = b.UiTokenAmount.Decimals
			if amount, err := strconv.ParseUint(b.UiTokenAmount.Amount, 10, 64); err == nil {
				tb.Amount = amount
			}
		}
		out = append(out, tb)
	}
	return out
}
