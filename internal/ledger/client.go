package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/nao1215/solscan/internal/model"
)

// RPCClient is the subset of Solana RPC operations the collector needs.
// Defining our own interface lets tests substitute a fake without a live
// RPC node.
type RPCClient interface {
	GetSignaturesForAddress(
		ctx context.Context,
		address solana.PublicKey,
		opts *rpc.GetSignaturesForAddressOpts,
	) ([]*rpc.TransactionSignature, error)

	GetTransaction(
		ctx context.Context,
		signature solana.Signature,
		opts *rpc.GetTransactionOpts,
	) (*rpc.GetTransactionResult, error)
}

// realRPCClient adapts the solana-go RPC client to the RPCClient interface.
type realRPCClient struct {
	client *rpc.Client
}

// NewRPCClient creates an RPCClient backed by the solana-go client.
// For premium endpoints that require API keys, include the key in the URL.
func NewRPCClient(rpcURL string) RPCClient {
	return &realRPCClient{client: rpc.New(rpcURL)}
}

func (r *realRPCClient) GetSignaturesForAddress(
	ctx context.Context,
	address solana.PublicKey,
	opts *rpc.GetSignaturesForAddressOpts,
) ([]*rpc.TransactionSignature, error) {
	return r.client.GetSignaturesForAddressWithOpts(ctx, address, opts)
}

func (r *realRPCClient) GetTransaction(
	ctx context.Context,
	signature solana.Signature,
	opts *rpc.GetTransactionOpts,
) (*rpc.GetTransactionResult, error) {
	return r.client.GetTransaction(ctx, signature, opts)
}

// CollectOptions bounds a collection run.
type CollectOptions struct {
	// MaxHistory caps the number of transactions fetched for wallet and
	// program targets. Zero means DefaultMaxHistory.
	MaxHistory int
}

// DefaultMaxHistory is the default transaction history bound.
const DefaultMaxHistory = 100

// maxFetchAttempts is the per-transaction retry budget.
const maxFetchAttempts = 3

// Collector fetches raw transaction records for a scan target.
type Collector struct {
	rpc    RPCClient
	logger *slog.Logger

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// NewCollector creates a Collector on top of the given RPC client.
// If logger is nil, slog.Default() is used.
func NewCollector(rpcClient RPCClient, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		rpc:    rpcClient,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Collect fetches the raw records for a target.
//
// Collect never returns an error: transient network failures degrade the
// batch instead of failing it. A structurally invalid target (unparseable
// address or signature) produces an empty batch with a warning, which the
// pipeline reports to the user.
func (c *Collector) Collect(ctx context.Context, target string, kind model.TargetKind, opts CollectOptions) *Batch {
	batch := &Batch{}

	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}

	switch kind {
	case model.TargetTransaction:
		c.collectTransaction(ctx, target, batch)
	case model.TargetWallet, model.TargetProgram:
		c.collectAddress(ctx, target, opts.MaxHistory, batch)
	default:
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("unknown target kind %q", kind))
	}

	c.logger.DebugContext(ctx, "collection finished",
		"target", target,
		"kind", string(kind),
		"transactions", len(batch.Transactions),
		"warnings", len(batch.Warnings),
	)
	return batch
}

// collectTransaction fetches a single transaction by signature.
func (c *Collector) collectTransaction(ctx context.Context, target string, batch *Batch) {
	sig, err := solana.SignatureFromBase58(target)
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("invalid transaction signature %q: %v", target, err))
		return
	}

	raw, err := c.fetchTransaction(ctx, sig)
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("could not fetch transaction %s: %v", sig, err))
		return
	}
	batch.Transactions = append(batch.Transactions, *raw)
}

// collectAddress fetches recent transaction history for a wallet or program.
func (c *Collector) collectAddress(ctx context.Context, target string, limit int, batch *Batch) {
	address, err := solana.PublicKeyFromBase58(target)
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("invalid address %q: %v", target, err))
		return
	}

	sigOpts := &rpc.GetSignaturesForAddressOpts{Limit: &limit}
	signatures, err := c.rpc.GetSignaturesForAddress(ctx, address, sigOpts)
	if err != nil {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf("could not list signatures for %s: %v", target, err))
		return
	}

	for _, sigInfo := range signatures {
		if ctx.Err() != nil {
			batch.Warnings = append(batch.Warnings, "collection cancelled before completion")
			return
		}

		raw, err := c.fetchTransaction(ctx, sigInfo.Signature)
		if err != nil {
			// Partial data is acceptable; skip this record and continue.
			c.logger.WarnContext(ctx, "skipping unfetchable transaction",
				"signature", sigInfo.Signature.String(),
				"error", err,
			)
			batch.Warnings = append(batch.Warnings,
				fmt.Sprintf("could not fetch transaction %s: %v", sigInfo.Signature, err))
			continue
		}
		batch.Transactions = append(batch.Transactions, *raw)
	}
}

// fetchTransaction fetches and converts one transaction with retries.
// Rate-limit responses back off longer than ordinary transient errors.
func (c *Collector) fetchTransaction(ctx context.Context, sig solana.Signature) (*RawTransaction, error) {
	maxVersion := uint64(0)
	opts := &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		MaxSupportedTransactionVersion: &maxVersion,
	}

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		result, err := c.rpc.GetTransaction(ctx, sig, opts)
		if err == nil {
			return convertTransaction(sig, result)
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		backoff := time.Duration(1<<uint(attempt)) * 500 * time.Millisecond
		if isRateLimited(err) {
			backoff = time.Duration(2<<uint(attempt)) * time.Second
			c.logger.WarnContext(ctx, "rate limited, backing off",
				"signature", sig.String(),
				"attempt", attempt+1,
				"backoff", backoff,
			)
		}
		c.sleep(backoff)
	}
	return nil, fmt.Errorf("fetch failed after %d attempts: %w", maxFetchAttempts, lastErr)
}

// isRateLimited reports whether an RPC error looks like a 429 response.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}
