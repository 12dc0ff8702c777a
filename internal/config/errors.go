package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoTarget is returned when no target address or signature is specified.
	ErrNoTarget = errors.New("no target specified: provide an address or transaction signature")

	// ErrNoRPCEndpoint is returned when the RPC endpoint is empty.
	// Every scan needs an endpoint to fetch on-chain data from.
	ErrNoRPCEndpoint = errors.New("no RPC endpoint specified: use --rpc or remove the empty override")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate collection failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxHistory is returned when the history limit is not positive.
	// A limit of zero would fetch no transactions, making every scan empty.
	ErrInvalidMaxHistory = errors.New("invalid history limit: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans, effectively stopping
	// the scanning process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidTargetType is returned when the target type is not one of
	// "wallet", "transaction", or "program".
	ErrInvalidTargetType = errors.New("invalid target type: must be wallet, transaction, or program")
)
