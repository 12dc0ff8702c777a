// Package labels resolves addresses to known-entity labels.
//
// The core pipeline only consumes the Resolver interface; it performs no
// storage or caching of labels itself. The bundled static table covers a
// curated set of publicly documented Solana entities, and users can extend
// it with custom entries from the configuration file.
package labels

import "github.com/nao1215/solscan/internal/model"

// Resolver maps addresses to known-entity labels.
type Resolver interface {
	// Lookup returns the label for an address and whether one exists.
	Lookup(address string) (model.Label, bool)

	// LookupMany resolves a set of addresses in one call. Addresses
	// without a label are absent from the result.
	LookupMany(addresses []string) map[string]model.Label
}

// staticLabels is the bundled known-entity table. Entries are publicly
// documented addresses: exchange hot wallets, bridges, and major protocol
// programs.
var staticLabels = map[string]model.Label{
	"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM": {
		Address:     "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Name:        "Binance",
		Type:        "exchange",
		Description: "Binance hot wallet",
	},
	"5tzFkiKscXHK5ZXCGbXZxdw7gTjjD1mBwuoFbhUvuAi9": {
		Address:     "5tzFkiKscXHK5ZXCGbXZxdw7gTjjD1mBwuoFbhUvuAi9",
		Name:        "Binance",
		Type:        "exchange",
		Description: "Binance hot wallet 2",
	},
	"H8sMJSCQxfKiFTCfDR3DUMLPwcRbM61LGFJ8N4dK3WjS": {
		Address:     "H8sMJSCQxfKiFTCfDR3DUMLPwcRbM61LGFJ8N4dK3WjS",
		Name:        "Coinbase",
		Type:        "exchange",
		Description: "Coinbase hot wallet",
	},
	"FWznbcNXWQuHTawe9RxvQ2LdCENssh12dsznf4RiouN5": {
		Address:     "FWznbcNXWQuHTawe9RxvQ2LdCENssh12dsznf4RiouN5",
		Name:        "Kraken",
		Type:        "exchange",
		Description: "Kraken hot wallet",
	},
	"worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth": {
		Address:     "worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth",
		Name:        "Wormhole",
		Type:        "bridge",
		Description: "Wormhole core bridge",
	},
	"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4": {
		Address:     "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
		Name:        "Jupiter",
		Type:        "protocol",
		Description: "Jupiter aggregator v6",
	},
	"675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8": {
		Address:     "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
		Name:        "Raydium",
		Type:        "protocol",
		Description: "Raydium AMM v4",
	},
	"whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc": {
		Address:     "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc",
		Name:        "Orca",
		Type:        "protocol",
		Description: "Orca Whirlpools",
	},
	"MarBmsSgKXdrN1egZf5sqe1TMai9K1rChYNDJgjq7aD": {
		Address:     "MarBmsSgKXdrN1egZf5sqe1TMai9K1rChYNDJgjq7aD",
		Name:        "Marinade",
		Type:        "protocol",
		Description: "Marinade liquid staking",
	},
}

// StaticResolver resolves labels from the bundled table plus optional
// custom entries. Custom entries take precedence over bundled ones.
type StaticResolver struct {
	custom map[string]model.Label
}

// NewStaticResolver creates a resolver over the bundled table.
// Custom labels, typically loaded from the configuration file, override
// bundled entries for the same address.
func NewStaticResolver(custom []model.Label) *StaticResolver {
	r := &StaticResolver{custom: make(map[string]model.Label, len(custom))}
	for _, l := range custom {
		if l.Address == "" {
			continue
		}
		r.custom[l.Address] = l
	}
	return r
}

// Lookup returns the label for an address and whether one exists.
func (r *StaticResolver) Lookup(address string) (model.Label, bool) {
	if l, ok := r.custom[address]; ok {
		return l, true
	}
	l, ok := staticLabels[address]
	return l, ok
}

// LookupMany resolves a set of addresses in one call.
func (r *StaticResolver) LookupMany(addresses []string) map[string]model.Label {
	out := make(map[string]model.Label)
	for _, addr := range addresses {
		if l, ok := r.Lookup(addr); ok {
			out[addr] = l
		}
	}
	return out
}
