package labels

import (
	"testing"

	"github.com/nao1215/solscan/internal/model"
)

// TestStaticResolverLookup tests bundled and custom label resolution.
func TestStaticResolverLookup(t *testing.T) {
	t.Parallel()

	t.Run("bundled entry resolves", func(t *testing.T) {
		t.Parallel()

		r := NewStaticResolver(nil)
		label, ok := r.Lookup("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
		if !ok {
			t.Fatal("expected bundled label to resolve")
		}
		if label.Name != "Binance" || label.Type != "exchange" {
			t.Errorf("unexpected label: %+v", label)
		}
	})

	t.Run("unknown address is absent", func(t *testing.T) {
		t.Parallel()

		r := NewStaticResolver(nil)
		if _, ok := r.Lookup("So11111111111111111111111111111111111111112"); ok {
			t.Error("expected no label for unknown address")
		}
	})

	t.Run("custom entry overrides bundled", func(t *testing.T) {
		t.Parallel()

		custom := []model.Label{
			{Address: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Name: "My Exchange", Type: "exchange"},
			{Address: "FriendWa11et1111111111111111111111111111111", Name: "Alice", Type: "other"},
		}
		r := NewStaticResolver(custom)

		label, ok := r.Lookup("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
		if !ok || label.Name != "My Exchange" {
			t.Errorf("expected custom override, got %+v", label)
		}

		label, ok = r.Lookup("FriendWa11et1111111111111111111111111111111")
		if !ok || label.Name != "Alice" {
			t.Errorf("expected custom label, got %+v", label)
		}
	})
}

// TestStaticResolverLookupMany tests batch resolution.
func TestStaticResolverLookupMany(t *testing.T) {
	t.Parallel()

	r := NewStaticResolver(nil)
	got := r.LookupMany([]string{
		"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		"unknown-address",
		"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 resolved labels, got %d", len(got))
	}
	if got["JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"].Name != "Jupiter" {
		t.Errorf("unexpected label map: %+v", got)
	}
	if _, ok := got["unknown-address"]; ok {
		t.Error("unknown address should be absent from the result")
	}
}
