package pack

import "sync"

// Obfuscator deterministically renames raw identifiers to short opaque
// tokens, shrinking pack output and hiding original names.
type Obfuscator interface {
	Obfuscate(rawName string) string
}

// None returns every name unchanged. Used when obfuscation is disabled.
var None Obfuscator = noneObfuscator{}

type noneObfuscator struct{}

func (noneObfuscator) Obfuscate(rawName string) string { return rawName }

// tokenAlphabet holds the 36 filesystem- and identifier-safe symbols used
// for generated tokens. The ordering is fixed: changing it changes every
// assigned token.
var tokenAlphabet = []byte{
	'a', 'b', 'c', 'd', 'e', 'f', 'g',
	'h', 'i', 'j', 'k', 'm', 'n', 'l', 'o', 'p',
	'q', 'r', 's', 't', 'u', 'v',
	'w', 'x', 'y', 'z',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
}

// orderObfuscator derives tokens from the assignment index alone: the Nth
// distinct name gets the Nth token of a bijective counter over
// tokenAlphabet (single characters for the first 36 names, two characters
// from the 37th, spreadsheet-column style). Tokens are reproducible only
// when names arrive in the same order.
type orderObfuscator struct {
	mu    sync.Mutex
	names map[string]string
}

// NewOrder returns an order-based obfuscator with an empty assignment
// table.
func NewOrder() Obfuscator {
	return &orderObfuscator{names: make(map[string]string)}
}

func (o *orderObfuscator) Obfuscate(rawName string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if token, ok := o.names[rawName]; ok {
		return token
	}
	n := len(o.names)
	var buf []byte
	for n >= len(tokenAlphabet) {
		buf = append(buf, tokenAlphabet[n%len(tokenAlphabet)])
		n /= len(tokenAlphabet)
	}
	buf = append(buf, tokenAlphabet[n%len(tokenAlphabet)])
	token := string(buf)
	o.names[rawName] = token
	return token
}

// Pair composes two independent obfuscators so model names and texture
// names live in separate token namespaces: equal raw names in the two
// namespaces never force a token collision.
type Pair struct {
	Models   Obfuscator
	Textures Obfuscator
}

// NewPair builds a pair from two independent obfuscators.
func NewPair(models, textures Obfuscator) Pair {
	return Pair{Models: models, Textures: textures}
}

// ForConfig returns an order obfuscator when enabled, otherwise None.
func ForConfig(enabled bool) Obfuscator {
	if enabled {
		return NewOrder()
	}
	return None
}
