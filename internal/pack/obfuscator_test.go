package pack

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneReturnsInputUnchanged(t *testing.T) {
	for _, name := range []string{"", "steve", "some/path.png", "UPPER"} {
		assert.Equal(t, name, None.Obfuscate(name))
	}
}

func TestOrderIsIdempotentPerName(t *testing.T) {
	o := NewOrder()
	first := o.Obfuscate("dragon")
	_ = o.Obfuscate("wolf")
	assert.Equal(t, first, o.Obfuscate("dragon"))
}

func TestOrderTokenLengthBoundary(t *testing.T) {
	o := NewOrder()
	for i := 0; i < 36; i++ {
		token := o.Obfuscate(fmt.Sprintf("name-%d", i))
		assert.Len(t, token, 1, "assignment %d should get a single-character token", i)
	}
	token := o.Obfuscate("name-36")
	assert.Len(t, token, 2, "37th assignment should get a two-character token")
}

func TestOrderTokensAreCollisionFree(t *testing.T) {
	o := NewOrder()
	seen := make(map[string]string)
	for i := 0; i < 5000; i++ {
		name := fmt.Sprintf("name-%d", i)
		token := o.Obfuscate(name)
		if prev, ok := seen[token]; ok {
			t.Fatalf("token %q assigned to both %q and %q", token, prev, name)
		}
		seen[token] = name
	}
}

func TestOrderFirstTokensFollowAlphabet(t *testing.T) {
	o := NewOrder()
	assert.Equal(t, "a", o.Obfuscate("first"))
	assert.Equal(t, "b", o.Obfuscate("second"))
	assert.Equal(t, "c", o.Obfuscate("third"))
}

func TestOrderConcurrentAssignmentsStayUnique(t *testing.T) {
	o := NewOrder()
	const names = 500
	tokens := make([]string, names)

	var wg sync.WaitGroup
	for i := 0; i < names; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = o.Obfuscate(fmt.Sprintf("name-%d", i))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, names)
	for i, token := range tokens {
		require.NotEmpty(t, token, "name %d got no token", i)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q under concurrency", token)
		}
		seen[token] = struct{}{}
	}
}

func TestPairNamespacesAreIndependent(t *testing.T) {
	p := NewPair(NewOrder(), NewOrder())
	m := p.Models.Obfuscate("shared-name")
	x := p.Textures.Obfuscate("other")
	assert.Equal(t, m, x, "independent counters both start at the first token")
	assert.Equal(t, "a", m)
}

func TestForConfig(t *testing.T) {
	assert.Equal(t, "raw", ForConfig(false).Obfuscate("raw"))
	assert.Equal(t, "a", ForConfig(true).Obfuscate("raw"))
}
