package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministicUnderInsertionOrder(t *testing.T) {
	a := newResult(nil)
	a.Put(Key{Path: "models/x.json"}, []byte("one"))
	a.Put(Key{Path: "textures/y.png"}, []byte("two"))
	a.Put(Key{Overlay: "v2", Path: "models/x.json"}, []byte("three"))

	b := newResult(nil)
	b.Put(Key{Overlay: "v2", Path: "models/x.json"}, []byte("three"))
	b.Put(Key{Path: "textures/y.png"}, []byte("two"))
	b.Put(Key{Path: "models/x.json"}, []byte("one"))

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestHashChangesWithContent(t *testing.T) {
	a := newResult(nil)
	a.Put(Key{Path: "a.txt"}, []byte("hi"))
	b := newResult(nil)
	b.Put(Key{Path: "a.txt"}, []byte("ho"))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestKeysAreCanonicallyOrdered(t *testing.T) {
	r := newResult(nil)
	r.Put(Key{Overlay: "v2", Path: "a.txt"}, nil)
	r.Put(Key{Path: "z.txt"}, nil)
	r.Put(Key{Path: "a.txt"}, nil)

	keys := r.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, Key{Path: "a.txt"}, keys[0])
	assert.Equal(t, Key{Path: "z.txt"}, keys[1])
	assert.Equal(t, Key{Overlay: "v2", Path: "a.txt"}, keys[2])
}

func TestArchivePathFoldsOverlay(t *testing.T) {
	assert.Equal(t, "a/b.txt", Key{Path: "a/b.txt"}.ArchivePath())
	assert.Equal(t, "v2/a/b.txt", Key{Overlay: "v2", Path: "a/b.txt"}.ArchivePath())
}

func TestChangedPanicsBeforeFreeze(t *testing.T) {
	r := newResult(nil)
	assert.Panics(t, func() { r.Changed() })
}

func TestFreezeIsWriteOnce(t *testing.T) {
	r := newResult(nil)
	r.freeze(true)
	assert.True(t, r.Changed())
	assert.Panics(t, func() { r.freeze(false) })
	assert.Panics(t, func() { r.Put(Key{Path: "late.txt"}, nil) })
}

func TestMetaPassesThroughUnchanged(t *testing.T) {
	meta := map[string]string{"version": "7"}
	r := newResult(meta)
	assert.Equal(t, meta, r.Meta())
}

func TestResourceBytesComputedOnce(t *testing.T) {
	calls := 0
	r := NewResource("", "a.txt", 2, func() ([]byte, error) {
		calls++
		return []byte("hi"), nil
	})
	for i := 0; i < 3; i++ {
		data, err := r.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("hi"), data)
	}
	assert.Equal(t, 1, calls)
}
