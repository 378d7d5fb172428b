package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAggregateIdempotent(t *testing.T) {
	id1 := RegisterAggregate("TEST_IDEMPOTENT")
	id2 := RegisterAggregate("TEST_IDEMPOTENT")

	assert.Equal(t, id1, id2, "same name should return same ID")
}

func TestRegisterAggregateDifferentNames(t *testing.T) {
	id1 := RegisterAggregate("TEST_NAME_A")
	id2 := RegisterAggregate("TEST_NAME_B")

	assert.NotEqual(t, id1, id2)
}

func TestRegisterAggregateConcurrent(t *testing.T) {
	const numGoroutines = 100
	var wg sync.WaitGroup
	ids := make([]TokenType, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ids[idx] = RegisterAggregate("TEST_CONCURRENT")
		}(i)
	}
	wg.Wait()

	for i := 1; i < numGoroutines; i++ {
		require.Equal(t, ids[0], ids[i], "concurrent registration should return same ID")
	}
}

func TestExtensionAggregatesRegistered(t *testing.T) {
	for _, name := range []string{"STDDEV", "MEDIAN", "ARRAY_AGG", "BOOL_OR"} {
		tok, ok := LookupDynamicKeyword(name)
		require.True(t, ok, name)
		assert.True(t, IsAggregate(tok), name)
		assert.Equal(t, name, tok.String())
		assert.Equal(t, tok, LookupIdent(name))
	}

	// lower-case spellings stay identifiers
	assert.Equal(t, IDENT, LookupIdent("median"))
}

func TestIsDynamic(t *testing.T) {
	assert.False(t, IsDynamic(SELECT))
	assert.False(t, IsDynamic(COUNT))
	assert.False(t, IsDynamic(EOF))

	assert.True(t, IsDynamic(RegisterAggregate("TEST_DYNAMIC_CHECK")))
}

func TestRegisteredTokens(t *testing.T) {
	name := "TEST_REGISTERED_TOKENS"
	id := RegisterAggregate(name)

	tokens := RegisteredTokens()
	assert.Equal(t, name, tokens[id])

	tokens[id] = "MODIFIED"
	assert.Equal(t, name, RegisteredTokens()[id], "RegisteredTokens should return a copy")
}
