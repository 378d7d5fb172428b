package token

import "sync"

var (
	registryMu sync.RWMutex

	// nextTokenID tracks the next available dynamic token ID.
	// Dynamic tokens start after maxBuiltin (999).
	nextTokenID = maxBuiltin

	// dynamicTokens maps registered dynamic tokens to their names.
	dynamicTokens = make(map[TokenType]string)

	// dynamicKeywords maps registered names to their token types.
	dynamicKeywords = make(map[string]TokenType)
)

// extensionAggregates are dialect aggregate functions beyond the ANSI five.
var extensionAggregates = []string{
	"STDDEV",
	"STDDEV_POP",
	"STDDEV_SAMP",
	"VAR_POP",
	"VAR_SAMP",
	"VARIANCE",
	"FIRST",
	"LAST",
	"GROUP_CONCAT",
	"STRING_AGG",
	"MEDIAN",
	"MODE",
	"ARRAY_AGG",
	"JSON_AGG",
	"JSON_OBJECT_AGG",
	"BIT_AND",
	"BIT_OR",
	"BOOL_AND",
	"BOOL_OR",
}

func init() {
	for _, name := range extensionAggregates {
		RegisterAggregate(name)
	}
}

// RegisterAggregate registers an aggregate function keyword and returns its
// token type. Registering the same name twice returns the same type.
//
// Names are matched case-sensitively, like builtin keywords.
func RegisterAggregate(name string) TokenType {
	registryMu.Lock()
	defer registryMu.Unlock()

	if t, ok := dynamicKeywords[name]; ok {
		return t
	}
	nextTokenID++
	t := nextTokenID
	dynamicTokens[t] = name
	dynamicKeywords[name] = t
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

// LookupDynamicKeyword returns the token type for a registered name.
// Returns IDENT and false if the name is not registered.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if tok, ok := dynamicKeywords[name]; ok {
		return tok, true
	}
	return IDENT, false
}

// IsDynamic returns true if the token type was registered at runtime.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[TokenType]string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make(map[TokenType]string, len(dynamicTokens))
	for k, v := range dynamicTokens {
		result[k] = v
	}
	return result
}
