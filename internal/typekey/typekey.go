// Package typekey builds and inspects the compact signature strings
// used to key multi-argument typemaps (spec.md section 4.1).
package typekey

import "strings"

const opPrefix = "tmap:"

var opKeyCache = make(map[string]string)

// OpKey returns the memoised op-key for op: "tmap:" + op. Identical
// op strings always return the identical Go string value, matching
// the memoisation spec.md calls for.
func OpKey(op string) string {
	if k, ok := opKeyCache[op]; ok {
		return k
	}
	k := opPrefix + op
	opKeyCache[op] = k
	return k
}

// Suffix builds the textual suffix encoding one preceding parameter
// of a multi-argument typemap: "-" + T + "+" + N + ":". N may be
// empty when the parameter carries no name.
func Suffix(typ, name string) string {
	return "-" + typ + "+" + name + ":"
}

// Arity returns the number of preceding parameters encoded in key k,
// counted as the number of '+' characters it contains.
func Arity(key string) int {
	return strings.Count(key, "+")
}

// BareOp recovers the user-supplied op name from a full op-key,
// stripping the "tmap:" prefix and any trailing suffix chain.
func BareOp(key string) string {
	key = strings.TrimPrefix(key, opPrefix)
	if i := strings.IndexByte(key, '-'); i >= 0 {
		return key[:i]
	}
	return key
}

// ReplaceSuffix rewrites key by textually substituting the first
// occurrence of oldSuffix with newSuffix, used by apply (spec.md
// section 4.3) to retarget a source op-key onto a destination
// signature.
func ReplaceSuffix(key, oldSuffix, newSuffix string) (string, bool) {
	idx := strings.Index(key, oldSuffix)
	if idx < 0 {
		return key, false
	}
	return key[:idx] + newSuffix + key[idx+len(oldSuffix):], true
}

// Contains reports whether key contains sig as a substring, the
// matching rule apply/clear_apply use to find every op-key derived
// from a given source/target signature (spec.md section 4.3).
func Contains(key, sig string) bool {
	return strings.Contains(key, sig)
}
