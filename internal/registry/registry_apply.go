package registry

import (
	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/typekey"
)

// prefixSig computes the accumulated suffix over the first
// len(parms)-1 parameters, without touching the table at all. It is
// the pure-function twin of prefixSuffix used once the prefix nodes
// are already known to exist.
func prefixSig(parms []Param) string {
	sig := ""
	for i := 0; i < len(parms)-1; i++ {
		p := parms[i]
		sig += typekey.Suffix(ctype.Str(p.Type), p.Name)
	}
	return sig
}

// Apply implements the %apply directive (spec.md section 4.3):
// bulk-copy every typemap registered against src, in any scope, onto
// the corresponding entry for dest, preserving each op's suffix tail.
// Existing dest entries are never overwritten.
func (t *Table) Apply(src, dest []Param) error {
	if len(src) != len(dest) {
		return ErrArityMismatch
	}

	ssig := prefixSig(src)
	dsig := prefixSig(dest)

	lastDest := dest[len(dest)-1]
	lastSrc := src[len(src)-1]

	cur := t.scopes[t.CurrentIndex()]
	destNode, ok := cur.types[ctype.Str(lastDest.Type)]
	if !ok {
		destNode = newTypeNode()
		cur.types[ctype.Str(lastDest.Type)] = destNode
	}
	destBucket := destNode.bucketFor(lastDest.Name)

	wantArity := len(src) - 1

	for ts := t.CurrentIndex(); ts >= 0; ts-- {
		sc := t.scopes[ts]
		node, ok := sc.types[ctype.Str(lastSrc.Type)]
		if !ok {
			continue
		}
		srcBucket, ok := node.peekBucket(lastSrc.Name)
		if !ok {
			continue
		}

		for key, entry := range srcBucket {
			if typekey.Arity(key) != wantArity {
				continue
			}
			if !typekey.Contains(key, ssig) {
				continue
			}
			newKey, replaced := typekey.ReplaceSuffix(key, ssig, dsig)
			if !replaced {
				continue
			}
			if _, exists := destBucket[newKey]; exists {
				continue
			}
			// newKey == typekey.OpKey(typekey.BareOp(newKey)) + dsig, so
			// Register writes destBucket[newKey], plus the marker entries
			// on dest's intermediate parameters.
			if err := t.Register(typekey.BareOp(newKey), dest, entry.Code, entry.Locals, entry.Kwargs); err != nil {
				return err
			}
			if e, ok := destBucket[newKey]; ok {
				e.HasCode = entry.HasCode
			}
		}
	}
	return nil
}

// ClearApply strips Code/Locals/Kwargs from every entry on the
// current scope's node for parms' last parameter whose key is a
// "tmap:" key of matching arity that contains parms' accumulated
// signature (spec.md section 4.3, clear_apply).
func (t *Table) ClearApply(parms []Param) {
	if len(parms) == 0 {
		return
	}
	last := parms[len(parms)-1]
	sig := prefixSig(parms)
	wantArity := len(parms) - 1

	cur := t.scopes[t.CurrentIndex()]
	node, ok := cur.types[ctype.Str(last.Type)]
	if !ok {
		return
	}
	b, ok := node.peekBucket(last.Name)
	if !ok {
		return
	}

	for key, entry := range b {
		if typekey.Arity(key) != wantArity {
			continue
		}
		if !typekey.Contains(key, sig) {
			continue
		}
		entry.Code = ""
		entry.HasCode = false
		entry.Locals = nil
		entry.Kwargs = nil
	}
}
