package registry

import (
	"fmt"
	"io"
	"sort"

	"github.com/funvibe/funxy/internal/typekey"
)

// Snapshot is one registered bucket slot, as surfaced by Entries for
// an external introspection tool. It mirrors exactly what DumpTo
// prints, in structured form.
type Snapshot struct {
	Scope  int
	Type   string
	Name   string // empty for the type-only (anonymous) bucket
	OpKey  string
	Op     string
	Status string // "code" or "cleared"
}

// DumpTo writes a human diagnostic dump of every scope to w (spec.md
// section 6, the `debug` operation). Output is deterministic: types,
// names and op-keys are sorted so two runs over the same table
// produce byte-identical dumps.
func (t *Table) DumpTo(w io.Writer) {
	for ts := t.CurrentIndex(); ts >= 0; ts-- {
		sc := t.scopes[ts]
		fmt.Fprintf(w, "scope %d:\n", ts)
		if sc.hasExcept {
			fmt.Fprintf(w, "  *except*: %q\n", sc.exceptCode)
		}

		types := make([]string, 0, len(sc.types))
		for typ := range sc.types {
			types = append(types, typ)
		}
		sort.Strings(types)

		for _, typ := range types {
			node := sc.types[typ]
			dumpBucket(w, fmt.Sprintf("  %s", typ), node.anon)

			names := make([]string, 0, len(node.named))
			for name := range node.named {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				dumpBucket(w, fmt.Sprintf("  %s %s", typ, name), node.named[name])
			}
		}
	}
}

func dumpBucket(w io.Writer, label string, b bucket) {
	if len(b) == 0 {
		return
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		e := b[key]
		fmt.Fprintf(w, "%s [%s op=%s] (%s)\n", label, key, typekey.BareOp(key), bucketStatus(e))
	}
}

func bucketStatus(e *Entry) string {
	if e.HasCode {
		return "code"
	}
	return "cleared"
}

// Entries returns a deterministic, structured snapshot of every
// bucket slot across every scope, the same walk DumpTo renders as
// text. It is the primitive an external introspection tool (YAML/SQL
// export, colorized dumps) builds on, so those tools never need to
// parse DumpTo's text output.
func (t *Table) Entries() []Snapshot {
	var out []Snapshot
	for ts := t.CurrentIndex(); ts >= 0; ts-- {
		sc := t.scopes[ts]

		types := make([]string, 0, len(sc.types))
		for typ := range sc.types {
			types = append(types, typ)
		}
		sort.Strings(types)

		for _, typ := range types {
			node := sc.types[typ]
			out = append(out, snapshotBucket(ts, typ, "", node.anon)...)

			names := make([]string, 0, len(node.named))
			for name := range node.named {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				out = append(out, snapshotBucket(ts, typ, name, node.named[name])...)
			}
		}
	}
	return out
}

func snapshotBucket(ts int, typ, name string, b bucket) []Snapshot {
	if len(b) == 0 {
		return nil
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Snapshot, 0, len(keys))
	for _, key := range keys {
		e := b[key]
		out = append(out, Snapshot{
			Scope:  ts,
			Type:   typ,
			Name:   name,
			OpKey:  key,
			Op:     typekey.BareOp(key),
			Status: bucketStatus(e),
		})
	}
	return out
}
