package engine

import (
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/locals"
	"github.com/funvibe/funxy/internal/registry"
	"github.com/funvibe/funxy/internal/substitute"
)

// Param is one parameter of a call being attached (spec.md section
// 4.8). It carries the same Type/Name/LName triple internal/registry
// and internal/match consume, plus the slots AttachParms annotates in
// place once a window of parameters has matched a typemap.
type Param struct {
	registry.Param

	// Attrs holds every op-key(op) → code and op-key(op+":"+kw) → value
	// attribute AttachParms has set on this parameter.
	Attrs map[string]string

	// Next maps an op to the parameter immediately following the
	// window that op matched, or nil if the window ran to the end of
	// the call's parameter list.
	Next map[string]*Param
}

func (p *Param) setAttr(key, value string) {
	if p.Attrs == nil {
		p.Attrs = make(map[string]string)
	}
	p.Attrs[key] = value
}

func (p *Param) setNext(op string, next *Param) {
	if p.Next == nil {
		p.Next = make(map[string]*Param)
	}
	p.Next[op] = next
}

func toRegistryParams(parms []*Param) []registry.Param {
	out := make([]registry.Param, len(parms))
	for i, p := range parms {
		out[i] = p.Param
	}
	return out
}

// AttachParms walks parms left to right, matching the longest
// multi-argument typemap available at each position (spec.md section
// 4.8). Every window it matches annotates the window's first
// parameter with the substituted code, the parameter following the
// window, and the matched entry's keyword arguments; unmatched
// parameters are skipped untouched.
func (e *Engine) AttachParms(op string, parms []*Param, f locals.Sink) {
	idx := 0
	argnum := 1
	for idx < len(parms) {
		window := toRegistryParams(parms[idx:])
		entry, nmatch := e.SearchMulti(op, window)
		if entry == nil {
			idx++
			argnum++
			continue
		}

		cp := entry.Clone()
		code := cp.Code
		cur := cp.Locals
		for k := 1; k <= nmatch; k++ {
			p := parms[idx+k-1]
			code, cur = substitute.Result(code, cur, substitute.Input{
				Type:     p.Type,
				PName:    p.Name,
				LName:    p.LName,
				Index:    k,
				Remember: e.remembered.Remember,
			})
		}

		if len(cur) > 0 && f != nil {
			code = locals.Materialize(code, cur, f, argnum)
		}
		code = strings.ReplaceAll(code, "$argnum", strconv.Itoa(argnum))

		first := parms[idx]
		first.setAttr(op, code)
		if idx+nmatch < len(parms) {
			first.setNext(op, parms[idx+nmatch])
		} else {
			first.setNext(op, nil)
		}
		for _, kw := range cp.Kwargs {
			first.setAttr(op+":"+kw.Name, kw.Value)
		}

		idx += nmatch
		argnum++
	}
}
