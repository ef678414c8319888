// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import (
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// errNoDefTable is the "noDefTable" error null code (§8 property 10).
const errNoDefTable = "noDefTable"

// asRows coerces v into a table array per §4.F.6 "WHERE: iterate rows (or
// a singleton wrapped as one-row array)".
func asRows(v value.Value) *value.Array {
	if arr, ok := v.(*value.Array); ok {
		return arr
	}
	return value.NewArray(v)
}

// withThis evaluates n with row bound as the top "this"/"data" layer.
func (e *Env) withThis(row value.Value, n *expr.Node) value.Value {
	e.Ctx.Push(row, evalctx.This|evalctx.Data)
	v := e.Eval(n)
	e.Ctx.Pop()
	return v
}

// evalEach implements the standalone '@' each operator (§4.F.6, §8:
// "[1,2,3,4] @ this * 2" -> "[2,4,6,8]"): keep rows whose predicate is
// truthy; for a non-boolean result, append that transformed value
// instead of the row.
func (e *Env) evalEach(n *expr.Node) value.Value {
	rows := asRows(e.Eval(n.Left))
	out := value.NewArray()
	rows.ForEach(func(row value.Value) bool {
		if e.interrupted() {
			return false
		}
		result := e.withThis(row, n.Right)
		if b, ok := result.(value.Bool); ok {
			if bool(b) {
				out.Append(row.Copy(nil))
			}
			return true
		}
		out.Append(result)
		return true
	})
	return out
}

// evalGroupEach implements '@@' (GROUP BY-shaped each): groups rows by
// the key expression's value, emitting one nested array of rows per
// distinct group, in first-seen order.
func (e *Env) evalGroupEach(n *expr.Node) value.Value {
	rows := asRows(e.Eval(n.Left))
	groups := groupRows(rows, func(row value.Value) value.Value {
		return e.withThis(row, n.Right)
	})
	out := value.NewArray()
	for _, g := range groups {
		out.Append(g)
	}
	return out
}

// groupRows buckets rows by keyFn(row)'s serialized form, preserving
// first-seen group order (§4.F.6 GROUP BY). Single and composite keys
// take the same path.
func groupRows(rows *value.Array, keyFn func(value.Value) value.Value) []*value.Array {
	index := map[string]int{}
	var buckets []*value.Array
	rows.ForEach(func(row value.Value) bool {
		k := keyFn(row).String()
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, value.NewArray())
		}
		buckets[i].Append(row.Copy(nil))
		return true
	})
	return buckets
}

// evalJoin implements '@=' (natural), '@<' (left outer) and '@>' (right
// outer) per §4.F.6: rows pair where every commonly-named member is
// equal; remaining fields merge. If one side is deferred and the other
// isn't, the undeferred side drives the outer loop.
func (e *Env) evalJoin(n *expr.Node) value.Value {
	left := asRows(e.Eval(n.Left))
	right := asRows(e.Eval(n.Right))
	outer, inner, kind := left, right, n.Join
	swapped := false
	if !left.IsDeferred() && right.IsDeferred() {
		outer, inner = right, left
		swapped = true
	}
	rightMatched := make([]bool, inner.Len())
	out := value.NewArray()
	i := 0
	outer.ForEach(func(orow value.Value) bool {
		oobj, ok := orow.(*value.Object)
		matchedAny := false
		if ok {
			j := 0
			inner.ForEach(func(irow value.Value) bool {
				iobj, ok := irow.(*value.Object)
				if ok && commonKeysEqual(oobj, iobj) {
					matchedAny = true
					rightMatched[j] = true
					out.Append(mergeRows(orow, irow, swapped))
				}
				j++
				return true
			})
		}
		i++
		wantOuter := (kind == expr.JoinLeft && !swapped) || (kind == expr.JoinRight && swapped)
		if !matchedAny && wantOuter {
			out.Append(orow.Copy(nil))
		}
		return true
	})
	wantOuterOnInner := (kind == expr.JoinRight && !swapped) || (kind == expr.JoinLeft && swapped)
	if wantOuterOnInner {
		j := 0
		inner.ForEach(func(irow value.Value) bool {
			if !rightMatched[j] {
				out.Append(irow.Copy(nil))
			}
			j++
			return true
		})
	}
	return out
}

func commonKeysEqual(a, b *value.Object) bool {
	found := false
	for _, k := range a.Keys {
		if bv := b.Get(k.Name); bv != nil {
			found = true
			if !value.DeepEqual(k.Val, bv) {
				return false
			}
		}
	}
	return found
}

func mergeRows(a, b value.Value, swapped bool) value.Value {
	if swapped {
		a, b = b, a
	}
	out := value.NewObject()
	if ao, ok := a.(*value.Object); ok {
		for _, k := range ao.Keys {
			out.Set(k.Name, k.Val.Copy(nil))
		}
	}
	if bo, ok := b.(*value.Object); ok {
		for _, k := range bo.Keys {
			out.Set(k.Name, k.Val.Copy(nil))
		}
	}
	return out
}

// evalSelect implements the SELECT pipeline (§4.F.6), composed in the
// strict order FROM -> WHERE -> GROUP BY -> HAVING -> ORDER BY -> LIMIT.
func (e *Env) evalSelect(sel *expr.SelectNode) value.Value {
	var rows *value.Array
	switch {
	case sel.From != nil && sel.From.Op == expr.OpJoin:
		joined := e.evalJoin(sel.From)
		rows = joined.(*value.Array)
	case sel.From != nil:
		rows = asRows(e.Eval(sel.From))
	default:
		this := e.Ctx.This()
		if arr, ok := this.(*value.Array); ok {
			rows = arr
		} else if isNullValue(this) {
			return value.NewError(errNoDefTable, "SELECT with no FROM has no default table")
		} else {
			rows = value.NewArray(this)
		}
	}

	if sel.Where != nil {
		rows = e.filterRows(rows, sel.Where)
	}

	results := value.NewArray()
	if len(sel.GroupBy) > 0 {
		groups := groupRows(rows, func(row value.Value) value.Value {
			return e.groupKey(row, sel.GroupBy)
		})
		for _, g := range groups {
			if g.Len() == 0 {
				continue
			}
			results.Append(e.projectGroupRow(g, sel.Columns))
		}
	} else {
		rows.ForEach(func(row value.Value) bool {
			results.Append(e.projectRow(row, sel.Columns))
			return true
		})
	}

	if sel.Having != nil {
		results = e.filterRows(results, sel.Having)
	}
	if len(sel.OrderBy) > 0 {
		orderRows(results, func(v value.Value) []value.Value {
			return e.withThisMulti(v, sel.OrderBy)
		}, sel.OrderBy)
	}
	if sel.Distinct {
		results = distinctRows(results)
	}
	if sel.Limit != nil {
		n := e.Eval(sel.Limit)
		if num, ok := n.(*value.Number); ok {
			results = limitRows(results, int(num.Int()))
		}
	}
	return results
}

func (e *Env) filterRows(rows *value.Array, pred *expr.Node) *value.Array {
	out := value.NewArray()
	rows.ForEach(func(row value.Value) bool {
		if e.interrupted() {
			return false
		}
		if value.IsTrue(e.withThis(row, pred)) {
			out.Append(row.Copy(nil))
		}
		return true
	})
	return out
}

func (e *Env) groupKey(row value.Value, keys []*expr.Node) value.Value {
	out := value.NewArray()
	for _, k := range keys {
		out.Append(e.withThis(row, k))
	}
	return out
}

// projectRow evaluates every column against a single ungrouped row bound
// as "this". A bare aggregate call here (e.g. "avg(x.vals)" with an
// explicit array argument) still works via evalAggregateDirect; there is
// no group to fold non-array aggregate args over.
func (e *Env) projectRow(row value.Value, cols []*expr.Node) value.Value {
	out := value.NewObject()
	for _, col := range cols {
		name, ce := columnNameAndExpr(col)
		out.Set(name, e.withThis(row, ce))
	}
	return out
}

// projectGroupRow evaluates every column once for a GROUP BY bucket: any
// aggregate callsite within a column folds across every row of g, while
// plain member references resolve against the group's first row (the
// columns a query groups by are constant within a group by construction;
// §4.F.6, §3.2 generalized per-column rather than globally so distinct
// groups each get their own aggregate scratch).
func (e *Env) projectGroupRow(g *value.Array, cols []*expr.Node) value.Value {
	out := value.NewObject()
	representative := g.At(0)
	for _, col := range cols {
		name, ce := columnNameAndExpr(col)
		out.Set(name, e.evalColumnOverGroup(ce, representative, g))
	}
	return out
}

// evalColumnOverGroup pre-folds every aggregate callsite found in ce
// across g's rows, then evaluates ce with "this" bound to representative
// so plain (non-aggregate) references resolve normally.
func (e *Env) evalColumnOverGroup(ce *expr.Node, representative value.Value, g *value.Array) value.Value {
	sites := collectAggSites(ce)
	if len(sites) == 0 {
		return e.withThis(representative, ce)
	}
	pending := make(map[*expr.Node]*AggState, len(sites))
	for _, site := range sites {
		agg, ok := e.Funcs.Aggregate(site.Func.Name)
		if !ok || len(site.Args) == 0 {
			continue
		}
		state := agg.New()
		g.ForEach(func(row value.Value) bool {
			e.Ctx.Push(row, evalctx.This|evalctx.Data)
			rowVal := e.Eval(site.Args[0])
			e.Ctx.Pop()
			agg.Step(state, rowVal)
			return true
		})
		pending[site] = state
	}
	prev := e.pendingAG
	e.pendingAG = pending
	result := e.withThis(representative, ce)
	e.pendingAG = prev
	return result
}

// collectAggSites walks ce for FuncAggregate OpCall nodes, not descending
// into a nested SELECT or AG scope (those fold independently).
func collectAggSites(n *expr.Node) []*expr.Node {
	var sites []*expr.Node
	var walk func(*expr.Node)
	walk = func(n *expr.Node) {
		if n == nil {
			return
		}
		if n.Op == expr.OpCall && n.Func != nil && n.Func.Kind == expr.FuncAggregate {
			sites = append(sites, n)
		}
		if n.Op == expr.OpSelect || n.Op == expr.OpAG {
			return
		}
		walk(n.Left)
		walk(n.Right)
		walk(n.Third)
		walk(n.Inner)
		for _, c := range n.Children {
			walk(c)
		}
		for _, a := range n.Args {
			walk(a)
		}
	}
	walk(n)
	return sites
}

// columnNameAndExpr splits an "AS"-aliased column (OpObjectMember) into
// its name and expression; otherwise it derives a default name the way
// the §8 example "SELECT a, sum(b) ..." -> {"a":...,"b":...} expects: a
// bare Name/Member keeps its own name, and a single-argument call (most
// aggregates) borrows its argument's name.
func columnNameAndExpr(col *expr.Node) (string, *expr.Node) {
	if col.Op == expr.OpObjectMember {
		return col.Name, col.Right
	}
	return defaultColumnName(col), col
}

func defaultColumnName(n *expr.Node) string {
	switch n.Op {
	case expr.OpName, expr.OpMember:
		return n.Name
	case expr.OpCall:
		if len(n.Args) > 0 {
			if name := defaultColumnName(n.Args[len(n.Args)-1]); name != "" {
				return name
			}
		}
		return n.Name
	}
	return "value"
}

func (e *Env) withThisMulti(row value.Value, keys []expr.SortKey) []value.Value {
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = e.withThis(row, k.Expr)
	}
	return out
}

// orderRows stable-sorts rows in place by keyFn, honoring each key's
// descending flag; null sorts after non-null (§4.F.6 ORDER BY).
func orderRows(rows *value.Array, keyFn func(value.Value) []value.Value, keys []expr.SortKey) {
	elems := rows.Elems()
	keyCache := make([][]value.Value, len(elems))
	for i, r := range elems {
		keyCache[i] = keyFn(r)
	}
	stableSort(len(elems), func(i, j int) bool {
		for k := range keys {
			a, b := keyCache[i][k], keyCache[j][k]
			less, eq := lessValue(a, b)
			if eq {
				continue
			}
			if keys[k].Descending && !isNullValue(a) && !isNullValue(b) {
				return !less
			}
			return less
		}
		return false
	}, func(i, j int) {
		elems[i], elems[j] = elems[j], elems[i]
		keyCache[i], keyCache[j] = keyCache[j], keyCache[i]
	})
}

// lessValue compares a and b for ORDER BY: null sorts after non-null;
// otherwise numeric-vs-string is decided by a's type (§4.F.6).
func lessValue(a, b value.Value) (less, eq bool) {
	aNull, bNull := isNullValue(a), isNullValue(b)
	if aNull || bNull {
		if aNull && bNull {
			return false, true
		}
		return bNull, false // nulls sort after non-null
	}
	cmp, ok := value.Compare(a, b)
	if !ok {
		return false, true
	}
	return cmp < 0, cmp == 0
}

// stableSort is a small insertion-based stable sort (result sets here are
// expected to be modest; avoids pulling in sort.Slice's interface-boxing
// for a hot evaluator path while keeping stability guarantees explicit).
func stableSort(n int, less func(i, j int) bool, swap func(i, j int)) {
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			swap(j, j-1)
		}
	}
}

func distinctRows(rows *value.Array) *value.Array {
	out := value.NewArray()
	seen := make([]value.Value, 0, rows.Len())
	rows.ForEach(func(row value.Value) bool {
		for _, s := range seen {
			if value.DeepEqual(s, row) {
				return true
			}
		}
		seen = append(seen, row)
		out.Append(row.Copy(nil))
		return true
	})
	return out
}

func limitRows(rows *value.Array, n int) *value.Array {
	if n < 0 {
		n = 0
	}
	out := value.NewArray()
	i := 0
	rows.ForEach(func(row value.Value) bool {
		if i >= n {
			return false
		}
		out.Append(row.Copy(nil))
		i++
		return true
	})
	return out
}
