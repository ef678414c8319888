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

// Package registry implements the plugin/hook registry (entity J, §6):
// functions, aggregates, commands, parsers, table printers, context
// hooks and a single user-output writer. Registration is init-time,
// read-mostly, matching the teacher's sql.FunctionRegistry shape.
package registry

import (
	"sync"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/stmt"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// ParserPlugin describes a content-type parser/updater pair (§6
// "Parser: plugin-name, name, suffix, mimetype, tester, parser,
// updater?") — the XML/CSV codecs remain out of scope as concrete
// implementations, but the contract they'd register through lives here.
type ParserPlugin struct {
	Plugin   string
	Name     string
	Suffix   string
	MIMEType string
	Tester   func(data []byte) bool
	Parse    func(data []byte) (value.Value, error)
	Update   func(existing value.Value, data []byte) (value.Value, error)
}

// TablePrinter renders a table-shaped array as text (§4.D table-printer
// hook, e.g. grid/csv/html variants).
type TablePrinter func(rows *value.Array, w func(string)) error

// ContextHook is called when a "std" context stack is assembled; it may
// push additional layers (§4.G "may append additional layers").
type ContextHook func(ctx *evalctx.Context)

// UserOutput is the single writer a host installs to intercept styled
// output (§6 "a single writer receiving (style, text)").
type UserOutput func(style, text string)

// Registry collects every hook surface §6 defines, and implements both
// expr.Resolver (function name -> FuncRef) and stmt.CommandLookup
// (statement keyword -> Command) so the parsers can consult it directly.
type Registry struct {
	mu sync.RWMutex

	builtins   map[string]eval.BuiltinFunc
	aggregates map[string]eval.AggregateFunc
	aggSize    map[string]int
	users      map[string]*eval.UserFunc
	commands   map[string]*stmt.Command
	parsers    []*ParserPlugin
	printers   map[string]TablePrinter
	hooks      []ContextHook
	output     UserOutput
}

// New builds an empty registry pre-populated with the statement
// language's control-flow primitives (§4.H "themselves commands
// registered this way").
func New() *Registry {
	r := &Registry{
		builtins:   map[string]eval.BuiltinFunc{},
		aggregates: map[string]eval.AggregateFunc{},
		aggSize:    map[string]int{},
		users:      map[string]*eval.UserFunc{},
		commands:   map[string]*stmt.Command{},
		printers:   map[string]TablePrinter{},
	}
	for name, cmd := range stmt.Builtins() {
		r.commands[name] = cmd
	}
	installBuiltins(r)
	return r
}

// RegisterFunction installs a plain function (§6 "name, param-spec,
// return-type, impl"; param-spec/return-type are enforced by the caller
// at call sites via expr's arg evaluation, not stored here).
func (r *Registry) RegisterFunction(name string, fn eval.BuiltinFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[name] = fn
}

// RegisterAggregate installs an aggregate function plus the per-callsite
// scratch size the parser's AG-wrap reserves for it (§3.2, §6).
func (r *Registry) RegisterAggregate(name string, agg eval.AggregateFunc, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregates[name] = agg
	r.aggSize[name] = size
}

// RegisterCommand installs a statement command (§6 "plugin-name?, name,
// argparser, runner"), e.g. a plugin's "log"/"logset"/"cache" command.
func (r *Registry) RegisterCommand(plugin, name string, argParser func(p *stmt.Parser) (*stmt.Node, error), run func(n *stmt.Node, rc *stmt.RunContext) stmt.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name] = &stmt.Command{Keyword: name, ArgParser: argParser, Run: run}
}

// RegisterParser installs a content-type parser/updater plugin.
func (r *Registry) RegisterParser(p *ParserPlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers = append(r.parsers, p)
}

// RegisterTablePrinter installs a named table-rendering implementation.
func (r *Registry) RegisterTablePrinter(name string, p TablePrinter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printers[name] = p
}

// RegisterContextHook installs a hook run every time a "std" context
// stack is assembled.
func (r *Registry) RegisterContextHook(h ContextHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, h)
}

// SetUserOutput installs the single styled-output writer a host may
// intercept; nil restores the default (discard).
func (r *Registry) SetUserOutput(w UserOutput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = w
}

// Output routes (style, text) to the installed UserOutput, if any.
func (r *Registry) Output(style, text string) {
	r.mu.RLock()
	w := r.output
	r.mu.RUnlock()
	if w != nil {
		w(style, text)
	}
}

// RunHooks runs every registered context hook against ctx.
func (r *Registry) RunHooks(ctx *evalctx.Context) {
	r.mu.RLock()
	hooks := append([]ContextHook(nil), r.hooks...)
	r.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}

// ResolveFunc implements expr.Resolver: a name resolves to an aggregate
// if one is registered under that name, else a user function, else a
// plain builtin (§4.F.7 dispatch order).
func (r *Registry) ResolveFunc(name string) *expr.FuncRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if size, ok := r.aggSize[name]; ok {
		return &expr.FuncRef{Name: name, Kind: expr.FuncAggregate, AGSize: size}
	}
	if _, ok := r.users[name]; ok {
		return &expr.FuncRef{Name: name, Kind: expr.FuncUser}
	}
	return &expr.FuncRef{Name: name, Kind: expr.FuncBuiltin}
}

// LookupCommand implements stmt.CommandLookup.
func (r *Registry) LookupCommand(keyword string) (*stmt.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[keyword]
	return c, ok
}

// Builtin implements eval.FuncTable.
func (r *Registry) Builtin(name string) (eval.BuiltinFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.builtins[name]
	return fn, ok
}

// Aggregate implements eval.FuncTable.
func (r *Registry) Aggregate(name string) (eval.AggregateFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agg, ok := r.aggregates[name]
	return agg, ok
}

// User implements eval.FuncTable.
func (r *Registry) User(name string) (*eval.UserFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uf, ok := r.users[name]
	return uf, ok
}

// RegisterUser installs a statement-defined user function, matching the
// signature stmt.RunContext.RegisterUser expects from the "function"
// command's runner.
func (r *Registry) RegisterUser(name string, params []string, body *stmt.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[name] = &eval.UserFunc{
		Params: params,
		Run: func(ctx *evalctx.Context) (value.Value, bool, error) {
			interrupt := false
			rc := &stmt.RunContext{
				Ctx:          ctx,
				Eval:         eval.NewEnv(ctx, r, &interrupt),
				RegisterUser: r.RegisterUser,
			}
			out := stmt.Run(body, rc)
			switch out.Kind {
			case stmt.OutcomeReturn:
				return out.Value, true, nil
			case stmt.OutcomeError:
				return nil, false, errString(out.Err)
			default:
				return value.NewNull(), false, nil
			}
		},
	}
}

// Parsers returns the registered content-type parser plugins, tried in
// registration order (§4.D "tried ... consulted first if their tester
// matches").
func (r *Registry) Parsers() []*ParserPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*ParserPlugin(nil), r.parsers...)
}

// TablePrinter returns the named table printer, if registered.
func (r *Registry) TablePrinter(name string) (TablePrinter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.printers[name]
	return p, ok
}

type errString string

func (e errString) Error() string { return string(e) }
