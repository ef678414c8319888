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

// Package jsoncalc ties the value model, parser, evaluator, statement
// runtime, context stack, and config store (entities A through J)
// together behind one Engine entry point.
package jsoncalc

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kirkendall/jsoncalc-sub001/auth"
	"github.com/kirkendall/jsoncalc-sub001/config"
	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/jsonio"
	"github.com/kirkendall/jsoncalc-sub001/registry"
	"github.com/kirkendall/jsoncalc-sub001/stmt"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

const experimentalFlag = "JSONCALC_EXPERIMENTAL"

// Experimental gates features still under development, toggled for
// local testing the same way the teacher's ExperimentalGMS flag works.
var Experimental bool

func init() {
	Experimental = os.Getenv(experimentalFlag) != ""
}

// Config configures a new Engine.
type Config struct {
	// IsReadOnly rejects any Run call whose script contains a var or
	// const declaration, mirroring the teacher's IsReadOnly engine flag.
	// Assignments inside expressions are not checked.
	IsReadOnly bool
	Format     *jsonio.Format
	Store      *config.Store
	Registry   *registry.Registry
	Auth       auth.Auth
	AuditLog   auth.AuditMethod
	ExprCache  *config.ExprCache
}

// Engine is the jsoncalc evaluation engine.
type Engine struct {
	Format    *jsonio.Format
	Store     *config.Store
	Registry  *registry.Registry
	Auth      auth.Auth
	Audit     auth.AuditMethod
	ExprCache *config.ExprCache
	ReadOnly  atomic.Bool

	mu sync.Mutex
}

// New creates a new Engine with custom configuration. Use NewDefault
// for the default settings.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}

	e := &Engine{
		Format:    cfg.Format,
		Store:     cfg.Store,
		Registry:  cfg.Registry,
		Auth:      cfg.Auth,
		Audit:     cfg.AuditLog,
		ExprCache: cfg.ExprCache,
	}
	if e.Format == nil {
		e.Format = jsonio.DefaultFormat()
	}
	if e.Store == nil {
		e.Store = config.New()
	}
	if e.Registry == nil {
		e.Registry = registry.New()
	}
	if e.Auth == nil {
		e.Auth = auth.None{}
	}
	e.ReadOnly.Store(cfg.IsReadOnly)
	return e
}

// NewDefault creates a new Engine with default settings.
func NewDefault() *Engine {
	return New(nil)
}

// Expose pushes data as a new layer onto ctx under the given flags,
// first checking e.Auth for whether scope is granted the permissions
// those flags require ("is this layer writable for assignment", "does
// this layer allow autoload").
func (e *Engine) Expose(ctx *evalctx.Context, scope string, data value.Value, flags evalctx.Flag) error {
	if err := e.Auth.Allowed(scope, auth.Required(flags)); err != nil {
		return err
	}
	ctx.Push(data, flags)
	return nil
}

// NewContext builds the standard context stack (§4.G "std"): a
// read-only "config" layer exposing the config store and engine
// status, under a fresh writable "script" layer for the running
// script's own declarations, then runs every registered context hook
// so plugins can append their own layers.
func (e *Engine) NewContext() (*evalctx.Context, error) {
	ctx := evalctx.New()

	sys := value.NewObject()
	sys.Set("readonly", value.Bool(e.ReadOnly.Load()))
	std := value.NewObject()
	std.Set("config", e.Store.Root)
	std.Set("system", sys)
	if err := e.Expose(ctx, "config", std, evalctx.Const|evalctx.Global); err != nil {
		return nil, err
	}

	if err := e.Expose(ctx, "script", value.NewObject(), evalctx.Var|evalctx.Global); err != nil {
		return nil, err
	}

	e.Registry.RunHooks(ctx)
	return ctx, nil
}

// ParseExpr parses src into an expression tree, routed through the
// engine's ExprCache when one is configured so repeated runs over the
// same source skip re-lexing it.
func (e *Engine) ParseExpr(src string) (*expr.Node, error) {
	if e.ExprCache != nil {
		return e.ExprCache.Parse(src, e.Registry)
	}
	return expr.Parse(src, e.Registry)
}

// Eval parses and evaluates a single expression against a fresh
// standard context stack.
func (e *Engine) Eval(src string) (value.Value, error) {
	n, err := e.ParseExpr(src)
	if err != nil {
		return nil, err
	}

	ctx, err := e.NewContext()
	if err != nil {
		return nil, err
	}

	interrupt := false
	env := eval.NewEnv(ctx, e.Registry, &interrupt)
	return env.Eval(n), nil
}

// Run parses src as a statement sequence and executes it against a
// fresh standard context stack, reporting the run's duration and error
// to the engine's AuditMethod, if one is configured.
func (e *Engine) Run(src string) (stmt.Outcome, error) {
	start := time.Now()
	out, err := e.run(src)
	if e.Audit != nil {
		e.Audit.Statement(src, time.Since(start), err)
	}
	return out, err
}

func (e *Engine) run(src string) (stmt.Outcome, error) {
	p := stmt.NewParser(src, e.Registry, e.Registry)
	root, err := p.Parse()
	if err != nil {
		return stmt.Outcome{}, err
	}

	if e.ReadOnly.Load() {
		if err := requireReadOnly(root); err != nil {
			return stmt.Outcome{}, err
		}
	}

	ctx, err := e.NewContext()
	if err != nil {
		return stmt.Outcome{}, err
	}

	interrupt := false
	env := eval.NewEnv(ctx, e.Registry, &interrupt)
	rc := &stmt.RunContext{
		Ctx:          ctx,
		Eval:         env,
		RegisterUser: e.Registry.RegisterUser,
	}
	return stmt.Run(root, rc), nil
}

// requireReadOnly walks a parsed statement sequence looking for a
// var/const declaration, which is the only statement-level construct
// that always writes into the context stack regardless of what its
// expression contains. Assignments inside expressions are not
// rejected: they still land in the writable "script" layer.
func requireReadOnly(n *stmt.Node) error {
	for cur := n; cur != nil; cur = cur.Next {
		if cur.Flags.Has(stmt.FlagVar) || cur.Flags.Has(stmt.FlagConst) {
			return ErrReadOnly.New()
		}
		if cur.Sub != nil {
			if err := requireReadOnly(cur.Sub); err != nil {
				return err
			}
		}
		if cur.More != nil {
			if err := requireReadOnly(cur.More); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases the engine's persisted caches.
func (e *Engine) Close() error {
	if e.ExprCache != nil {
		return e.ExprCache.Close()
	}
	return nil
}
