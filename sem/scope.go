package sem

import (
	"fmt"
	"strings"
)

// ScopeId is a stable scope identifier: "global", "function_<name>", or
// "block_<unique>". Block ids use an incrementing counter
// rather than a random suffix so that compilation stays deterministic
// (see DESIGN.md's note on this exact point).
type ScopeId string

const GlobalScope ScopeId = "global"

// Scope is one node of the scope forest.
type Scope struct {
	Parent  *ScopeId
	Symbols map[string]*Symbol
}

// SymbolTable is the full scope forest plus a cursor (currentScope) that
// the analyzer moves as it enters and exits scopes.
type SymbolTable struct {
	Scopes       map[ScopeId]*Scope
	CurrentScope ScopeId

	blockCounter int
}

// NewSymbolTable returns a table containing only the empty global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Scopes: map[ScopeId]*Scope{
			GlobalScope: {Symbols: map[string]*Symbol{}},
		},
		CurrentScope: GlobalScope,
	}
}

// EnterFunctionScope creates scope function_<name> as a child of global
// and makes it current.
func (st *SymbolTable) EnterFunctionScope(name string) ScopeId {
	id := ScopeId("function_" + name)
	parent := GlobalScope
	st.Scopes[id] = &Scope{Parent: &parent, Symbols: map[string]*Symbol{}}
	st.CurrentScope = id
	return id
}

// EnterBlockScope creates a uniquely named child of the current scope and
// makes it current.
func (st *SymbolTable) EnterBlockScope() ScopeId {
	id := ScopeId(fmt.Sprintf("block_%d", st.blockCounter))
	st.blockCounter++
	parent := st.CurrentScope
	st.Scopes[id] = &Scope{Parent: &parent, Symbols: map[string]*Symbol{}}
	st.CurrentScope = id
	return id
}

// ExitScope restores the parent of the current scope (or global, if the
// current scope is already global -- exiting the root is a no-op).
func (st *SymbolTable) ExitScope() {
	scope, ok := st.Scopes[st.CurrentScope]
	if !ok || scope.Parent == nil {
		st.CurrentScope = GlobalScope
		return
	}
	st.CurrentScope = *scope.Parent
}

// Declare adds sym to the current scope. It reports false (without
// mutating the table) if a symbol with the same name already exists in
// that exact scope -- shadowing across scopes is permitted, redeclaration
// within one scope is not.
func (st *SymbolTable) Declare(sym *Symbol) (*Symbol, bool) {
	scope := st.Scopes[st.CurrentScope]
	if existing, ok := scope.Symbols[sym.Name]; ok {
		return existing, false
	}
	scope.Symbols[sym.Name] = sym
	return sym, true
}

// Lookup walks from the current scope through parent links toward global,
// returning the first matching symbol.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	id := st.CurrentScope
	for {
		scope, ok := st.Scopes[id]
		if !ok {
			return nil, false
		}
		if sym, ok := scope.Symbols[name]; ok {
			return sym, true
		}
		if scope.Parent == nil {
			return nil, false
		}
		id = *scope.Parent
	}
}

// EnclosingFunction walks the scope chain upward from the current scope to
// the first function_<name> scope, returning that scope's function symbol
// (the rule for resolving `return`'s enclosing function).
func (st *SymbolTable) EnclosingFunction() (*Symbol, bool) {
	id := st.CurrentScope
	for {
		if strings.HasPrefix(string(id), "function_") {
			name := strings.TrimPrefix(string(id), "function_")
			scope := st.Scopes[id]
			if parent := scope.Parent; parent != nil {
				if parentScope, ok := st.Scopes[*parent]; ok {
					if sym, ok := parentScope.Symbols[name]; ok {
						return sym, true
					}
				}
			}
			return nil, false
		}
		scope, ok := st.Scopes[id]
		if !ok || scope.Parent == nil {
			return nil, false
		}
		id = *scope.Parent
	}
}
