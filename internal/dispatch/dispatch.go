// Package dispatch routes an action-multiplexed request body to exactly one
// typed request.
//
// Each resource declares a closed set of variants. A handler receives the
// decoded variant and type-switches over it, so adding an action means
// adding a type and a case rather than a string comparison.
package dispatch

import (
	"fmt"

	"github.com/iliyamo/docdesk/internal/validation"
)

// Variant binds an action name to the request type it decodes into. New
// must return a fresh pointer on every call.
type Variant[A any] struct {
	Action string
	New    func() A
}

// Resource is the allow-list and decoder for one endpoint.
type Resource[A any] struct {
	name     string
	actions  []string
	variants map[string]func() A
}

// NewResource panics on duplicate or empty action names; resources are
// declared at package init.
func NewResource[A any](name string, variants ...Variant[A]) *Resource[A] {
	r := &Resource[A]{name: name, variants: make(map[string]func() A, len(variants))}
	for _, v := range variants {
		if v.Action == "" || v.New == nil {
			panic(fmt.Sprintf("dispatch: incomplete variant in %s", name))
		}
		if _, dup := r.variants[v.Action]; dup {
			panic(fmt.Sprintf("dispatch: duplicate action %q in %s", v.Action, name))
		}
		r.actions = append(r.actions, v.Action)
		r.variants[v.Action] = v.New
	}
	return r
}

// Name identifies the resource in logs and metrics.
func (r *Resource[A]) Name() string { return r.name }

// Actions returns the allow-list in declaration order.
func (r *Resource[A]) Actions() []string {
	out := make([]string, len(r.actions))
	copy(out, r.actions)
	return out
}

// Decode validates the action name, then decodes and validates the body
// into that action's request. Nothing outside this package runs until
// both phases pass.
func (r *Resource[A]) Decode(body []byte) (string, A, error) {
	var zero A
	action, err := validation.Action(body, r.actions)
	if err != nil {
		return "", zero, err
	}
	req := r.variants[action]()
	if err := validation.Bind(body, req); err != nil {
		return action, zero, err
	}
	return action, req, nil
}
