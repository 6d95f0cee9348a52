// Package actorpath implements hierarchical actor addresses.
//
// An address is a chain of IDs rooted at the system: supervisors nest under
// supervisors, a children group sits under a supervisor, and a child sits
// under a children group. Append enforces those transitions; everything else
// is plain value manipulation.
package actorpath

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDepth bounds the number of elements in a path so routing-table keys
// stay bounded.
const MaxDepth = 255

// ErrDepthExceeded is returned by Append when a path is already MaxDepth
// elements long.
var ErrDepthExceeded = errors.New("actorpath: depth limit exceeded")

// Kind distinguishes the three node types of the supervision tree.
type Kind int

const (
	KindSupervisor Kind = iota
	KindChildren
	KindChild
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSupervisor:
		return "supervisor"
	case KindChildren:
		return "children"
	case KindChild:
		return "child"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Element is one path segment: an ID tagged with its node kind.
type Element struct {
	kind Kind
	id   ID
}

// Supervisor returns a supervisor element.
func Supervisor(id ID) Element {
	return Element{kind: KindSupervisor, id: id}
}

// Children returns a children-group element.
func Children(id ID) Element {
	return Element{kind: KindChildren, id: id}
}

// Child returns a child element.
func Child(id ID) Element {
	return Element{kind: KindChild, id: id}
}

// ID returns the element's identifier.
func (e Element) ID() ID {
	return e.id
}

// Kind returns the element's node kind.
func (e Element) Kind() Kind {
	return e.kind
}

// String renders the bare ID.
func (e Element) String() string {
	return e.id.String()
}

// DebugString renders the ID annotated with its kind, e.g. "supervisor#<id>".
func (e Element) DebugString() string {
	return e.kind.String() + "#" + e.id.String()
}

// Path is an actor address. The zero value (also returned by Root) is the
// system root. Paths are values: Append returns a new Path and never mutates
// its receiver.
type Path struct {
	parentChain []ID
	this        *Element
}

// Root returns the empty path addressing the system itself.
func Root() Path {
	return Path{}
}

// AppendError reports an Append rejected by the transition rules. It carries
// the path as it was and the element that could not be attached.
type AppendError struct {
	Path    Path
	Element Element
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("actorpath: cannot append %s to %s", e.Element.DebugString(), e.Path.DebugString())
}

// Append attaches el to the path, returning the longer path. The legal
// transitions are:
//
//	root       -> supervisor
//	supervisor -> supervisor | children
//	children   -> child
//	child      -> (nothing)
//
// Any other combination returns an *AppendError and leaves the receiver
// usable as-is.
func (p Path) Append(el Element) (Path, error) {
	if p.Len() >= MaxDepth {
		return p, ErrDepthExceeded
	}

	legal := false
	switch el.kind {
	case KindSupervisor:
		legal = p.this == nil || p.this.kind == KindSupervisor
	case KindChildren:
		legal = p.this != nil && p.this.kind == KindSupervisor
	case KindChild:
		legal = p.this != nil && p.this.kind == KindChildren
	}
	if !legal {
		return p, &AppendError{Path: p, Element: el}
	}

	chain := p.parentChain
	if p.this != nil {
		chain = make([]ID, 0, len(p.parentChain)+1)
		chain = append(chain, p.parentChain...)
		chain = append(chain, p.this.id)
	}
	terminal := el
	return Path{parentChain: chain, this: &terminal}, nil
}

// IsRoot reports whether the path is the system root.
func (p Path) IsRoot() bool {
	return p.this == nil
}

// Len returns the number of elements in the path.
func (p Path) Len() int {
	if p.this == nil {
		return len(p.parentChain)
	}
	return len(p.parentChain) + 1
}

// Kind returns the kind of the terminal element. The second return is false
// for the root path.
func (p Path) Kind() (Kind, bool) {
	if p.this == nil {
		return 0, false
	}
	return p.this.kind, true
}

// IDs returns the path's identifiers in root-to-leaf order.
func (p Path) IDs() []ID {
	ids := make([]ID, 0, p.Len())
	ids = append(ids, p.parentChain...)
	if p.this != nil {
		ids = append(ids, p.this.id)
	}
	return ids
}

// Elements reconstructs the full element chain with kinds. Every ancestor of
// a children group is a supervisor, and the parent of a child is its
// children group; the kinds of the parent chain follow from the terminal
// element alone.
func (p Path) Elements() []Element {
	if p.this == nil {
		return nil
	}
	els := make([]Element, 0, len(p.parentChain)+1)
	for i, id := range p.parentChain {
		kind := KindSupervisor
		if p.this.kind == KindChild && i == len(p.parentChain)-1 {
			kind = KindChildren
		}
		els = append(els, Element{kind: kind, id: id})
	}
	return append(els, *p.this)
}

// String renders the path as "/id1/id2/.../idN"; the root renders as "/".
func (p Path) String() string {
	parts := make([]string, 0, p.Len())
	for _, id := range p.IDs() {
		parts = append(parts, id.String())
	}
	return "/" + strings.Join(parts, "/")
}

// DebugString renders the path with kind annotations, e.g.
// "/supervisor#<id>/children#<id>/child#<id>"; the root renders as "/".
func (p Path) DebugString() string {
	els := p.Elements()
	parts := make([]string, 0, len(els))
	for _, el := range els {
		parts = append(parts, el.DebugString())
	}
	return "/" + strings.Join(parts, "/")
}
