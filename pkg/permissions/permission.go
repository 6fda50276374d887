package permissions

import (
	"strings"
)

type (
	Actor interface {
		DescribeActor() string
	}

	// Grant decides whether an actor holds a permission.
	Grant interface {
		Allow(Actor) bool
		DescribeGrant() string
	}

	// Node is a dotted permission name like "house.build".
	Node string

	// Table maps permission nodes to grants. A node without a grant falls
	// back to its wildcard parents: "house.build", then "house.*", then "*".
	Table map[Node]Grant

	AnyOf []Grant

	allowAll int
	denyAll  int
)

const (
	Anyone allowAll = 0
	Nobody denyAll  = 0

	Wildcard = "*"
)

var (
	_ Grant = Anyone
	_ Grant = Nobody
	_ Grant = AnyOf(nil)
)

// Candidates lists the node itself then its wildcard parents, most specific first.
func (n Node) Candidates() []Node {
	parts := strings.Split(string(n), ".")
	candidates := make([]Node, 0, len(parts)+1)
	candidates = append(candidates, n)
	for i := len(parts) - 1; i > 0; i-- {
		candidates = append(candidates, Node(strings.Join(parts[:i], ".")+"."+Wildcard))
	}
	if n != Wildcard {
		candidates = append(candidates, Wildcard)
	}
	return candidates
}

// Lookup returns the most specific grant for the node.
func (t Table) Lookup(node string) (Grant, bool) {
	for _, candidate := range Node(node).Candidates() {
		if grant, found := t[candidate]; found {
			return grant, true
		}
	}
	return nil, false
}

// Allow is false for nodes without any matching grant.
func (t Table) Allow(node string, actor Actor) bool {
	grant, found := t.Lookup(node)
	return found && grant.Allow(actor)
}

func (t Table) Explain(node string) string {
	if grant, found := t.Lookup(node); found {
		return grant.DescribeGrant()
	}
	return Nobody.DescribeGrant()
}

func (a AnyOf) Allow(actor Actor) bool {
	for _, item := range a {
		if item.Allow(actor) {
			return true
		}
	}
	return false
}

func (a AnyOf) DescribeGrant() string {
	if len(a) == 0 {
		return Nobody.DescribeGrant()
	}
	b := strings.Builder{}
	for i, item := range a {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.DescribeGrant())
	}
	return b.String()
}

func (allowAll) Allow(Actor) bool      { return true }
func (allowAll) DescribeGrant() string { return "anyone" }

func (denyAll) Allow(Actor) bool      { return false }
func (denyAll) DescribeGrant() string { return "noone" }
