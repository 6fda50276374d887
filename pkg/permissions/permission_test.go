package permissions_test

import (
	"reflect"
	"testing"

	"github.com/Adirelle/mondo/pkg/permissions"
)

type (
	actor string

	onlyActor string
)

func (a actor) DescribeActor() string { return string(a) }

func (o onlyActor) Allow(a permissions.Actor) bool { return a.DescribeActor() == string(o) }
func (o onlyActor) DescribeGrant() string          { return string(o) }

func TestCandidates(t *testing.T) {
	t.Parallel()
	got := permissions.Node("house.color.add").Candidates()
	want := []permissions.Node{"house.color.add", "house.color.*", "house.*", "*"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := permissions.Node("*").Candidates(); !reflect.DeepEqual(got, []permissions.Node{"*"}) {
		t.Errorf("wildcard: %v", got)
	}
}

func TestTableAllow(t *testing.T) {
	t.Parallel()
	table := permissions.Table{
		"house.build":   permissions.AnyOf{onlyActor("alice"), onlyActor("bob")},
		"house.*":       onlyActor("alice"),
		"server.status": permissions.Anyone,
		"server.stop":   permissions.Nobody,
	}

	cases := []struct {
		node  string
		actor actor
		want  bool
	}{
		{"house.build", "bob", true},
		{"house.destroy", "bob", false},
		{"house.destroy", "alice", true},
		{"server.status", "carol", true},
		{"server.stop", "alice", false},
		{"unknown", "alice", false},
	}
	for _, c := range cases {
		if got := table.Allow(c.node, c.actor); got != c.want {
			t.Errorf("Allow(%q, %q) = %t", c.node, c.actor, got)
		}
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()
	table := permissions.Table{
		"house.build": permissions.AnyOf{onlyActor("alice"), onlyActor("bob")},
		"*":           permissions.Anyone,
	}
	if got := table.Explain("house.build"); got != "alice, bob" {
		t.Errorf("got %q", got)
	}
	if got := table.Explain("other"); got != "anyone" {
		t.Errorf("got %q", got)
	}
	if got := (permissions.Table{}).Explain("other"); got != "noone" {
		t.Errorf("got %q", got)
	}
}
