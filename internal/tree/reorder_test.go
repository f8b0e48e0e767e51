package tree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orders(all []*domain.Ticket) map[string]int {
	m := make(map[string]int, len(all))
	for _, t := range all {
		m[t.ID] = t.SortOrder
	}
	return m
}

func TestReorder_DragOntoPreviousSibling(t *testing.T) {
	a, b := tk("A", "", 0), tk("B", "", 1)
	got := Reorder([]*domain.Ticket{a, b}, "B", "A")

	assert.Equal(t, map[string]int{"A": 1, "B": 0}, orders(got))
	assert.Equal(t, 0, a.SortOrder, "input must not be mutated")
}

func TestReorder_DragDownLandsBeforeTarget(t *testing.T) {
	all := []*domain.Ticket{tk("A", "", 0), tk("B", "", 1), tk("C", "", 2), tk("D", "", 3)}
	got := Reorder(all, "A", "C")
	assert.Equal(t, map[string]int{"B": 0, "A": 1, "C": 2, "D": 3}, orders(got))
}

func TestReorder_OnlyChangedTicketsAreReplaced(t *testing.T) {
	all := []*domain.Ticket{tk("A", "", 0), tk("B", "", 1), tk("C", "", 2), tk("D", "", 3)}
	got := Reorder(all, "D", "C")

	assert.Same(t, all[0], got[0])
	assert.Same(t, all[1], got[1])
	assert.NotSame(t, all[2], got[2])
	assert.NotSame(t, all[3], got[3])
	assert.Len(t, domain.ChangedTickets(all, got), 2)
}

func TestReorder_NoOps(t *testing.T) {
	root := tk("R", "", 0)
	child := tk("K", "R", 0)
	other := tk("S", "", 1)
	solo := []*domain.Ticket{root, child, other}

	cases := map[string][2]string{
		"same ticket":       {"R", "R"},
		"unknown dragged":   {"nope", "R"},
		"unknown target":    {"R", "nope"},
		"different parents": {"K", "S"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got := Reorder(solo, c[0], c[1])
			require.Len(t, got, len(solo))
			for i := range solo {
				assert.Same(t, solo[i], got[i])
			}
		})
	}
}

func TestReorder_DifferentProjectsAreNotSiblings(t *testing.T) {
	a := tk("A", "", 0)
	b := tk("B", "", 1)
	b.ProjectID = "p2"
	all := []*domain.Ticket{a, b}
	got := Reorder(all, "B", "A")
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
}

func TestReorder_DensityAndIsolation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		var all []*domain.Ticket
		n := 2 + rng.Intn(6)
		perm := rng.Perm(n)
		for i := 0; i < n; i++ {
			// Gaps and shuffled input order are allowed before a reorder.
			all = append(all, tk(string(rune('a'+i)), "P", perm[i]*3))
		}
		all = append(all, tk("P", "", 0), tk("Q", "", 1), tk("q1", "Q", 5))

		dragged := string(rune('a' + rng.Intn(n)))
		target := string(rune('a' + rng.Intn(n)))
		got := Reorder(all, dragged, target)

		for _, id := range []string{"P", "Q", "q1"} {
			assert.Same(t, domain.FindTicket(all, id), domain.FindTicket(got, id))
		}
		if dragged == target {
			continue
		}
		var group []int
		for _, t := range got {
			if domain.PtrEqual(t.ParentID, domain.StrPtr("P")) {
				group = append(group, t.SortOrder)
			}
		}
		sort.Ints(group)
		for i, o := range group {
			assert.Equal(t, i, o)
		}
	}
}

func TestReorder_Idempotent(t *testing.T) {
	all := []*domain.Ticket{tk("A", "", 0), tk("B", "", 1), tk("C", "", 2)}
	// Dragging A onto its right neighbour leaves it in place.
	got := Reorder(all, "A", "B")
	for i := range all {
		assert.Same(t, all[i], got[i])
	}
}

func TestNormalize_ClosesGaps(t *testing.T) {
	all := []*domain.Ticket{tk("A", "", 0), tk("B", "", 4), tk("C", "", 9), tk("K", "A", 3)}
	got := Normalize(all, "p1", nil)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "K": 3}, orders(got))
	assert.Same(t, all[0], got[0])
	assert.Same(t, all[3], got[3])
}

func TestMoveBy(t *testing.T) {
	all := []*domain.Ticket{tk("A", "", 0), tk("B", "", 1), tk("C", "", 2)}

	down := MoveBy(all, "A", 1)
	assert.Equal(t, map[string]int{"A": 1, "B": 0, "C": 2}, orders(down))

	up := MoveBy(all, "C", -1)
	assert.Equal(t, map[string]int{"A": 0, "B": 2, "C": 1}, orders(up))

	clamped := MoveBy(all, "C", 5)
	assert.Same(t, all[2], clamped[2])
}
