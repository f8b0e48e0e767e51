package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree_Connectors(t *testing.T) {
	a := testutil.NewTestTicket("p", "A", testutil.WithTicketID("aaaaaaaa"), testutil.WithSortOrder(0))
	a1 := testutil.NewTestTicket("p", "a1", testutil.WithTicketID("a1a1a1a1"), testutil.WithParent("aaaaaaaa"), testutil.WithSortOrder(0))
	a1x := testutil.NewTestTicket("p", "a1x", testutil.WithTicketID("a1xa1xa1"), testutil.WithParent("a1a1a1a1"))
	a2 := testutil.NewTestTicket("p", "a2", testutil.WithTicketID("a2a2a2a2"), testutil.WithParent("aaaaaaaa"), testutil.WithSortOrder(1))
	b := testutil.NewTestTicket("p", "B", testutil.WithTicketID("bbbbbbbb"), testutil.WithSortOrder(1))
	tickets := []*domain.Ticket{a, a1, a1x, a2, b}
	expanded := map[string]bool{"aaaaaaaa": true, "a1a1a1a1": true}

	items := TreeItems(tree.Flatten(tickets, expanded), expanded, func(t *domain.Ticket) string {
		if t.Name == "B" {
			return "Alice"
		}
		return ""
	})
	out := stripANSI(RenderTree(items))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "aaaaaaaa ▾ A", lines[0])
	assert.Equal(t, "a1a1a1a1 ├─ ▾ a1", lines[1])
	assert.Equal(t, "a1xa1xa1 │  └─   a1x", lines[2])
	assert.Equal(t, "a2a2a2a2 └─   a2", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "bbbbbbbb   B"))
	assert.True(t, strings.HasSuffix(lines[4], "[ Alice ]"))
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
