package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemsMarksActiveView(t *testing.T) {
	t.Parallel()

	items := Items("/admin/", ViewStaff)
	require.Len(t, items, 7)
	require.Equal(t, "/admin", items[0].Href)
	require.Equal(t, "ダッシュボード", items[0].Label)
	require.Equal(t, "/admin/staff", items[3].Href)

	active := 0
	for _, item := range items {
		if item.Active {
			active++
			require.Equal(t, ViewStaff, item.View)
		}
	}
	require.Equal(t, 1, active)
}

func TestItemsAtRoot(t *testing.T) {
	t.Parallel()

	items := Items("/", ViewDashboard)
	require.Equal(t, "/", items[0].Href)
	require.Equal(t, "/tables", items[1].Href)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	view, ok := Resolve("")
	require.True(t, ok)
	require.Equal(t, ViewDashboard, view)

	view, ok = Resolve("Bottles")
	require.True(t, ok)
	require.Equal(t, ViewBottles, view)
	require.Equal(t, "ボトル管理", view.Label())

	view, ok = Resolve("reports")
	require.False(t, ok)
	require.Equal(t, Default, view)
}
