package tables

import (
	"testing"

	"github.com/stretchr/testify/require"

	admintables "finitefield.org/venue-admin/internal/admin/tables"
)

func TestBuildPageData(t *testing.T) {
	t.Parallel()

	page := BuildPageData("テーブル管理", admintables.ListResult{
		Tables: []admintables.View{
			{Table: admintables.Table{ID: "t1", Number: "1", Customers: 3, Staff: "Yuki", Bill: 45000}, StatusLabel: "使用中", StatusTone: "danger", Duration: "1時間20分"},
			{Table: admintables.Table{ID: "t2", Number: "2"}, StatusLabel: "空席", StatusTone: "success"},
		},
		Summary: admintables.Summary{
			Total:     2,
			Occupied:  1,
			Customers: 3,
			OpenBills: 45000,
			Counts:    map[admintables.Status]int{admintables.StatusAvailable: 1},
		},
	})

	require.Equal(t, "1/2", page.Stats[0].Value)
	require.Equal(t, "¥45,000", page.Stats[2].Value)
	require.Equal(t, "1", page.Stats[3].Value)
	require.Len(t, page.Rows, 2)
	require.Equal(t, "3名", page.Rows[0].Customers)
	require.Equal(t, "danger", page.Rows[0].Status.Tone)
	require.Equal(t, "-", page.Rows[1].Duration)
	require.Equal(t, "-", page.Rows[1].Staff)
	require.Equal(t, "¥0", page.Rows[1].Bill)
}
