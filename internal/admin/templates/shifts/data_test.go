package shifts

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	adminshifts "finitefield.org/venue-admin/internal/admin/shifts"
)

func TestBuildPageData(t *testing.T) {
	t.Parallel()

	week := adminshifts.Week{
		Start: "2024-01-15",
		End:   "2024-01-21",
		Days: []adminshifts.Day{
			{Date: "2024-01-15", Weekday: "月", Shifts: []adminshifts.ShiftView{{
				Shift:       adminshifts.Shift{ID: "sh-1", StaffName: "Yuki", Start: "20:00", End: "02:00"},
				StatusLabel: "確定",
				StatusTone:  "success",
			}}},
			{Date: "2024-01-16", Weekday: "火"},
		},
		Staff:   []adminshifts.StaffHours{{StaffName: "Yuki", Shifts: 1, Hours: 6}},
		Summary: adminshifts.WeekSummary{ShiftsThisWeek: 1, Confirmed: 1, PendingRequests: 1},
	}
	requests := []adminshifts.RequestView{{
		Request: adminshifts.Request{
			ID: "req-1", StaffName: "Mai", Dates: []string{"2024-01-20", "2024-01-21"},
			TimeRange: "19:00-01:00", Note: "**早番**希望",
			SubmittedAt: time.Date(2024, 1, 14, 18, 5, 0, 0, time.UTC),
		},
		StatusLabel: "承認待ち",
		StatusTone:  "warning",
	}}

	page := BuildPageData("シフト管理", week, requests)
	require.Equal(t, "2024-01-15 〜 2024-01-21", page.Range)
	require.Equal(t, page.Range, page.Stats[0].Note)
	require.Equal(t, "2024-01-15 (月)", page.Days[0].Label)
	require.Equal(t, "Yuki 20:00-02:00", page.Days[0].Shifts[0].Text)
	require.Empty(t, page.Days[1].Shifts)
	require.Equal(t, "6h", page.StaffHours[0].Hours)
	require.Equal(t, "2024-01-20, 2024-01-21", page.Requests[0].Dates)
	require.Equal(t, "2024/01/14 18:05", page.Requests[0].Submitted)

	var buf bytes.Buffer
	require.NoError(t, Index(page).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find(`#week-table [data-shift="sh-1"]`).Length())
	require.Equal(t, "-", doc.Find("#week-table tbody tr").Eq(1).Find("td").Last().Text())
	require.Equal(t, "早番", doc.Find("#requests-table strong").Text())
}
