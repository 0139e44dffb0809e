package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestRedFlags(t *testing.T) {
	flags := RedFlags(FlagInputs{
		OpenClassC:      2,
		AEP:             true,
		HeatComplaints:  5,
		Bedbugs:         2,
		InFloodZone:     true,
		FloodZoneType:   "AE",
		InHurricaneZone: true,
	})
	want := []RedFlag{
		{SeverityCritical, "2 Class C Violations", "Immediately hazardous conditions."},
		{SeverityCritical, "Alternative Enforcement Program", "HPD worst buildings list."},
		{SeverityCritical, "5 Heat Complaints", "Chronic heat/hot water issues."},
		{SeverityCritical, "2 Bedbug Reports", "Multiple bedbug filings."},
		{SeverityWarning, "Flood Zone AE", "FEMA flood risk area."},
		{SeverityInfo, "Hurricane Zone", "Evacuation zone during hurricanes."},
	}
	if len(flags) != len(want) {
		t.Fatalf("expected %d flags, got %v", len(want), flags)
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flag %d: got %+v, want %+v", i, flags[i], want[i])
		}
	}

	if got := RedFlags(FlagInputs{HeatComplaints: 4, Bedbugs: 1}); len(got) != 0 {
		t.Fatalf("expected no flags below thresholds, got %v", got)
	}
}

func TestBuildTimelineOrdersAndTruncates(t *testing.T) {
	var events []TimelineEvent
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		events = append(events, TimelineEvent{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02T15:04:05.000"),
			Type:        "violation",
			Description: fmt.Sprint(i),
		})
	}
	events = append(events, TimelineEvent{Date: "", Type: "sale"})
	events = append(events, TimelineEvent{Date: "2020-03-01", Type: "sale", Description: "same day"})

	got := BuildTimeline(events, MaxTimelineEvents)
	if len(got) != MaxTimelineEvents {
		t.Fatalf("expected %d events, got %d", MaxTimelineEvents, len(got))
	}
	if got[0].Description != "119" {
		t.Fatalf("expected newest first, got %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		a, _ := ParseDate(got[i-1].Date)
		b, _ := ParseDate(got[i].Date)
		if b.After(a) {
			t.Fatalf("timeline not descending at %d", i)
		}
	}
	for _, e := range got {
		if e.Date == "" {
			t.Fatalf("undated event kept")
		}
	}
}

func TestSortByDateDescIsStableAndPutsBadDatesLast(t *testing.T) {
	items := []TimelineEvent{
		{Date: "garbage", Description: "bad"},
		{Date: "2021-05-01", Description: "a"},
		{Date: "2021-05-01T00:00:00.000", Description: "b"},
		{Date: "2023-01-01", Description: "new"},
	}
	SortByDateDesc(items, func(e TimelineEvent) string { return e.Date })
	order := ""
	for _, e := range items {
		order += e.Description + " "
	}
	if order != "new a b bad " {
		t.Fatalf("unexpected order %q", order)
	}
}

func TestReductions(t *testing.T) {
	dates := []string{"2021-01-02", "2021-06-01", "2019-01-01", "", "20"}
	byYear := Tally(dates, Year)
	if byYear["2021"] != 2 || byYear["2019"] != 1 || len(byYear) != 2 {
		t.Fatalf("unexpected years %v", byYear)
	}

	shares := Breakdown(map[string]int{"Heat/Hot Water": 3, "Pests": 1}, 8)
	if shares[0].Category != "Heat/Hot Water" || shares[0].Pct != 75 || shares[1].Pct != 25 {
		t.Fatalf("unexpected shares %+v", shares)
	}
	if got := Breakdown(map[string]int{}, 8); len(got) != 0 {
		t.Fatalf("expected empty breakdown")
	}

	top := TopCounts(map[string]int{"b": 2, "a": 2, "c": 5}, 2)
	if top[0].Key != "c" || top[1].Key != "a" || len(top) != 2 {
		t.Fatalf("unexpected top counts %+v", top)
	}
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		1234567: "$1.2M",
		1250000: "$1.3M",
		350000:  "$350K",
		999:     "$999",
		12.5:    "$12.5",
	}
	for in, want := range tests {
		if got := Money(in); got != want {
			t.Errorf("Money(%v) = %s, want %s", in, got, want)
		}
	}
}
