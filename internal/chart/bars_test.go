// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
)

func agg(name string, n int) model.AggregateCount {
	return model.AggregateCount{Kind: model.GroupStatus, Group: model.Ref{ID: name, Name: name}, Count: n}
}

func TestBars_ScalesToMax(t *testing.T) {
	i18n.Init("en")
	out := ansi.Strip(Bars("Status", []model.AggregateCount{agg("Active", 10), agg("In Repair", 5), agg("Retired", 0)}, 40))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 || lines[0] != "Status" {
		t.Fatalf("unexpected chart:\n%s", out)
	}

	// label 9 + count 2 + 2 spaces leaves 27 columns for the longest bar
	if got := strings.Count(lines[1], barRune); got != 27 {
		t.Fatalf("expected full bar of 27, got %d in %q", got, lines[1])
	}
	if got := strings.Count(lines[2], barRune); got != 13 {
		t.Fatalf("expected half bar of 13, got %d in %q", got, lines[2])
	}
	if strings.Contains(lines[3], barRune) || !strings.HasSuffix(lines[3], " 0") {
		t.Fatalf("zero bucket must have no bar: %q", lines[3])
	}
	if !strings.HasPrefix(lines[1], "Active    ") {
		t.Fatalf("labels must be padded to the longest name: %q", lines[1])
	}
}

func TestBars_SmallCountsStillVisible(t *testing.T) {
	out := ansi.Strip(Bars("", []model.AggregateCount{agg("A", 1000), agg("B", 1)}, 12))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines without title, got %q", out)
	}
	if strings.Count(lines[1], barRune) != 1 {
		t.Fatalf("non-zero bucket must get at least one cell: %q", lines[1])
	}
	if strings.Count(lines[0], barRune) != minBarWidth {
		t.Fatalf("narrow width must fall back to the minimum bar width: %q", lines[0])
	}
}

func TestBars_Empty(t *testing.T) {
	i18n.Init("en")
	out := ansi.Strip(Bars("Location", nil, 40))
	if out != "Location\nNo data" {
		t.Fatalf("unexpected empty chart %q", out)
	}
}

func TestBars_NegativeCountDrawsNoBar(t *testing.T) {
	out := ansi.Strip(Bars("", []model.AggregateCount{agg("a", 5), agg("b", -1)}, 60))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected chart %q", out)
	}
	if strings.Contains(lines[1], barRune) || !strings.HasSuffix(lines[1], " -1") {
		t.Fatalf("negative bucket must have no bar: %q", lines[1])
	}

	out = ansi.Strip(Bars("", []model.AggregateCount{agg("a", -3), agg("b", -1)}, 60))
	if strings.Contains(out, barRune) {
		t.Fatalf("all-negative chart must draw no bars: %q", out)
	}
}
