// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package chart draws the aggregate bar charts shared by the dashboard and `assetdesk stats`.
package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/model"
)

const (
	barRune     = "█"
	minBarWidth = 10
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	labelStyle = lipgloss.NewStyle()
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	palette = []lipgloss.Color{"81", "208", "40", "170", "220", "33"}
)

// Bars renders one horizontal bar per bucket. Bars scale to the largest count
// and fill at most width columns together with label and count.
func Bars(title string, aggs []model.AggregateCount, width int) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}
	if len(aggs) == 0 {
		b.WriteString(emptyStyle.Render(i18n.T("chart.no_data")))
		return b.String()
	}

	labelWidth, countWidth, maxCount := 0, 0, 0
	for _, a := range aggs {
		labelWidth = max(labelWidth, lipgloss.Width(a.Group.Name))
		countWidth = max(countWidth, len(strconv.Itoa(a.Count)))
		maxCount = max(maxCount, a.Count)
	}

	barWidth := width - labelWidth - countWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	for i, a := range aggs {
		// counts come from the server; negative ones draw no bar
		n := 0
		if maxCount > 0 && a.Count > 0 {
			n = a.Count * barWidth / maxCount
			if n == 0 {
				n = 1
			}
		}
		bar := lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Render(strings.Repeat(barRune, n))
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(a.Group.Name))

		fmt.Fprintf(&b, "%s%s %s %s", labelStyle.Render(a.Group.Name), pad, bar, countStyle.Render(strconv.Itoa(a.Count)))
		if i < len(aggs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
