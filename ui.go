package main

import (
	"fmt"

	"github.com/adnsv/svgrender/render"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleName  = lipgloss.NewStyle().Width(16)
	styleStale = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleFresh = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

func formatStep(st render.Step) string {
	status := styleFresh.Render(st.Decision.Reason.String())
	if st.Decision.Rebuild {
		status = styleStale.Render(st.Decision.Reason.String())
	}
	return fmt.Sprintf("%s %s -> %s", styleName.Render(st.Asset.Name), status, st.Asset.OutputPath)
}
