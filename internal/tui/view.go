package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifeplayer/internal/player"
	"github.com/san-kum/lifeplayer/internal/viz"
)

func (m Model) View() string {
	st := m.ctrl.Status()

	var body string
	if m.mode == modePicker {
		body = m.styles.Panel.Render(m.styles.Title.Render("open pattern") + "\n" + m.picker.View())
	} else {
		main := m.styles.Panel.Render(m.view.View())
		if st.State == player.LoadFailed {
			main = m.dialog(st)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, m.sidebar(st))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header(st), body, m.footer(st))
}

func (m Model) header(st player.Status) string {
	t := m.styles.Theme
	title := viz.GradientText("lifeplayer", t.Cell, t.Accent)
	if st.Source == "" {
		return title
	}
	return title + "  " + m.styles.Label.Render(st.Source)
}

func (m Model) sidebar(st player.Status) string {
	s := m.styles
	row := func(label, value string) string {
		return s.Label.Render(fmt.Sprintf("%-11s", label)) + s.Value.Render(value)
	}
	lines := []string{
		row("state", m.stateLabel(st)),
		row("generation", strconv.Itoa(st.Generation)),
		row("population", strconv.Itoa(st.Population)),
		row("margin", strconv.Itoa(st.Margin)),
		row("delay", st.Delay.String()),
		"",
		populationChart(st.History, sidebarWidth-12),
	}
	if mon := m.monitor; mon != nil && len(mon.Violations()) > 0 {
		lines = append(lines, "", s.Failed.Render(fmt.Sprintf("%d bridge violations", len(mon.Violations()))))
	}
	return s.Panel.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) stateLabel(st player.Status) string {
	s := m.styles
	switch st.State {
	case player.Playing:
		return s.Playing.Render("▶ playing")
	case player.LoadedPaused:
		return s.Paused.Render("❚❚ paused")
	case player.Loading:
		return s.Value.Render(viz.AnimatedSpinner(m.frame) + " loading")
	case player.LoadFailed:
		return s.Failed.Render("✗ load failed")
	default:
		return s.Label.Render(st.State.String())
	}
}

func (m Model) dialog(st player.Status) string {
	s := m.styles
	box := s.Dialog.Render(strings.Join([]string{
		s.Failed.Render("could not load " + st.Source),
		"",
		st.Message,
		"",
		s.Hint.Render("esc to dismiss · o to open another file"),
	}, "\n"))
	return lipgloss.Place(m.view.Width+4, m.view.Height+2, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) footer(st player.Status) string {
	s := m.styles
	var lines []string

	switch m.mode {
	case modeMargin:
		lines = append(lines, s.Label.Render("margin ")+m.input.View()+s.Hint.Render("  enter apply · esc cancel"))
	case modeDelay:
		lines = append(lines, s.Label.Render("delay ms ")+m.input.View()+s.Hint.Render("  enter apply · esc cancel"))
	}
	if st.Notice {
		lines = append(lines, s.Toast.Render(noticeText))
	}
	if m.flash != "" {
		lines = append(lines, s.Hint.Render(m.flash))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func populationChart(history []int, width int) string {
	if len(history) < 2 {
		return "population: collecting"
	}
	data := make([]float64, len(history))
	for i, v := range history {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(width),
		asciigraph.Caption("population"),
	)
}
