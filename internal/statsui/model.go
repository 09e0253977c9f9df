// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

const (
	tabOverview = iota
	tabStations
	tabUsers
	tabTrips
)

const maxColumnWidth = 32

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3A9AC8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	city     string
	base     *trips.Table
	filter   *trips.Filter
	spec     model.FilterSpec
	pageSize int

	selection *trips.Table
	report    stats.Report
	errMsg    string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	tripTable table.Model
	page      int

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI over a loaded city table.
func NewModel(city string, base *trips.Table, filter *trips.Filter, spec model.FilterSpec, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = 5
	}
	m := &Model{
		city:     city,
		base:     base,
		filter:   filter,
		spec:     spec,
		pageSize: pageSize,
		tabs:     []string{"Overview", "Stations", "Users", "Trips"},
	}
	m.initInputs()
	m.initViewports()
	m.tripTable = table.New(table.WithStyles(tripTableStyles()))
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "n", "pgdown":
			if m.activeTab == tabTrips {
				m.setPage(m.page + 1)
				return m, nil
			}
		case "p", "pgup":
			if m.activeTab == tabTrips {
				m.setPage(m.page - 1)
				return m, nil
			}
		case "g", "home":
			if m.activeTab == tabTrips {
				m.setPage(0)
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabTrips {
				m.setPage(m.pageCount() - 1)
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		if m.activeTab == tabTrips {
			var cmd tea.Cmd
			m.tripTable, cmd = m.tripTable.Update(msg)
			return m, cmd
		}
		vp := m.viewports[m.activeTab]
		var cmd tea.Cmd
		vp, cmd = vp.Update(msg)
		m.viewports[m.activeTab] = vp
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Month (all, january..june): "),
		newFilterInput("Day (all, monday..friday): "),
	}
	m.setInputsFromSpec()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromSpec() {
	m.filterInputs[0].SetValue(m.spec.Month)
	m.filterInputs[1].SetValue(m.spec.Day)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.tripTable.SetWidth(m.width)
	m.tripTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabTrips {
		m.tripTable.Focus()
	} else {
		m.tripTable.Blur()
	}
}

func (m *Model) refreshReport() {
	selection, err := m.filter.Apply(m.base, m.spec)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.selection = selection
	m.report = stats.BuildReport(m.city, m.spec, selection)
	m.setPage(0)
	m.renderTabContents()
}

func (m *Model) pageCount() int {
	if m.selection == nil {
		return 0
	}
	return m.selection.PageCount(m.pageSize)
}

func (m *Model) setPage(page int) {
	if last := m.pageCount() - 1; page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	m.page = page
	if m.selection == nil {
		return
	}
	headers, rows := stats.TripRows(m.selection.Schema(), m.selection.Page(page*m.pageSize, m.pageSize))
	m.tripTable.SetRows(nil)
	m.tripTable.SetColumns(tripColumns(headers, rows))
	m.tripTable.SetRows(toTableRows(rows))
	m.tripTable.GotoTop()
}

func tripColumns(headers []string, rows [][]string) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := runewidth.StringWidth(h)
		for _, row := range rows {
			if cw := runewidth.StringWidth(row[i]); cw > w {
				w = cw
			}
		}
		cols[i] = table.Column{Title: h, Width: minInt(w, maxColumnWidth)}
	}
	return cols
}

func toTableRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row(row)
	}
	return out
}

func tripTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.selection == nil {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabStations].SetContent(strings.Join(stats.StationLines(m.report.Stations), "\n"))
	m.viewports[tabUsers].SetContent(strings.Join(stats.UserLines(m.report.Users), "\n"))
}

func renderOverview(r stats.Report, width int) string {
	if r.Trips == 0 {
		return "No data for this selection."
	}
	t := r.Temporal.Value
	d := r.Duration.Value
	cards := []string{
		metricCard("Trips", fmt.Sprintf("%d", r.Trips)),
		metricCard("Top month", time.Month(t.PopularMonth).String()),
		metricCard("Top day", t.PopularDay),
		metricCard("Top hour", fmt.Sprintf("%02d:00", t.PopularHour)),
		metricCard("Total hours", fmt.Sprintf("%.2f", d.TotalHours)),
		metricCard("Avg minutes", fmt.Sprintf("%.0f", d.MeanMinutes)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	hist := stats.HourHistogram(t.HourCounts, width)
	return strings.TrimRight(summary+"\n\n"+headerStyle.Render("Trips by start hour")+"\n"+strings.Join(hist, "\n"), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("City: %s  month=%s  day=%s  trips=%d", m.city, m.spec.Month, m.spec.Day, m.report.Trips)
	if m.activeTab == tabTrips && m.pageCount() > 0 {
		summary += fmt.Sprintf("  page %d/%d", m.page+1, m.pageCount())
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Quit: q"
	if m.activeTab == tabTrips {
		help = "Nav: left/right  Page: n/p  First/last: g/G  Filter: /  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		lines := []string{"Filter (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return fitLines(strings.Join(lines, "\n"), m.width, height)
	}
	if m.activeTab == tabTrips {
		if m.pageCount() == 0 {
			return fitLines("No data for this selection.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.tripTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromSpec()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		spec := model.FilterSpec{
			Month: strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value())),
			Day:   strings.ToLower(strings.TrimSpace(m.filterInputs[1].Value())),
		}
		if _, err := m.filter.Apply(m.base, spec); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.spec = spec
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
