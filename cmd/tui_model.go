package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/filter"
	"github.com/tayloree/coupon-report/internal/report"
	"github.com/tayloree/coupon-report/internal/source"
)

const (
	minTUIWidth  = 92
	minTUIHeight = 24
)

var (
	tuiAccent = lipgloss.Color("86")
	tuiBorder = lipgloss.Color("241")

	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(tuiAccent)
	tuiMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiStarStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiCouponStyle  = tuiValueStyle
	tuiMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tuiSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	tuiPaneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(tuiBorder).Padding(0, 1)
)

const clearFuzzyFirst = "Clear fuzzy filter before section jumps."

type tuiData struct {
	label   string
	records []source.Record
}

type tuiLoadConfig struct {
	load        func() (tuiData, error)
	today       time.Time
	initialOpts filter.Options
}

type tuiDataLoadedMsg struct {
	data        tuiData
	initialOpts filter.Options
}

type tuiDataLoadErrMsg struct {
	err error
}

type tuiFocus int

const (
	tuiFocusList tuiFocus = iota
	tuiFocusDetail
)

// paneLayout is the computed geometry of the two-pane body.
type paneLayout struct {
	bodyHeight  int
	listWidth   int
	detailWidth int
}

func computeLayout(width, height int, showHelp bool) paneLayout {
	footer := 2
	if showHelp {
		footer = 7
	}
	l := paneLayout{bodyHeight: max(8, height-3-footer-1)}

	l.listWidth = max(40, width*43/100)
	if l.listWidth > width-42 {
		l.listWidth = width / 2
	}
	l.detailWidth = max(36, width-l.listWidth-1)
	l.listWidth = width - l.detailWidth - 1
	return l
}

type browseModel struct {
	keys    browseKeyMap
	help    help.Model
	spinner spinner.Model
	loadCmd tea.Cmd

	loading  bool
	fatalErr error

	sourceLabel string
	today       time.Time
	allRecords  []source.Record
	buckets     coupon.Buckets

	opts        filter.Options
	initialOpts filter.Options
	groupIndex  int
	limitChoice []int
	limitIndex  int

	list   list.Model
	detail viewport.Model

	focus      tuiFocus
	selectedID string

	sectionStarts  []int
	visibleCoupons int

	width, height int
	layout        paneLayout
	tooSmall      bool
}

func newLoadingBrowseModel(cfg tuiLoadConfig) browseModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(1)

	lst := list.New(nil, delegate, 0, 0)
	lst.Title = "Coupons"
	lst.SetStatusBarItemName("item", "items")
	lst.SetShowHelp(false)
	lst.DisableQuitKeybindings()

	detail := viewport.New(0, 0)
	detail.KeyMap.PageDown.SetKeys("f", "pgdown")
	detail.KeyMap.PageUp.SetKeys("b", "pgup")
	detail.KeyMap.HalfPageDown.SetKeys("d")
	detail.KeyMap.HalfPageUp.SetKeys("u")

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(tuiAccent)

	return browseModel{
		keys:        newBrowseKeyMap(),
		help:        help.New(),
		loading:     true,
		spinner:     spin,
		loadCmd:     loadTUIDataCmd(cfg),
		today:       cfg.today,
		initialOpts: cfg.initialOpts,
		opts:        cfg.initialOpts,
		list:        lst,
		detail:      detail,
	}
}

func loadTUIDataCmd(cfg tuiLoadConfig) tea.Cmd {
	return func() tea.Msg {
		data, err := cfg.load()
		if err != nil {
			return tuiDataLoadErrMsg{err: err}
		}
		return tuiDataLoadedMsg{data: data, initialOpts: cfg.initialOpts}
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tuiDataLoadedMsg:
		m.loading = false
		m.sourceLabel = msg.data.label
		m.allRecords = msg.data.records
		m.initialOpts = canonicalizeTUIOptions(msg.initialOpts)
		m.opts = m.initialOpts
		m.limitChoice = buildLimitChoices(m.opts.Limit)
		m.syncChoiceIndexes()
		m.applyCurrentFilters(true)
		m.resize()
		return m, nil

	case tuiDataLoadErrMsg:
		m.loading = false
		m.fatalErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.loading {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.list.FilterState() != list.Filtering {
			if next, cmd, handled := m.handleKey(msg); handled {
				return next, cmd
			}
		}
	}

	if m.loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail(false)
	return m, cmd
}

// handleKey applies the browser bindings outside of fuzzy-filter input.
func (m browseModel) handleKey(msg tea.KeyMsg) (browseModel, tea.Cmd, bool) {
	sectionKey := key.Matches(msg, m.keys.NextSection, m.keys.PrevSection, m.keys.JumpSection)
	if sectionKey && m.list.IsFiltered() {
		return m, m.list.NewStatusMessage(clearFuzzyFirst), true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.SwitchPane):
		m.focus = 1 - m.focus
	case key.Matches(msg, m.keys.Back) && m.focus == tuiFocusDetail:
		m.focus = tuiFocusList
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.CycleGroup):
		m.groupIndex = (m.groupIndex + 1) % len(tuiGroupChoices)
		m.opts.Group = tuiGroupChoices[m.groupIndex]
		m.applyCurrentFilters(false)
	case key.Matches(msg, m.keys.CycleLimit) && len(m.limitChoice) > 0:
		m.limitIndex = (m.limitIndex + 1) % len(m.limitChoice)
		m.opts.Limit = m.limitChoice[m.limitIndex]
		m.applyCurrentFilters(false)
	case key.Matches(msg, m.keys.Reset):
		m.opts = m.initialOpts
		m.syncChoiceIndexes()
		m.applyCurrentFilters(false)
	case key.Matches(msg, m.keys.NextSection):
		m.jumpSection(1)
	case key.Matches(msg, m.keys.PrevSection):
		m.jumpSection(-1)
	case key.Matches(msg, m.keys.JumpSection):
		m.jumpToSection(int(msg.String()[0] - '1'))
	case m.focus == tuiFocusDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m browseModel) View() string {
	switch {
	case m.loading:
		return m.loadingView()
	case m.width == 0 || m.height == 0:
		return tuiMetaStyle.Render("Loading interface...")
	case m.tooSmall:
		return lipgloss.NewStyle().Padding(1, 2).Render(fmt.Sprintf(
			"Terminal too small (%dx%d).\nResize to at least %dx%d for the two-pane coupon browser.",
			m.width, m.height, minTUIWidth, minTUIHeight,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.bodyView(), m.footerView())
}

func (m browseModel) loadingView() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join([]string{
		tuiHeaderStyle.Render("couponcli browse"),
		"",
		m.spinner.View() + " Loading coupons and sorting them into validity buckets",
		tuiMutedStyle.Render("press q to cancel"),
	}, "\n"))
}

func (m *browseModel) resize() {
	if m.loading || m.width == 0 || m.height == 0 {
		return
	}
	m.tooSmall = m.width < minTUIWidth || m.height < minTUIHeight
	if m.tooSmall {
		return
	}

	m.layout = computeLayout(m.width, m.height, m.help.ShowAll)
	m.help.Width = m.width - 2

	inner := max(6, m.layout.bodyHeight-2)
	m.list.SetSize(max(24, m.layout.listWidth-4), inner)
	m.detail.Width = max(24, m.layout.detailWidth-4)
	m.detail.Height = inner
	m.refreshDetail(false)
}

func (m browseModel) headerView() string {
	focus := "list"
	if m.focus == tuiFocusDetail {
		focus = "detail"
	}
	top := fmt.Sprintf("couponcli browse  |  %s  |  as of %s", m.sourceLabel, m.today.Format("2006-01-02"))
	bottom := fmt.Sprintf("coupons: %d visible / %d total  |  filters: %s  |  focus: %s",
		m.visibleCoupons, len(m.allRecords), m.activeFilterSummary(), focus)

	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).
		Render(tuiHeaderStyle.Render(top) + "\n" + tuiMetaStyle.Render(bottom))
}

func (m browseModel) bodyView() string {
	pane := func(focused bool, width int, content string) string {
		style := tuiPaneStyle
		if focused {
			style = style.BorderForeground(tuiAccent)
		}
		return style.Width(width).Height(m.layout.bodyHeight).Render(content)
	}
	left := pane(m.focus == tuiFocusList, m.layout.listWidth, m.list.View())
	right := pane(m.focus == tuiFocusDetail, m.layout.detailWidth, m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m browseModel) footerView() string {
	var keys help.KeyMap = m.keys
	if m.focus == tuiFocusDetail {
		keys = detailKeyMap{m.keys}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(keys))
}

func (m *browseModel) syncChoiceIndexes() {
	m.groupIndex = max(0, slices.Index(tuiGroupChoices, m.opts.Group))
	m.opts.Group = tuiGroupChoices[m.groupIndex]

	m.limitIndex = slices.Index(m.limitChoice, m.opts.Limit)
	if m.limitIndex < 0 {
		m.limitIndex = 0
		m.opts.Limit = m.limitChoice[0]
	}
}

func (m browseModel) activeFilterSummary() string {
	var parts []string
	add := func(name, value string) {
		if value != "" {
			parts = append(parts, name+":"+value)
		}
	}
	add("group", m.opts.Group)
	add("status", m.opts.Status)
	add("query", m.opts.Query)
	if m.opts.Limit > 0 {
		add("limit", fmt.Sprint(m.opts.Limit))
	}
	add("fuzzy", strings.TrimSpace(m.list.FilterValue()))

	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// applyCurrentFilters reruns the pipeline over the loaded records so buckets
// and combinations always reflect the active inline options.
func (m *browseModel) applyCurrentFilters(resetSelection bool) {
	m.buckets = coupon.Categorize(filter.Apply(m.allRecords, m.opts), m.today)
	m.visibleCoupons = m.buckets.Len()

	items, starts := buildSectionedListItems(m.buckets, advisor.Suggest(m.buckets.Today))
	m.sectionStarts = starts
	m.list.Title = fmt.Sprintf("Coupons • %d visible", m.visibleCoupons)
	m.list.SetItems(items)

	target := -1
	if !resetSelection && m.selectedID != "" {
		target = slices.IndexFunc(items, func(it list.Item) bool { return stableIDForItem(it) == m.selectedID })
	}
	if target < 0 {
		target = max(0, firstEntryIndexFrom(items, 0))
	}
	if len(items) > 0 {
		m.list.Select(target)
	}
	m.refreshDetail(true)
}

func (m *browseModel) refreshDetail(resetScroll bool) {
	content := "No coupons match the current inline filters.\n\nTry pressing r to reset filters."
	nextID := ""

	if selected := m.list.SelectedItem(); selected != nil {
		switch item := selected.(type) {
		case tuiCouponItem:
			content = renderCouponDetailContent(item, m.detail.Width)
		case tuiSuggestionItem:
			content = renderSuggestionDetailContent(item.suggestion, m.detail.Width)
		case tuiSectionItem:
			content = m.renderSectionDetail(item)
		}
		nextID = stableIDForItem(selected)
	}

	if resetScroll || nextID != m.selectedID {
		m.detail.GotoTop()
	}
	m.selectedID = nextID
	m.detail.SetContent(content)
}

func (m browseModel) renderSectionDetail(section tuiSectionItem) string {
	lines := []string{
		tuiSectionStyle.Render(fmt.Sprintf("Section %d: %s", section.ordinal, section.name)),
		tuiMetaStyle.Render(fmt.Sprintf("%d %s in this section", section.count, sectionNoun(section.name))),
	}
	if section.name == sectionToday && section.count < advisor.MinActive {
		lines = append(lines, "", tuiMutedStyle.Render(wrapText(report.NotEnoughCoupons, m.detail.Width)))
	}
	lines = append(lines, "", tuiMetaStyle.Render("Jump with ] and [ or the section number."))

	if preview := m.sectionPreview(section.name, 5); len(preview) > 0 {
		lines = append(lines, "", tuiMetaStyle.Render("Preview:"))
		for _, title := range preview {
			lines = append(lines, "• "+title)
		}
	}
	return strings.Join(lines, "\n")
}

func (m browseModel) sectionPreview(section string, limit int) []string {
	var out []string
	for _, item := range m.list.Items() {
		if len(out) == limit {
			break
		}
		switch entry := item.(type) {
		case tuiCouponItem:
			if entry.section == section {
				out = append(out, entry.title)
			}
		case tuiSuggestionItem:
			if section == sectionCombinations {
				out = append(out, entry.title)
			}
		}
	}
	return out
}

func (m *browseModel) jumpToSection(index int) {
	if index < 0 || index >= len(m.sectionStarts) {
		return
	}
	start := m.sectionStarts[index]
	target := firstEntryIndexFrom(m.list.Items(), start)
	if target < 0 {
		target = start
	}
	m.list.Select(target)
	m.refreshDetail(true)
}

// jumpSection moves delta sections from the cursor, wrapping at both ends.
func (m *browseModel) jumpSection(delta int) {
	n := len(m.sectionStarts)
	if n == 0 {
		return
	}
	cursor := m.list.GlobalIndex()
	current := 0
	for i, start := range m.sectionStarts {
		if start <= cursor {
			current = i
		}
	}
	m.jumpToSection(((current+delta)%n + n) % n)
}
