// Package app contains the bubbletea model for the studytrack TUI.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"studytrack/internal/core"
	"studytrack/internal/timeutil"
	"studytrack/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// View identifies the visible tab.
type View int

const (
	ViewTracker View = iota
	ViewDashboard
	ViewTasks
	ViewProfile
	ViewSettings
)

var viewNames = []string{"Tracker", "Dashboard", "Tasks", "Profile", "Settings"}

// inputMode tracks what a typed line of text is for.
type inputMode int

const (
	inputNone inputMode = iota
	inputTask
	inputProfileName
	inputProfileClass
)

// Model is the root bubbletea model.
type Model struct {
	tracker *core.Tracker
	now     func() time.Time

	view   View
	width  int
	height int

	// Tracker view
	selected     int // index into core.Activities
	confirmReset bool

	// Dashboard view
	dateIndex int

	// Tasks view
	taskIndex int

	// Text entry
	input      inputMode
	buffer     string
	nameBuffer string

	status string
}

// New creates the root model. nowFn is injectable for tests; nil means
// time.Now. Prayer states are derived once immediately so the first
// frame is already correct.
func New(tracker *core.Tracker, nowFn func() time.Time) Model {
	if nowFn == nil {
		nowFn = time.Now
	}
	tracker.EvaluatePrayers(nowFn())
	return Model{
		tracker: tracker,
		now:     nowFn,
	}
}

// Init starts the display and prayer ticks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(displayTickCmd(), prayerTickCmd())
}

// displayTickCmd triggers a re-render every second. The tick is never
// the source of truth for elapsed time; it only refreshes the display.
func displayTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return displayTickMsg(t)
	})
}

// prayerTickCmd re-derives prayer states twice a minute.
func prayerTickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return prayerTickMsg(t)
	})
}

// clearStatusCmd fires after a delay to clear the status line.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		// Returning to the foreground after an arbitrary suspension:
		// recompute immediately rather than waiting for the next tick.
		m.tracker.EvaluatePrayers(m.now())
		return m, nil

	case displayTickMsg:
		return m, displayTickCmd()

	case prayerTickMsg:
		m.tracker.EvaluatePrayers(m.now())
		return m, prayerTickCmd()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInput(msg)
	}

	key := msg.String()

	if m.confirmReset {
		m.confirmReset = false
		if key == "y" || key == "Y" {
			m.tracker.ResetToday(m.now())
			m.status = "Today's data has been reset"
			return m, clearStatusCmd()
		}
		return m, nil
	}

	switch key {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeyTab, KeyL, KeyRight:
		m.view = (m.view + 1) % View(len(viewNames))
		return m, nil

	case KeyShiftTab, KeyH, KeyLeft:
		m.view = (m.view + View(len(viewNames)) - 1) % View(len(viewNames))
		return m, nil
	}

	switch m.view {
	case ViewTracker:
		return m.handleTrackerKey(key)
	case ViewDashboard:
		return m.handleDashboardKey(key)
	case ViewTasks:
		return m.handleTasksKey(key)
	case ViewProfile:
		return m.handleProfileKey(key)
	case ViewSettings:
		return m.handleSettingsKey(key)
	}

	return m, nil
}

func (m Model) handleTrackerKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyJ, KeyDown:
		m.selected = (m.selected + 1) % len(core.Activities)

	case KeyK, KeyUp:
		m.selected = (m.selected + len(core.Activities) - 1) % len(core.Activities)

	case KeySpace, KeyEnter:
		m.tracker.Start(core.Activities[m.selected], m.now())

	case KeyFinishDay:
		m.tracker.Stop(m.now())

	case KeyReset:
		m.confirmReset = true

	case "1", "2", "3", "4", "5":
		p := core.Prayers[int(key[0]-'1')]
		if !m.tracker.MarkPrayer(p, m.now()) {
			w := m.tracker.Window(p)
			m.status = fmt.Sprintf("%s can only be marked between %s and %s",
				p.Label(), w.Start, w.End)
			return m, clearStatusCmd()
		}
	}
	return m, nil
}

func (m Model) handleDashboardKey(key string) (tea.Model, tea.Cmd) {
	dates := m.tracker.Dates(m.now())
	switch key {
	case KeyJ, KeyDown:
		if m.dateIndex < len(dates)-1 {
			m.dateIndex++
		}
	case KeyK, KeyUp:
		if m.dateIndex > 0 {
			m.dateIndex--
		}
	}
	return m, nil
}

func (m Model) handleTasksKey(key string) (tea.Model, tea.Cmd) {
	tasks := m.tracker.Tasks()
	switch key {
	case KeyAddTask:
		m.input = inputTask
		m.buffer = ""

	case KeyJ, KeyDown:
		if m.taskIndex < len(tasks)-1 {
			m.taskIndex++
		}

	case KeyK, KeyUp:
		if m.taskIndex > 0 {
			m.taskIndex--
		}

	case KeySpace, KeyEnter:
		if m.taskIndex < len(tasks) {
			m.tracker.ToggleTask(tasks[m.taskIndex].ID, m.now())
		}

	case KeyDelete:
		if m.taskIndex < len(tasks) {
			m.tracker.DeleteTask(tasks[m.taskIndex].ID, m.now())
			if m.taskIndex > 0 {
				m.taskIndex--
			}
		}
	}
	return m, nil
}

func (m Model) handleProfileKey(key string) (tea.Model, tea.Cmd) {
	if key == KeyEdit {
		p, _ := m.tracker.Profile()
		m.input = inputProfileName
		m.buffer = p.Name
	}
	return m, nil
}

func (m Model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyToggle:
		now := m.now()
		m.tracker.SetNotificationsEnabled(!m.tracker.NotificationsEnabled(), now)

	case KeyTestNote:
		m.tracker.TestNotification()
		m.status = "Test notification sent"
		return m, clearStatusCmd()
	}
	return m, nil
}

// handleInput collects a typed line for the active input mode.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.input = inputNone
		m.buffer = ""
		return m, nil

	case KeyEnter:
		return m.commitInput()

	case KeyBackspace:
		if len(m.buffer) > 0 {
			runes := []rune(m.buffer)
			m.buffer = string(runes[:len(runes)-1])
		}
		return m, nil

	case KeySpace:
		m.buffer += " "
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.buffer += string(msg.Runes)
	}
	return m, nil
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	switch m.input {
	case inputTask:
		if m.tracker.AddTask(m.buffer, m.now()) {
			m.taskIndex = 0
		}
		m.input = inputNone
		m.buffer = ""

	case inputProfileName:
		m.nameBuffer = strings.TrimSpace(m.buffer)
		p, _ := m.tracker.Profile()
		m.input = inputProfileClass
		m.buffer = p.Class

	case inputProfileClass:
		m.tracker.SetProfile(core.UserProfile{
			Name:  m.nameBuffer,
			Class: strings.TrimSpace(m.buffer),
		}, m.now())
		m.input = inputNone
		m.buffer = ""
		m.nameBuffer = ""
		m.status = "Profile saved"
		return m, clearStatusCmd()
	}
	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.view {
	case ViewTracker:
		sections = append(sections, m.renderTracker())
	case ViewDashboard:
		sections = append(sections, m.renderDashboard())
	case ViewTasks:
		sections = append(sections, m.renderTasks())
	case ViewProfile:
		sections = append(sections, m.renderProfile())
	case ViewSettings:
		sections = append(sections, m.renderSettings())
	}

	if m.status != "" {
		sections = append(sections, "")
		sections = append(sections, ui.DimStyle.Render(m.status))
	}
	if m.confirmReset {
		sections = append(sections, "")
		sections = append(sections, ui.ErrorStyle.Render("Reset today's data? (y/n)"))
	}

	sections = append(sections, "")
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("STUDY TRACKER")

	var welcome string
	if p, ok := m.tracker.Profile(); ok {
		welcome = ui.DimStyle.Render(fmt.Sprintf(" — %s (Class %s)", p.Name, p.Class))
	}

	var tabs []string
	for i, name := range viewNames {
		if View(i) == m.view {
			tabs = append(tabs, ui.TabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, ui.TabStyle.Render(name))
		}
	}

	return title + welcome + "\n" + strings.Join(tabs, ui.DimStyle.Render(" · "))
}

func (m Model) renderTracker() string {
	now := m.now()
	var lines []string

	// Live session card.
	if kind, ok := m.tracker.ActiveKind(); ok {
		elapsed := m.tracker.DisplaySeconds(kind, now)
		lines = append(lines,
			ui.RunningDotStyle.Render("● ")+
				ui.ActiveCardStyle.Render(kind.Label())+"  "+
				ui.TimerStyle.Render(timeutil.Clock(elapsed)))
	} else {
		lines = append(lines, ui.IdleDotStyle.Render("○ ")+ui.DimStyle.Render("No activity running"))
	}
	lines = append(lines,
		ui.DimStyle.Render("Total tracked today  ")+
			ui.TimerStyle.Render(timeutil.Clock(m.tracker.TotalTrackedSeconds(now))))
	lines = append(lines, "")

	// Activity grid.
	active, running := m.tracker.ActiveKind()
	for i, kind := range core.Activities {
		cursor := "  "
		label := kind.Label()
		if i == m.selected {
			cursor = ui.SelectedStyle.Render("> ")
			label = ui.SelectedStyle.Render(label)
		}
		marker := "  "
		if running && kind == active {
			marker = ui.RunningDotStyle.Render(" ●")
		}
		total := timeutil.Clock(m.tracker.DisplaySeconds(kind, now))
		lines = append(lines, fmt.Sprintf("%s%s%s%s",
			cursor, padRight(label, 16), ui.DimStyle.Render(total), marker))
	}
	lines = append(lines, "")

	// Prayer row.
	lines = append(lines, ui.PanelTitleStyle.Render("PRAYERS"))
	today := core.DateKey(now)
	var cells []string
	for i, p := range core.Prayers {
		state := m.tracker.PrayerState(today, p)
		cell := fmt.Sprintf("%d.%s %s", i+1, p.Label(), prayerGlyph(state))
		cells = append(cells, prayerStyle(state).Render(cell))
	}
	lines = append(lines, strings.Join(cells, "  "))

	return strings.Join(lines, "\n")
}

func prayerGlyph(s core.PrayerState) string {
	switch s {
	case core.PrayerCompleted:
		return "✓"
	case core.PrayerActive:
		return "○"
	case core.PrayerMissed:
		return "✗"
	default:
		return "·"
	}
}

func prayerStyle(s core.PrayerState) lipgloss.Style {
	switch s {
	case core.PrayerCompleted:
		return ui.PrayerDoneStyle
	case core.PrayerActive:
		return ui.PrayerActiveStyle
	case core.PrayerMissed:
		return ui.PrayerMissedStyle
	default:
		return ui.PrayerPendingStyle
	}
}

func (m Model) renderDashboard() string {
	now := m.now()
	dates := m.tracker.Dates(now)
	if len(dates) == 0 {
		return ui.DimStyle.Render("  No history yet. Track something first.")
	}
	if m.dateIndex >= len(dates) {
		m.dateIndex = len(dates) - 1
	}
	selected := dates[m.dateIndex]
	rec := m.tracker.Record(selected)

	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render("HISTORY"))
	for i, d := range dates {
		label := d
		if d == core.DateKey(now) {
			label += " (today)"
		}
		if i == m.dateIndex {
			lines = append(lines, ui.SelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}

	lines = append(lines, "")
	lines = append(lines, ui.PanelTitleStyle.Render(selected))
	for _, kind := range core.Activities {
		secs := rec.Activities[kind]
		bar := ""
		if secs > 0 {
			bar = " " + ui.DimStyle.Render(timeutil.Human(secs))
		}
		lines = append(lines, fmt.Sprintf("  %s%s%s",
			padRight(kind.Label(), 16), timeutil.Clock(secs), bar))
	}
	lines = append(lines, fmt.Sprintf("  %s%s",
		padRight("Total", 16), ui.TimerStyle.Render(timeutil.Clock(rec.TotalSeconds()))))

	done := 0
	for _, p := range core.Prayers {
		if rec.Prayers[p] == core.PrayerCompleted {
			done++
		}
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  Prayers completed: %d/%d", done, len(core.Prayers)))

	return strings.Join(lines, "\n")
}

func (m Model) renderTasks() string {
	tasks := m.tracker.Tasks()
	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("TO-DO (%d)", len(tasks))))

	if m.input == inputTask {
		lines = append(lines, ui.SelectedStyle.Render("new: ")+m.buffer+"▌")
	}

	if len(tasks) == 0 && m.input != inputTask {
		lines = append(lines, ui.DimStyle.Render("  No tasks yet. Press 'a' to add one."))
		return strings.Join(lines, "\n")
	}

	for i, task := range tasks {
		box := "[ ]"
		text := task.Text
		if task.Completed {
			box = "[x]"
			text = ui.TaskDoneStyle.Render(text)
		}
		cursor := "  "
		if i == m.taskIndex && m.input == inputNone {
			cursor = ui.SelectedStyle.Render("> ")
		}
		lines = append(lines, cursor+box+" "+text)
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.DimStyle.Render(fmt.Sprintf("%d of %d done", completed, len(tasks))))

	return strings.Join(lines, "\n")
}

func (m Model) renderProfile() string {
	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render("PROFILE"))

	switch m.input {
	case inputProfileName:
		lines = append(lines, "  Name:  "+m.buffer+"▌")
	case inputProfileClass:
		lines = append(lines, "  Name:  "+m.nameBuffer)
		lines = append(lines, "  Class: "+m.buffer+"▌")
	default:
		if p, ok := m.tracker.Profile(); ok {
			lines = append(lines, "  Name:  "+p.Name)
			lines = append(lines, "  Class: "+p.Class)
		} else {
			lines = append(lines, ui.DimStyle.Render("  No profile yet. Press 'e' to create one."))
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSettings() string {
	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render("SETTINGS"))

	state := ui.ErrorStyle.Render("off")
	if m.tracker.NotificationsEnabled() {
		state = ui.RunningDotStyle.Render("on")
	}
	lines = append(lines, "  Notifications: "+state)
	lines = append(lines, "")
	lines = append(lines, ui.DimStyle.Render("  Notifications are best-effort; tracking stays"))
	lines = append(lines, ui.DimStyle.Render("  correct even when none are delivered."))

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	type binding struct{ key, desc string }
	var bindings []binding

	switch {
	case m.input != inputNone:
		bindings = []binding{{"enter", "Save"}, {"esc", "Cancel"}}
	case m.view == ViewTracker:
		bindings = []binding{
			{"j/k", "Select"}, {"Space", "Start/Stop"}, {"1-5", "Prayer"},
			{"f", "Finish day"}, {"r", "Reset"},
		}
	case m.view == ViewDashboard:
		bindings = []binding{{"j/k", "Date"}}
	case m.view == ViewTasks:
		bindings = []binding{
			{"a", "Add"}, {"Space", "Done"}, {"x", "Delete"}, {"j/k", "Select"},
		}
	case m.view == ViewProfile:
		bindings = []binding{{"e", "Edit"}}
	case m.view == ViewSettings:
		bindings = []binding{{"n", "Toggle notifications"}, {"t", "Test"}}
	}
	bindings = append(bindings, binding{"Tab", "View"}, binding{"q", "Quit"})

	var parts []string
	for _, b := range bindings {
		parts = append(parts, ui.FooterKeyStyle.Render(b.key)+ui.FooterDescStyle.Render(" "+b.desc))
	}
	return strings.Join(parts, "  ")
}

// padRight pads s with spaces to the given visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
