package ui

import (
	_ "embed"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"porch/internal/config"
	"porch/internal/contact"
	"porch/internal/nav"
	"porch/internal/todo"
)

//go:embed about.md
var DefaultAbout string

type focus int

const (
	focusTodoInput focus = iota
	focusTodoList
	focusFilters
	focusName
	focusEmail
	focusPhone
	focusMessage
	focusSubmit
	focusCount
)

func (f focus) section() string {
	if f >= focusName {
		return sectionContact
	}
	return sectionTodo
}

const (
	sectionHome    = "home"
	sectionTodo    = "todo"
	sectionContact = "contact"

	defaultWidth  = 80
	defaultHeight = 24
	chromeLines   = 5
	frameInterval = 16 * time.Millisecond
)

type scrollTickMsg struct {
	seq int
}

type Model struct {
	store    *todo.Store
	log      *slog.Logger
	keys     keyMap
	about    string
	aboutMD  string
	focus    focus
	cursor   int
	filterAt int

	todoInput textinput.Model
	name      textinput.Model
	email     textinput.Model
	phone     textinput.Model
	message   textarea.Model
	formCheck contact.Result

	viewport viewport.Model
	scroller *nav.Scroller
	anim     *nav.Animation
	animSeq  int
	width    int
	height   int
	status   string
}

// Run starts the interactive page. about is markdown shown in the home
// section; empty uses the built-in text.
func Run(store *todo.Store, cfg config.Config, logger *slog.Logger, about string) error {
	m := New(store, cfg, logger, about)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func New(store *todo.Store, cfg config.Config, logger *slog.Logger, about string) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(about) == "" {
		about = DefaultAbout
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:     store,
		log:       logger.With("component", "ui"),
		keys:      newKeyMap(cfg.Keys),
		about:     about,
		todoInput: ti,
		name:      newField("Your name", 80),
		email:     newField("you@example.com", 120),
		phone:     newField("(555) 123-4567 (optional)", 32),
		message:   newMessageArea(),
		viewport:  viewport.New(defaultWidth, defaultHeight-chromeLines),
		scroller:  nav.NewScroller(cfg.HeaderOffset),
		width:     defaultWidth,
		height:    defaultHeight,
		status:    "tab to move • enter to add a task",
	}
	for i, f := range todo.Filters() {
		if f == store.Filter() {
			m.filterAt = i
		}
	}
	m.todoInput.Focus()
	m.aboutMD = renderMarkdown(about, m.width-4)
	m.refresh()
	return m
}

func newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func newMessageArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Your message"
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(4)
	return ta
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case scrollTickMsg:
		return m.stepScroll(msg)
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		next.refresh()
		return next, cmd
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = w
	m.viewport.Height = max(3, h-chromeLines)
	m.todoInput.Width = max(10, w-10)
	m.message.SetWidth(max(20, min(w-4, 72)))
	m.aboutMD = renderMarkdown(m.about, w-4)
	m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.GotoHome):
		cmd := m.scrollTo("#" + sectionHome)
		return m, cmd
	case key.Matches(msg, m.keys.GotoTodo):
		cmd := m.scrollTo("#" + sectionTodo)
		return m, cmd
	case key.Matches(msg, m.keys.GotoContact):
		cmd := m.scrollTo("#" + sectionContact)
		return m, cmd
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		m.anim = nil
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case focusTodoInput:
		return m.updateTodoInput(msg)
	case focusTodoList:
		return m.updateTodoList(msg)
	case focusFilters:
		return m.updateFilters(msg)
	case focusName, focusEmail, focusPhone, focusMessage, focusSubmit:
		return m.updateContact(msg)
	}
	return m, nil
}

// setFocus moves keyboard focus and scrolls to the focused control's section
// when it changes.
func (m Model) setFocus(f focus) (Model, tea.Cmd) {
	prev := m.focus
	m.focus = f
	m.todoInput.Blur()
	m.name.Blur()
	m.email.Blur()
	m.phone.Blur()
	m.message.Blur()

	var cmd tea.Cmd
	switch f {
	case focusTodoInput:
		cmd = m.todoInput.Focus()
	case focusName:
		cmd = m.name.Focus()
	case focusEmail:
		cmd = m.email.Focus()
	case focusPhone:
		cmd = m.phone.Focus()
	case focusMessage:
		cmd = m.message.Focus()
	}
	if prev.section() != f.section() {
		m.refresh()
		scroll := m.scrollTo("#" + f.section())
		return m, tea.Batch(cmd, scroll)
	}
	return m, cmd
}

func (m Model) updateTodoInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		if m.store.Add(m.todoInput.Value()) {
			m.todoInput.SetValue("")
			m.status = "Added task"
			m.log.Debug("task added", "count", len(m.store.Tasks()))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.todoInput, cmd = m.todoInput.Update(msg)
	return m, cmd
}

func (m Model) updateTodoList(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.store.Visible()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Toggle):
		if len(visible) == 0 {
			return m, nil
		}
		m.store.Toggle(visible[clampCursor(m.cursor, len(visible))].ID)
		m.status = "Toggled task"
	case key.Matches(msg, m.keys.Delete):
		if len(visible) == 0 {
			return m, nil
		}
		m.store.Delete(visible[clampCursor(m.cursor, len(visible))].ID)
		m.status = "Deleted task"
	case key.Matches(msg, m.keys.ClearCompleted):
		m.store.ClearCompleted()
		m.status = "Cleared completed tasks"
	default:
		return m.applyFilterKey(msg)
	}
	m.cursor = clampCursor(m.cursor, len(m.store.Visible()))
	return m, nil
}

func (m Model) updateFilters(msg tea.KeyMsg) (Model, tea.Cmd) {
	filters := todo.Filters()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.filterAt = (m.filterAt + len(filters) - 1) % len(filters)
	case key.Matches(msg, m.keys.Right):
		m.filterAt = (m.filterAt + 1) % len(filters)
	case key.Matches(msg, m.keys.Confirm, m.keys.Toggle):
		m.setFilter(filters[m.filterAt])
	case key.Matches(msg, m.keys.ClearCompleted):
		m.store.ClearCompleted()
		m.status = "Cleared completed tasks"
		m.cursor = clampCursor(m.cursor, len(m.store.Visible()))
	default:
		return m.applyFilterKey(msg)
	}
	return m, nil
}

func (m Model) applyFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(todo.FilterCompleted)
	}
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	m.store.SetFilter(f)
	for i, v := range todo.Filters() {
		if v == f {
			m.filterAt = i
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.store.Visible()))
	m.status = "Showing " + f.String() + " tasks"
}

func (m Model) updateContact(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		return m.submitContact(), nil
	}
	var cmd tea.Cmd
	switch m.focus {
	case focusName, focusEmail, focusPhone:
		if key.Matches(msg, m.keys.Confirm) {
			return m.setFocus(m.focus + 1)
		}
		field := m.contactInput(m.focus)
		*field, cmd = field.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	case focusSubmit:
		if key.Matches(msg, m.keys.Confirm) {
			return m.submitContact(), nil
		}
	}
	return m, cmd
}

func (m *Model) contactInput(f focus) *textinput.Model {
	switch f {
	case focusName:
		return &m.name
	case focusEmail:
		return &m.email
	default:
		return &m.phone
	}
}

func (m Model) contactForm() contact.Form {
	return contact.Form{
		Name:    m.name.Value(),
		Email:   m.email.Value(),
		Phone:   m.phone.Value(),
		Message: m.message.Value(),
	}
}

// submitContact replaces the previous inline errors with a fresh check. Only
// a fully valid form is cleared.
func (m Model) submitContact() Model {
	m.formCheck = contact.Validate(m.contactForm())
	if !m.formCheck.Valid() {
		m.status = "Please fix the highlighted fields"
		m.log.Debug("contact form rejected", "errors", len(m.formCheck.Errors()))
		return m
	}
	m.log.Info("contact form submitted")
	m.status = contact.MsgSubmitted
	m.name.SetValue("")
	m.email.SetValue("")
	m.phone.SetValue("")
	m.message.Reset()
	return m
}

func (m *Model) scrollTo(fragment string) tea.Cmd {
	target, ok := m.scroller.Target(fragment)
	if !ok {
		return nil
	}
	target = min(target, m.maxOffset())
	m.animSeq++
	m.anim = nav.NewAnimation(m.viewport.YOffset, target, nav.DefaultFrames)
	seq := m.animSeq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{seq: seq}
	})
}

func (m Model) stepScroll(msg scrollTickMsg) (tea.Model, tea.Cmd) {
	if m.anim == nil || msg.seq != m.animSeq {
		return m, nil
	}
	m.viewport.SetYOffset(m.anim.Step())
	if m.anim.Done() {
		m.anim = nil
		return m, nil
	}
	seq := msg.seq
	return m, tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{seq: seq}
	})
}

func (m Model) maxOffset() int {
	return max(0, m.viewport.TotalLineCount()-m.viewport.Height)
}

// refresh re-renders the page into the viewport and records where each
// section starts.
func (m *Model) refresh() {
	content, sections := m.renderPage()
	offset := m.viewport.YOffset
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(offset)
	m.scroller.SetSections(sections)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNavBar())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.renderHelp()))
	return b.String()
}

func (m Model) renderNavBar() string {
	current := m.scroller.Current(m.viewport.YOffset)
	parts := []string{titleStyle.Render("porch")}
	for _, sec := range m.scroller.Sections() {
		label := " " + sec.Title + " "
		if sec.ID == current {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, navStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderHelp() string {
	k := m.keys
	switch m.focus {
	case focusTodoList:
		return helpLine(k.Up, k.Down, k.Toggle, k.Delete, k.ClearCompleted, k.FilterAll, k.FilterActive, k.FilterDone, k.NextFocus, k.Quit)
	case focusFilters:
		return helpLine(k.Left, k.Right, k.Confirm, k.ClearCompleted, k.NextFocus, k.Quit)
	case focusName, focusEmail, focusPhone, focusMessage, focusSubmit:
		return helpLine(k.NextFocus, k.PrevFocus, k.Submit, k.GotoHome, k.GotoTodo, k.GotoContact, k.Quit)
	default:
		return helpLine(k.Confirm, k.NextFocus, k.GotoHome, k.GotoTodo, k.GotoContact, k.Quit)
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
