package ui

import (
	"fmt"
	"strings"

	"porch/internal/contact"
	"porch/internal/nav"
	"porch/internal/todo"
)

const emptyListText = "No tasks found"

// page accumulates rendered blocks and remembers the line each section
// starts on.
type page struct {
	b        strings.Builder
	lines    int
	sections []nav.Section
}

func (p *page) section(id, title string) {
	p.sections = append(p.sections, nav.Section{ID: id, Title: title, Top: p.lines})
	p.line(sectionStyle.Render(title))
	p.line("")
}

func (p *page) line(s string) {
	p.b.WriteString(s)
	p.b.WriteString("\n")
	p.lines += strings.Count(s, "\n") + 1
}

func (m Model) renderPage() (string, []nav.Section) {
	var p page

	p.section(sectionHome, "Home")
	if m.aboutMD != "" {
		p.line(m.aboutMD)
	}
	p.line("")

	p.section(sectionTodo, "To-Do")
	p.line(m.focusMark(focusTodoInput) + m.todoInput.View())
	p.line("")
	p.line(m.focusMark(focusFilters) + renderFilterBar(m.store.Filter(), m.filterAt, m.focus == focusFilters))
	p.line("")
	p.line(renderTodoRows(m.store.Visible(), m.cursor, m.focus == focusTodoList))
	p.line("")
	p.line(mutedStyle.Render(m.store.RemainingLabel() + " • " + m.keys.ClearCompleted.Help().Key + " clear completed"))
	p.line("")

	p.section(sectionContact, "Contact")
	p.line(m.renderField(focusName, "Name", m.name.View(), contact.FieldName))
	p.line(m.renderField(focusEmail, "Email", m.email.View(), contact.FieldEmail))
	p.line(m.renderField(focusPhone, "Phone", m.phone.View(), contact.FieldPhone))
	p.line(m.renderField(focusMessage, "Message", m.message.View(), contact.FieldMessage))
	p.line(m.focusMark(focusSubmit) + "[ Send ]")

	return strings.TrimRight(p.b.String(), "\n"), p.sections
}

func (m Model) focusMark(f focus) string {
	if m.focus == f {
		return focusMarkStyle.Render("▌ ")
	}
	return "  "
}

// renderField draws a label, the control and the inline error, if any.
func (m Model) renderField(f focus, label, control string, field contact.Field) string {
	var b strings.Builder
	b.WriteString(m.focusMark(f) + label + "\n")
	b.WriteString(indent(control, "  "))
	b.WriteString("\n")
	if msg := m.formCheck.Error(field); msg != "" {
		b.WriteString("  " + errorStyle.Render(msg) + "\n")
	}
	return b.String()
}

func renderFilterBar(active todo.Filter, at int, focused bool) string {
	parts := make([]string, 0, 3)
	for i, f := range todo.Filters() {
		label := filterLabel(f)
		if focused && i == at {
			label = "›" + label
		}
		if f == active {
			parts = append(parts, filterOnStyle.Render(label))
		} else {
			parts = append(parts, filterStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func filterLabel(f todo.Filter) string {
	switch f {
	case todo.FilterActive:
		return "Active"
	case todo.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// renderTodoRows draws one row per visible task, or a single placeholder row
// when nothing matches the filter.
func renderTodoRows(visible []todo.Task, cursor int, focused bool) string {
	if len(visible) == 0 {
		return "  " + mutedStyle.Render(emptyListText)
	}
	cursor = clampCursor(cursor, len(visible))
	var b strings.Builder
	for i, t := range visible {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTodoRow(t, focused && i == cursor))
	}
	return b.String()
}

func renderTodoRow(t todo.Task, selected bool) string {
	checkbox := "[ ]"
	text := t.Text
	if t.Completed {
		checkbox = "[x]"
		text = doneTextStyle.Render(text)
	}
	marker := " "
	if selected {
		marker = ">"
	}
	row := fmt.Sprintf("%s %s %s  %s", marker, checkbox, text, deleteStyle.Render("[delete]"))
	if selected {
		return selectedRowStyle.Render(row)
	}
	return row
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// TaskList renders tasks the way the page does, without a selection.
func TaskList(visible []todo.Task) string {
	return renderTodoRows(visible, -1, false)
}
