package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sushgiri-7/pdf-editor/editor"
	"github.com/sushgiri-7/pdf-editor/interact"
	"github.com/sushgiri-7/pdf-editor/session"
)

const dragStep = 5.0

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptImage
	promptEditText
	promptExport
)

type keyMap struct {
	Open     key.Binding
	AddText  key.Binding
	AddCheck key.Binding
	AddImage key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Drag     key.Binding
	Cursor   key.Binding
	Page     key.Binding
	Save     key.Binding
	Load     key.Binding
	Export   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open pdf")),
		AddText:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add text")),
		AddCheck: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add checkbox")),
		AddImage: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add image")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Drag:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows", "drag item")),
		Cursor:   key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "select item")),
		Page:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next page")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
		Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.AddText, k.AddCheck, k.Toggle, k.Drag, k.Save, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.AddText, k.AddCheck, k.AddImage, k.Edit},
		{k.Toggle, k.Drag, k.Cursor, k.Page},
		{k.Save, k.Load, k.Export, k.Quit},
	}
}

type model struct {
	ed    *editor.Editor
	drags *keyDrags

	keys   keyMap
	help   help.Model
	ti     textinput.Model
	prompt promptKind

	cursor int
	page   int
	status string
	fail   string
}

func newModel(ed *editor.Editor, drags *keyDrags) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 512
	return model{
		ed:    ed,
		drags: drags,
		keys:  defaultKeyMap(),
		help:  help.New(),
		ti:    ti,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) items() []session.Item { return m.ed.Session().Items() }

func (m model) selected() (session.Item, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil, false
	}
	return items[m.cursor], true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(promptOpen, "path to pdf", ""), nil
	case key.Matches(msg, m.keys.AddText):
		item := m.ed.AddText(m.page)
		m.status = fmt.Sprintf("text #%d added on page %d", item.ID, m.page)
	case key.Matches(msg, m.keys.AddCheck):
		item := m.ed.AddCheckbox(m.page)
		m.status = fmt.Sprintf("checkbox #%d added on page %d", item.ID, m.page)
	case key.Matches(msg, m.keys.AddImage):
		return m.openPrompt(promptImage, "path to image", ""), nil
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selected(); ok && item.ItemKind() == session.KindText {
			t := item.(*session.TextItem)
			return m.openPrompt(promptEditText, "text", t.Text), nil
		}
		m.fail = "select a text item first"
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok && item.ItemKind() == session.KindCheckbox {
			c := item.(*session.CheckboxItem)
			m.ed.SetChecked(c.ID, !c.Checked)
			m.status = fmt.Sprintf("checkbox #%d toggled", c.ID)
		}
	case key.Matches(msg, m.keys.Drag):
		m.dragSelected(msg.String())
	case key.Matches(msg, m.keys.Cursor):
		if msg.String() == "j" {
			m.cursor++
		} else {
			m.cursor--
		}
		m.cursor = clamp(m.cursor, 0, len(m.items())-1)
	case key.Matches(msg, m.keys.Page):
		if n := m.ed.Session().Pages.Len(); n > 0 {
			m.page = (m.page + 1) % n
		}
	case key.Matches(msg, m.keys.Save):
		if err := m.ed.Save(); err != nil {
			m.fail = err.Error()
		} else {
			m.status = "session saved"
			m.fail = ""
		}
	case key.Matches(msg, m.keys.Load):
		if err := m.ed.Load(context.Background()); err != nil {
			m.fail = "nothing to restore: " + err.Error()
		} else {
			m.status = "session restored"
			m.fail = ""
		}
	case key.Matches(msg, m.keys.Export):
		return m.openPrompt(promptExport, "output path", "edited.pdf"), nil
	}
	return m, nil
}

func (m *model) dragSelected(dir string) {
	item, ok := m.selected()
	if !ok {
		return
	}
	var motion interact.Motion
	switch dir {
	case "up":
		motion.DY = -dragStep
	case "down":
		motion.DY = dragStep
	case "left":
		motion.DX = -dragStep
	case "right":
		motion.DX = dragStep
	}
	if el, ok := m.ed.Binder().Element(item.ItemKind(), item.ItemID()); ok {
		m.drags.Emit(el, motion)
	}
}

func (m model) openPrompt(kind promptKind, placeholder, value string) model {
	m.prompt = kind
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Focus()
	m.fail = ""
	return m
}

func (m model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			kind := m.prompt
			value := strings.TrimSpace(m.ti.Value())
			m = m.closePrompt()
			return m.submitPrompt(kind, value), nil
		case "esc":
			return m.closePrompt(), nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m model) closePrompt() model {
	m.prompt = promptNone
	m.ti.Blur()
	m.ti.SetValue("")
	return m
}

func (m model) submitPrompt(kind promptKind, value string) model {
	if value == "" {
		m.fail = "empty input"
		return m
	}
	switch kind {
	case promptOpen:
		data, err := os.ReadFile(value)
		if err != nil {
			m.fail = err.Error()
			return m
		}
		if err := m.ed.LoadDocument(context.Background(), data, false); err != nil {
			m.fail = err.Error()
			return m
		}
		m.page = 0
		m.status = fmt.Sprintf("loaded %s (%d pages)", filepath.Base(value), m.ed.Session().Pages.Len())
	case promptImage:
		data, err := os.ReadFile(value)
		if err != nil {
			m.fail = err.Error()
			return m
		}
		item := m.ed.AddImage(m.page, data)
		m.status = fmt.Sprintf("image #%d added on page %d", item.ID, m.page)
	case promptEditText:
		if item, ok := m.selected(); ok && item.ItemKind() == session.KindText {
			m.ed.UpdateText(item.ItemID(), value)
			m.status = fmt.Sprintf("text #%d updated", item.ItemID())
		}
	case promptExport:
		f, err := os.Create(value)
		if err != nil {
			m.fail = err.Error()
			return m
		}
		err = m.ed.Export(context.Background(), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			m.fail = err.Error()
			return m
		}
		m.status = "exported to " + value
	}
	m.fail = ""
	return m
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m model) View() string {
	var b strings.Builder

	sess := m.ed.Session()
	title := "pdf-editor"
	if sess.HasDocument() {
		title += fmt.Sprintf("  %d pages  page %d", sess.Pages.Len(), m.page)
	} else {
		title += "  no document (press o to open)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("  no items"))
		b.WriteString("\n")
	}
	for i, item := range items {
		prefix := "  "
		line := describeItem(item)
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}
	b.WriteString("\n")

	if m.fail != "" {
		b.WriteString(errorStyle.Render(m.fail))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.prompt != promptNone {
		b.WriteString(promptStyle.Render(m.ti.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func describeItem(item session.Item) string {
	x, y := item.At()
	switch it := item.(type) {
	case *session.TextItem:
		return fmt.Sprintf("[text #%d] page %d (%.0f,%.0f) %q", it.ID, it.PageIndex, x, y, it.Text)
	case *session.CheckboxItem:
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		return fmt.Sprintf("[checkbox #%d] page %d (%.0f,%.0f) %s", it.ID, it.PageIndex, x, y, box)
	case *session.ImageItem:
		return fmt.Sprintf("[image #%d] page %d (%.0f,%.0f) %.0fx%.0f", it.ID, it.PageIndex, x, y, it.Width, it.Height)
	default:
		return fmt.Sprintf("[%s #%d] (%.0f,%.0f)", item.ItemKind(), item.ItemID(), x, y)
	}
}

func runTUI(ed *editor.Editor, drags *keyDrags) error {
	p := tea.NewProgram(newModel(ed, drags), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
