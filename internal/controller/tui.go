package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"emend.dev/pkg/emend/internal/domain"
	m "emend.dev/pkg/emend/internal/model"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	locationStyle  = lipgloss.NewStyle().Faint(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Faint(true)
)

type tuiMode int

const (
	modeBrowse tuiMode = iota
	modeFilter
	modeReplace
)

// RunTUI starts the interactive word-list browser over an already-scanned
// session: frequency-ranked words on the left, occurrences of the
// selected word on the right, with filtering and in-place correction.
func RunTUI(session *domain.Session, output *os.File) error {
	model := newWordListModel(session)

	if width, height, err := term.GetSize(int(output.Fd())); err == nil {
		model.width = width
		model.height = height
	}

	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// correctionDoneMsg reports a finished correction batch back to the
// update loop.
type correctionDoneMsg struct {
	word        string
	replacement string
	results     []m.CorrectionResult
	err         error
}

// wordListModel is the Bubble Tea model for the word-list browser.
type wordListModel struct {
	session *domain.Session

	rows        []domain.FrequencyRow
	occurrences []m.Occurrence
	selected    string

	filter  textinput.Model
	replace textinput.Model
	mode    tuiMode

	cursor   int
	offset   int
	width    int
	height   int
	status   string
	quitting bool
}

func newWordListModel(session *domain.Session) wordListModel {
	filter := textinput.New()
	filter.Placeholder = "filter word list"
	filter.CharLimit = 64

	replace := textinput.New()
	replace.CharLimit = 128

	return wordListModel{
		session: session,
		rows:    session.Frequencies(""),
		filter:  filter,
		replace: replace,
	}
}

func (wm wordListModel) Init() tea.Cmd {
	return nil
}

func (wm wordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		wm.width = msg.Width
		wm.height = msg.Height

		return wm, nil

	case correctionDoneMsg:
		return wm.finishCorrection(msg), nil

	case tea.KeyMsg:
		switch wm.mode {
		case modeFilter:
			return wm.handleFilterKey(msg)
		case modeReplace:
			return wm.handleReplaceKey(msg)
		default:
			return wm.handleBrowseKey(msg)
		}
	}

	return wm, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (wm wordListModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		wm.quitting = true
		return wm, tea.Quit

	case "down", "j":
		wm.cursor++

	case "up", "k":
		wm.cursor--

	case "pgdown", "d":
		wm.cursor += wm.itemsPerPage()

	case "pgup", "u":
		wm.cursor -= wm.itemsPerPage()

	case "g", "home":
		wm.cursor = 0

	case "G", "end":
		wm.cursor = len(wm.rows) - 1

	case "enter", " ":
		wm.selectCurrent()

	case "/":
		wm.mode = modeFilter
		return wm, wm.filter.Focus()

	case "c":
		if wm.selected == "" {
			wm.status = "select a word first (enter)"
			return wm, nil
		}

		wm.mode = modeReplace
		wm.replace.SetValue(wm.selected)
		wm.replace.CursorEnd()

		return wm, wm.replace.Focus()
	}

	wm.clampCursor()

	return wm, nil
}

func (wm wordListModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		wm.mode = modeBrowse
		wm.filter.Blur()
		wm.filter.SetValue("")
		wm.refreshRows()

		return wm, nil

	case "enter":
		wm.mode = modeBrowse
		wm.filter.Blur()

		return wm, nil
	}

	var cmd tea.Cmd
	wm.filter, cmd = wm.filter.Update(msg)

	// Live filtering, the way the original app filtered its word table.
	wm.refreshRows()
	wm.clampCursor()

	return wm, cmd
}

func (wm wordListModel) handleReplaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		wm.mode = modeBrowse
		wm.replace.Blur()

		return wm, nil

	case "enter":
		word := wm.selected
		replacement := strings.TrimSpace(wm.replace.Value())

		wm.mode = modeBrowse
		wm.replace.Blur()

		if replacement == "" || replacement == word {
			wm.status = "correction cancelled"
			return wm, nil
		}

		wm.status = fmt.Sprintf("correcting %q -> %q ...", word, replacement)
		session := wm.session

		return wm, func() tea.Msg {
			results, err := session.Correct(context.Background(), word, replacement)

			return correctionDoneMsg{
				word:        word,
				replacement: replacement,
				results:     results,
				err:         err,
			}
		}
	}

	var cmd tea.Cmd
	wm.replace, cmd = wm.replace.Update(msg)

	return wm, cmd
}

func (wm wordListModel) finishCorrection(msg correctionDoneMsg) wordListModel {
	if msg.err != nil {
		wm.status = fmt.Sprintf("correction failed: %v", msg.err)
		return wm
	}

	replaced := 0
	failures := 0

	for _, result := range msg.results {
		replaced += result.Replaced

		if result.Err != nil {
			failures++
		}
	}

	wm.status = fmt.Sprintf("replaced %d occurrence(s) of %q in %d file(s), %d failure(s)",
		replaced, msg.word, len(msg.results), failures)

	wm.refreshRows()
	wm.clampCursor()

	// Follow the corrected word so its new occurrences are on screen.
	wm.selected = msg.replacement
	if occs, err := wm.session.Occurrences(msg.replacement); err == nil {
		wm.occurrences = occs
	} else {
		wm.occurrences = nil
	}

	return wm
}

func (wm *wordListModel) refreshRows() {
	wm.rows = wm.session.Frequencies(wm.filter.Value())
}

func (wm *wordListModel) selectCurrent() {
	if wm.cursor < 0 || wm.cursor >= len(wm.rows) {
		return
	}

	word := wm.rows[wm.cursor].Word

	occs, err := wm.session.Occurrences(word)
	if err != nil {
		wm.status = err.Error()
		return
	}

	wm.selected = word
	wm.occurrences = occs
	wm.status = fmt.Sprintf("%s: %d occurrence(s)", word, len(occs))
}

func (wm *wordListModel) clampCursor() {
	if wm.cursor >= len(wm.rows) {
		wm.cursor = len(wm.rows) - 1
	}

	if wm.cursor < 0 {
		wm.cursor = 0
	}

	perPage := wm.itemsPerPage()

	if wm.cursor < wm.offset {
		wm.offset = wm.cursor
	}

	if wm.cursor >= wm.offset+perPage {
		wm.offset = wm.cursor - perPage + 1
	}

	if wm.offset < 0 {
		wm.offset = 0
	}
}

// itemsPerPage calculates how many list rows fit on screen after the
// title, input, help, and status lines are reserved.
func (wm wordListModel) itemsPerPage() int {
	if wm.height == 0 {
		return 20 // Default before the first WindowSizeMsg
	}

	available := wm.height - 6
	if available < 1 {
		return 1
	}

	return available
}

func (wm wordListModel) View() string {
	if wm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("emend — USFM word list"))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, wm.renderWordPane(), wm.renderOccurrencePane()))
	b.WriteString("\n")

	b.WriteString(wm.renderInputLine())
	b.WriteString(statusStyle.Render(wm.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("↑/k ↓/j: move | enter: occurrences | /: filter | c: correct | q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (wm wordListModel) renderWordPane() string {
	width := wm.paneWidth()
	perPage := wm.itemsPerPage()

	var b strings.Builder

	end := wm.offset + perPage
	if end > len(wm.rows) {
		end = len(wm.rows)
	}

	for i := wm.offset; i < end; i++ {
		row := wm.rows[i]
		line := fmt.Sprintf(" %-*s %6d ", width-10, truncate(row.Word, width-10), row.Count)

		if i == wm.cursor {
			line = selectedStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(wm.rows) == 0 {
		b.WriteString(statusStyle.Render(" no words "))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Height(perPage).Render(b.String())
}

func (wm wordListModel) renderOccurrencePane() string {
	width := wm.width - wm.paneWidth() - 1
	if width < 20 {
		width = 20
	}

	perPage := wm.itemsPerPage()

	var b strings.Builder

	if wm.selected == "" {
		b.WriteString(statusStyle.Render(" select a word to see its occurrences "))
	}

	// Two lines per occurrence: location, then context.
	shown := 0
	for _, occ := range wm.occurrences {
		if shown+2 > perPage {
			b.WriteString(statusStyle.Render(fmt.Sprintf(" ... %d more", len(wm.occurrences)-shown/2)))
			break
		}

		location := fmt.Sprintf("%s:%d", occ.File, occ.Line)
		context := strings.ReplaceAll(occ.Context, wm.selected, highlightStyle.Render(wm.selected))

		b.WriteString(locationStyle.Render(truncate(location, width-1)))
		b.WriteString("\n ")
		b.WriteString(truncate(context, width-2))
		b.WriteString("\n")

		shown += 2
	}

	return lipgloss.NewStyle().Width(width).Height(perPage).Render(b.String())
}

func (wm wordListModel) renderInputLine() string {
	switch wm.mode {
	case modeFilter:
		return "Filter: " + wm.filter.View() + "\n"
	case modeReplace:
		return fmt.Sprintf("Replace %q with: %s\n", wm.selected, wm.replace.View())
	default:
		if wm.filter.Value() != "" {
			return statusStyle.Render("Filter: "+wm.filter.Value()) + "\n"
		}

		return "\n"
	}
}

func (wm wordListModel) paneWidth() int {
	if wm.width == 0 {
		return 32
	}

	width := wm.width / 3
	if width < 24 {
		width = 24
	}

	return width
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}
