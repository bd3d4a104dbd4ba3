package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxKeywordsShown caps the keyword column of the record table.
const maxKeywordsShown = 4

// =============================================================================
// RecordBrowserModel - Paginated record list
// =============================================================================

// RecordBrowserModel is the bubbletea model for paging through records.
type RecordBrowserModel struct {
	Records []feedback.Record
	PerPage int
	Page    int // 1-based
	Cursor  int // index within the current page
	Detail  bool
}

// NewRecordBrowserModel creates a browser starting at page.
func NewRecordBrowserModel(records []feedback.Record, perPage, page int) RecordBrowserModel {
	if perPage <= 0 {
		perPage = aggregate.DefaultPerPage
	}
	m := RecordBrowserModel{Records: records, PerPage: perPage}
	m.Page = m.current(page).Number
	return m
}

func (m RecordBrowserModel) current(page int) aggregate.Page {
	return aggregate.Paginate(m.Records, page, m.PerPage)
}

func (m RecordBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RecordBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	page := m.current(m.Page)
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.Detail {
			m.Detail = false
			return m, nil
		}
		return m, tea.Quit
	case "enter":
		if len(page.Records) > 0 {
			m.Detail = !m.Detail
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(page.Records)-1 {
			m.Cursor++
		}
	case "right", "l", "pgdown", "n":
		if m.Page < page.Pages {
			m.Page++
			m.Cursor = 0
			m.Detail = false
		}
	case "left", "h", "pgup", "p":
		if m.Page > 1 {
			m.Page--
			m.Cursor = 0
			m.Detail = false
		}
	case "home", "g":
		m.Page, m.Cursor, m.Detail = 1, 0, false
	case "end", "G":
		m.Page, m.Cursor, m.Detail = page.Pages, 0, false
	}
	return m, nil
}

// Selected returns the record under the cursor.
func (m RecordBrowserModel) Selected() (feedback.Record, bool) {
	page := m.current(m.Page)
	if m.Cursor < 0 || m.Cursor >= len(page.Records) {
		return feedback.Record{}, false
	}
	return page.Records[m.Cursor], true
}

func (m RecordBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Feedback Records"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ page  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if m.Detail {
		if r, ok := m.Selected(); ok {
			b.WriteString(recordDetail(r))
			b.WriteString("\n")
			b.WriteString(listDimStyle.Render("esc back"))
			return b.String()
		}
	}

	page := m.current(m.Page)
	b.WriteString(recordTable(page, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  page %d/%d · %d records", page.Number, page.Pages, len(m.Records))))
	return b.String()
}

// recordTable renders one page; cursor < 0 highlights nothing.
func recordTable(page aggregate.Page, cursor int) string {
	rows := make([][]string, len(page.Records))
	for i, r := range page.Records {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows[i] = []string{
			marker,
			r.Date,
			strconv.FormatFloat(r.Rating, 'f', -1, 64),
			r.Device,
			strings.Join(r.Categories(), ", "),
			r.Sentiment,
			keywordSummary(r.Keywords),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Date", "Rating", "Device", "Category", "Sentiment", "Keywords").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == cursor {
				return base.Inherit(listSelectedStyle)
			}
			if col == 2 && row < len(page.Records) && page.Records[row].Rating < 3 {
				return base.Inherit(StyleNegative)
			}
			return base.Inherit(listNormalStyle)
		})
	return t.Render()
}

func recordDetail(r feedback.Record) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(12).Render(k))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(v))
		b.WriteString("\n")
	}
	line("Date", r.Date)
	line("Rating", strconv.FormatFloat(r.Rating, 'f', -1, 64))
	line("Device", r.Device)
	line("Category", strings.Join(r.Categories(), ", "))
	line("Sentiment", r.Sentiment)
	line("Keywords", strings.Join(r.Keywords, ", "))
	return b.String()
}

func keywordSummary(keywords []string) string {
	if len(keywords) <= maxKeywordsShown {
		return strings.Join(keywords, ", ")
	}
	return strings.Join(keywords[:maxKeywordsShown], ", ") + fmt.Sprintf(" +%d", len(keywords)-maxKeywordsShown)
}
