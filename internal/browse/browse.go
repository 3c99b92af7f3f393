package browse

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mozjobs/mojo/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(12)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

type browseModel struct {
	offers   []model.JobOffer
	cursor   int
	view     viewState
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.view == viewDetail {
			m.viewport.Width = m.width - 4
			m.viewport.Height = m.height - 6
			m.viewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}
	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.offers)-1 {
			m.cursor++
		}
	case "enter":
		m.view = viewDetail
		m.viewport = viewport.New(m.width-4, m.height-6)
		m.viewport.SetContent(m.renderDetail())
	}
	return m, nil
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if !m.ready {
		return ""
	}
	if m.view == viewDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m browseModel) listView() string {
	s := titleStyle.Render(fmt.Sprintf("Stored offers (%d)", len(m.offers)))
	s += "\n"

	for i, o := range m.offers {
		meta := subtitleStyle.Render(fmt.Sprintf("— %s, %s", o.Team, o.Location))
		if i == m.cursor {
			s += selectedStyle.Render("> "+o.Title) + " " + meta + "\n"
		} else {
			s += itemStyle.Render(o.Title) + " " + meta + "\n"
		}
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter open  q quit")
	return s
}

func (m browseModel) detailView() string {
	offer := m.offers[m.cursor]
	s := titleStyle.Render(offer.Title) + "\n"
	s += m.viewport.View() + "\n"
	s += hintStyle.Render("↑/↓ scroll  esc back  q quit")
	return s
}

func (m browseModel) renderDetail() string {
	offer := m.offers[m.cursor]

	row := func(label, value string) string {
		return labelStyle.Render(label) + value + "\n"
	}

	s := row("TEAM", offer.Team)
	s += row("LOCATION", offer.Location)
	s += row("POSITION", offer.Position)
	s += row("LINK", offer.Link)
	s += dividerStyle.Render("────────────────────────────────") + "\n"

	desc := offer.Description
	if desc == "" {
		desc = "(no description stored)"
	}
	width := m.width - 6
	if width < 20 {
		width = 20
	}
	s += bodyStyle.Width(width).Render(desc)
	return s
}

// Run shows the stored offers in an interactive list with a description
// view. It blocks until the user quits.
func Run(offers []model.JobOffer) error {
	if len(offers) == 0 {
		return fmt.Errorf("store is empty, nothing to browse")
	}
	p := tea.NewProgram(browseModel{offers: offers}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
