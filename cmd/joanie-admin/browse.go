package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openfun/joanie-sub003/internal/i18n"
	"github.com/openfun/joanie-sub003/internal/listing"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

func newBrowseCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <resource>",
		Short: "Browse a resource interactively",
		Long: "Browse a resource in an interactive table with live search, filters and pagination.\n\n" +
			"Keys: / focus search, esc leave search, ←/→ page, x clear filters, r refresh, q quit.\n" +
			"Resources: " + strings.Join(resourceNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bind, ok := bindings[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (expected one of: %s)", args[0], strings.Join(resourceNames(), ", "))
			}

			container, err := buildContainer(flags)
			if err != nil {
				return err
			}
			defer container.Close()

			notifier := &programNotifier{}
			coordinator := listing.New(bind.source(container), listing.Options{
				PageSize: container.Config.PageSize,
				Debounce: container.Config.SearchDebounce,
				Language: container.Config.Language,
				Logger:   container.Logger,
				OnUpdate: notifier.Notify,
				Context:  cmd.Context(),
			})
			defer coordinator.Close()

			model := newBrowseModel(bind, coordinator, container.Translator)
			program := tea.NewProgram(model, tea.WithAltScreen())
			notifier.Bind(program)

			_, err = program.Run()
			return err
		},
	}
	return cmd
}

// snapshotMsg tells the UI the coordinator has new state to render.
type snapshotMsg struct{}

// programNotifier forwards coordinator updates into the bubbletea
// program. The coordinator starts fetching before the program runs, so
// notifications arriving early are replayed once the program is bound.
type programNotifier struct {
	mu      sync.Mutex
	program *tea.Program
	pending bool
}

func (n *programNotifier) Notify() {
	n.mu.Lock()
	program := n.program
	if program == nil {
		n.pending = true
	}
	n.mu.Unlock()

	if program != nil {
		go program.Send(snapshotMsg{})
	}
}

func (n *programNotifier) Bind(program *tea.Program) {
	n.mu.Lock()
	n.program = program
	replay := n.pending
	n.pending = false
	n.mu.Unlock()

	if replay {
		go program.Send(snapshotMsg{})
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1)
	chipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

type browseModel struct {
	bind        binding
	coordinator *listing.Coordinator[row]
	translator  i18n.Translator

	table         table.Model
	search        textinput.Model
	searchFocused bool

	snapshot listing.Snapshot[row]
}

func newBrowseModel(bind binding, coordinator *listing.Coordinator[row], translator i18n.Translator) browseModel {
	t := table.New(
		table.WithColumns(bind.columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	search := textinput.New()
	search.Placeholder = "Search " + bind.name + "..."
	search.CharLimit = 100
	search.Width = 40

	return browseModel{
		bind:        bind,
		coordinator: coordinator,
		translator:  translator,
		table:       t,
		search:      search,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = m.coordinator.Snapshot()
		rows := make([]table.Row, 0, len(m.snapshot.Rows))
		for _, r := range m.snapshot.Rows {
			rows = append(rows, table.Row(r.cells))
		}
		m.table.SetRows(rows)
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(msg.Height - 7)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "/":
			if !m.searchFocused {
				m.searchFocused = true
				m.search.Focus()
				return m, nil
			}
		case "esc":
			if m.searchFocused {
				m.searchFocused = false
				m.search.Blur()
				return m, nil
			}
		case "enter":
			if m.searchFocused {
				m.searchFocused = false
				m.search.Blur()
				m.coordinator.SearchSubmitted(m.search.Value())
				return m, nil
			}
		}

		if !m.searchFocused {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "left", "h":
				if m.snapshot.Page > 0 {
					m.coordinator.PageChanged(m.snapshot.Page-1, m.snapshot.PageSize)
				}
				return m, nil
			case "right", "l":
				if (m.snapshot.Page+1)*m.snapshot.PageSize < m.snapshot.RowCount {
					m.coordinator.PageChanged(m.snapshot.Page+1, m.snapshot.PageSize)
				}
				return m, nil
			case "x":
				m.coordinator.ClearFilters()
				return m, nil
			case "r":
				m.coordinator.Refresh()
				return m, nil
			}
		}
	}

	if m.searchFocused {
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		if m.search.Value() != before {
			m.coordinator.SearchChanged(m.search.Value())
		}
	} else {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Joanie admin — " + m.bind.name))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m browseModel) statusLine() string {
	snap := m.snapshot

	totalPages := 1
	if snap.PageSize > 0 && snap.RowCount > 0 {
		totalPages = (snap.RowCount + snap.PageSize - 1) / snap.PageSize
	}
	status := fmt.Sprintf("page %d/%d · %d %s", snap.Page+1, totalPages, snap.RowCount, m.bind.name)
	if snap.Loading {
		status += " · loading"
	}
	if len(snap.Chips) > 0 {
		labels := make([]string, 0, len(snap.Chips))
		for _, chip := range snap.Chips {
			labels = append(labels, chip.Label+": "+chip.Value)
		}
		status += " · " + chipStyle.Render(strings.Join(labels, ", "))
	}

	line := statusStyle.Render(status)
	if snap.Err != nil {
		line += "\n" + errorStyle.Render(apperror.Localize(m.translator, snap.Err))
	}
	return line
}
