package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/manifest"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command: an interactive browser over a
// validated tree's declared entries.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Browse a validated dependency tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			tree, err := b.Build()
			if err != nil {
				return err
			}

			model := newTreeModel(tree)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// treeModel is the bubbletea model for browsing tree entries.
// The left pane lists declared keys; the detail pane shows direct and
// transitive dependencies plus dependents for the selected key.
type treeModel struct {
	tree   *deptree.Tree[string]
	keys   []string
	cursor int
	offset int
	height int
}

func newTreeModel(tree *deptree.Tree[string]) treeModel {
	return treeModel{
		tree:   tree,
		keys:   tree.Keys(),
		height: 15,
	}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.keys)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "home", "g":
			m.cursor, m.offset = 0, 0
		case "end", "G":
			m.cursor = len(m.keys) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		if msg.Height > 8 {
			m.height = msg.Height - 8
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	if len(m.keys) == 0 {
		return listDimStyle.Render("empty tree") + "\n\n" + m.footer()
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("Dependency tree"))
	sb.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.keys))
	for i := m.offset; i < end; i++ {
		key := m.keys[i]
		deps, _ := m.tree.Deps(key)
		line := fmt.Sprintf("%s %s", key, listDimStyle.Render(fmt.Sprintf("(%d deps)", len(deps))))
		if i == m.cursor {
			sb.WriteString(listSelectedStyle.Render("› " + line))
		} else {
			sb.WriteString(listNormalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.detail(m.keys[m.cursor]))
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

// detail renders the dependency summary for the selected key.
func (m treeModel) detail(key string) string {
	direct, _ := m.tree.Deps(key)
	transitive := m.tree.DependenciesOf(key)
	dependents := m.tree.DependentsOf(key)

	var sb strings.Builder
	sb.WriteString(StyleHighlight.Render(key))
	sb.WriteString("\n")
	sb.WriteString(listDimStyle.Render("direct:     ") + joinOrNone(direct) + "\n")
	sb.WriteString(listDimStyle.Render("transitive: ") + joinOrNone(transitive) + "\n")
	sb.WriteString(listDimStyle.Render("dependents: ") + joinOrNone(dependents))
	return sb.String()
}

func (m treeModel) footer() string {
	return listDimStyle.Render("↑/↓ move · g/G jump · q quit")
}
