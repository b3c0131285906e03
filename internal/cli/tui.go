package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/layout"
	"github.com/matzehuels/planforge/pkg/pipeline"
	"github.com/matzehuels/planforge/pkg/render/plan"
)

// resizeStep is the change applied by one key press, in plan units.
const resizeStep = 1.0

var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle   = lipgloss.NewStyle().Foreground(colorGray)
	savedStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	selectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Padding(0, 1)
)

// =============================================================================
// CustomizeModel - Interactive room resizing
// =============================================================================

// saveFunc persists a spec; it is swapped in tests.
type saveFunc func(path string, spec *blueprint.Spec) error

// savedMsg reports the outcome of a save.
type savedMsg struct{ err error }

// CustomizeModel is the bubbletea model for resizing rooms. Every change
// re-runs the layout and validation so that warnings stay current.
type CustomizeModel struct {
	Spec     *blueprint.Spec
	Warnings []string
	Cursor   int
	Zoom     plan.View
	Dirty    bool
	Status   string

	path   string
	engine *layout.Engine
	opts   pipeline.Options
	save   saveFunc
	err    error
}

// NewCustomizeModel lays out spec once and returns a model editing it.
// Saves go to path.
func NewCustomizeModel(spec *blueprint.Spec, path string, e *layout.Engine, opts pipeline.Options) CustomizeModel {
	laid := pipeline.Layout(e, spec, opts)
	return CustomizeModel{
		Spec:     laid.Spec,
		Warnings: laid.Warnings,
		Zoom:     plan.View{Scale: opts.Scale}.Clamp(),
		path:     path,
		engine:   e,
		opts:     opts,
		save:     blueprint.WriteFile,
	}
}

func (m CustomizeModel) Init() tea.Cmd {
	return nil
}

func (m CustomizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.Dirty = false
			m.Status = "saved " + m.path
		}
		return m, nil
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Spec.Rooms)-1 {
				m.Cursor++
			}
		case "+", "=":
			m = m.resize(resizeStep, 0)
		case "-", "_":
			m = m.resize(-resizeStep, 0)
		case "]":
			m = m.resize(0, resizeStep)
		case "[":
			m = m.resize(0, -resizeStep)
		case "z":
			m.Zoom = m.Zoom.ZoomIn()
		case "x":
			m.Zoom = m.Zoom.ZoomOut()
		case "0":
			m.Zoom = m.Zoom.Reset()
		case "s":
			spec, path, save := m.Spec, m.path, m.save
			m.Status = "saving..."
			return m, func() tea.Msg { return savedMsg{err: save(path, spec)} }
		}
	}
	return m, nil
}

// resize grows the selected room and lays the plan out again. The cursor
// follows the room, whose index may change with placement order.
func (m CustomizeModel) resize(dw, dd float64) CustomizeModel {
	if len(m.Spec.Rooms) == 0 {
		return m
	}
	id := m.Spec.Rooms[m.Cursor].ID
	resized, _, err := resizeRoom(m.Spec, id, dw, dd)
	if err != nil {
		m.err = err
		return m
	}
	laid := pipeline.Layout(m.engine, resized, m.opts)
	m.Spec, m.Warnings = laid.Spec, laid.Warnings
	for i, r := range m.Spec.Rooms {
		if r.ID == id {
			m.Cursor = i
		}
	}
	m.Dirty = true
	m.Status = ""
	return m
}

func (m CustomizeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(plan.Title(m.Spec)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  +/- width  ]/[ depth  z/x zoom  s save  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Spec.Rooms))
	for i, r := range m.Spec.Rooms {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor + r.Name, sizeLabel(r, m.Spec.Unit), num(r.Area)}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Room", "Size", "Area ("+m.Spec.Unit.AreaAbbrev()+")").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case row == m.Cursor:
				return selectedStyle
			}
			return styleCell
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	for _, w := range m.Warnings {
		b.WriteString(StyleWarning.Render(iconWarning + " " + w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	switch {
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(m.err.Error()))
	case m.Status != "":
		b.WriteString("  " + savedStyle.Render(m.Status))
	case m.Dirty:
		b.WriteString("  " + StyleWarning.Render("unsaved"))
	}
	b.WriteString("\n")

	return b.String()
}

// statusLine is the zoom and size readout, e.g.
// "80% · 1:125 · 5 rooms · 1186 SF".
func (m CustomizeModel) statusLine() string {
	return fmt.Sprintf("%s · %s · %d rooms · %s %s",
		m.Zoom.Percent(), m.Zoom.Ratio(), len(m.Spec.Rooms), num(m.Spec.TotalArea), m.Spec.Unit.AreaAbbrev())
}
