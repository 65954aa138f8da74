package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/navigator"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/pager"
	"github.com/matzehuels/packnav/pkg/render/sink"
)

// frameInterval paces scene transitions while the TUI animates.
const frameInterval = 16 * time.Millisecond

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	path     string
	snapshot string
	noCache  bool
	radius   float64
	color    string
}

// browseCommand creates the browse command, an interactive terminal front
// end for the navigator.
func (c *CLI) browseCommand() *cobra.Command {
	opts := browseOpts{snapshot: "packnav.svg"}

	cmd := &cobra.Command{
		Use:   "browse [tree]",
		Short: "Navigate a tree interactively in the terminal",
		Long: `Browse lists the children of the focused node. Enter zooms into the
selected child and loads its nested level when it has a url; backspace zooms
back out. Levels with more children than fit on the ring are paged with [ and ].
Selecting a "+" node asks for the name of a new node.

Press w to write the current navigator to an SVG file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyNavigatorFlags(cmd, opts.radius, opts.color)
			return c.runBrowse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "names to zoom along before starting, separated by /")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", opts.snapshot, "file written by the w key")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP payload cache")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "navigator radius (overrides config)")
	cmd.Flags().StringVar(&opts.color, "color", "", "fill color of the focused branch (overrides config)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts *browseOpts) error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	fetcher, closeFetcher, err := c.NewFetcher(opts.noCache)
	if err != nil {
		return err
	}
	defer closeFetcher()

	spin := newSpinnerWithContext(ctx, "Loading "+input)
	spin.Start()
	tree, err := LoadTree(ctx, fetcher, input)
	spin.Stop()
	if err != nil {
		return err
	}

	m := newBrowseModel(ctx, c, opts.snapshot)
	sess, err := c.newSession(tree, fetcher, navigator.WithAffordance(m.affordance()))
	if err != nil {
		return err
	}
	m.sess = sess
	if err := sess.walk(ctx, opts.path); err != nil {
		return err
	}

	// The TUI owns the terminal; keep log lines from tearing it.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.FatalLevel)
	defer c.Logger.SetLevel(level)

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// browseModel - Interactive navigator
// =============================================================================

type (
	frameMsg    time.Time
	expandedMsg struct {
		exp  *navigator.Expansion
		tree *pack.Node
		err  error
	}
)

// browseModel is the bubbletea model driving a navigator session. It is
// used by pointer so the creation affordance can reach it.
type browseModel struct {
	ctx      context.Context
	cli      *CLI
	sess     *session
	snapshot string

	cursor  int
	focus   *pack.Node
	height  int
	input   textinput.Model
	editing bool
	spin    spinner.Model
	loading *navigator.Expansion
	ticking bool
	lastTic time.Time

	status  string
	failure bool
}

func newBrowseModel(ctx context.Context, c *CLI, snapshot string) *browseModel {
	in := textinput.New()
	in.Placeholder = "name"
	in.CharLimit = 120
	in.Width = 40
	in.Prompt = "New node: "

	return &browseModel{
		ctx:      ctx,
		cli:      c,
		snapshot: snapshot,
		height:   20,
		input:    in,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
	}
}

// tuiAffordance shows the text input when the navigator asks for a name.
type tuiAffordance struct{ m *browseModel }

func (a tuiAffordance) Show() {
	a.m.editing = true
	a.m.input.Reset()
	a.m.input.Focus()
}

func (a tuiAffordance) Hide() {
	a.m.editing = false
	a.m.input.Blur()
}

func (m *browseModel) affordance() navigator.Affordance { return tuiAffordance{m} }

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.syncCursor()
	return model, cmd
}

// syncCursor puts the cursor back on the first child whenever the focus
// moves, and keeps it inside the list.
func (m *browseModel) syncCursor() {
	if f := m.sess.nav.Focus(); f != m.focus {
		m.focus, m.cursor = f, 0
	}
	if n := len(m.sess.children()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *browseModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)
		return m, nil

	case frameMsg:
		return m, m.advance(time.Time(msg))

	case expandedMsg:
		m.loading = nil
		if err := m.sess.nav.Complete(msg.exp, msg.tree, msg.err); err != nil {
			m.fail(err)
		} else {
			m.report("Loaded %s", msg.exp.Node.Name)
		}
		return m, m.animate()

	case spinner.TickMsg:
		if m.loading == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *browseModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.input.Value()
		if err := m.sess.nav.ConfirmCreate(name); err != nil {
			m.fail(err)
			if errors.Is(err, errors.ErrCodeInvalidInput) && m.sess.nav.Creating() != nil {
				return m, nil
			}
		} else {
			m.report("Created %s", strings.TrimSpace(name))
		}
		return m, m.animate()
	case tea.KeyEsc:
		m.sess.nav.CancelCreate()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kids := m.sess.children()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(kids)-1 {
			m.cursor++
		}
	case "enter", "right", "l":
		if m.cursor < len(kids) {
			return m, m.begin(kids[m.cursor])
		}
	case "backspace", "left", "h":
		if p := m.sess.parent(); p != nil {
			return m, m.begin(p)
		}
	case "]":
		return m, m.turnPage(1)
	case "[":
		return m, m.turnPage(-1)
	case "w":
		m.writeSnapshot()
	}
	return m, nil
}

// begin clicks nd. Payloads are fetched off the update loop and applied
// when expandedMsg arrives.
func (m *browseModel) begin(nd *pack.Node) tea.Cmd {
	if m.loading != nil {
		m.report("Still loading %s", m.loading.Node.Name)
		return nil
	}
	exp, err := m.sess.nav.Begin(nd)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.status = ""
	cmds := []tea.Cmd{m.animate()}
	if exp != nil {
		m.loading = exp
		ctx := m.ctx
		cmds = append(cmds, m.spin.Tick, func() tea.Msg {
			tree, err := exp.Fetch(ctx)
			return expandedMsg{exp: exp, tree: tree, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// pager returns the pager of the level whose root's children are listed.
func (m *browseModel) pager() *pager.Pager {
	nav := m.sess.nav
	target := nav.Focus()
	if nested := nav.Link(target); nested != nil && target.Parent != nil {
		target = nested
	}
	lv := nav.LevelOf(target)
	if lv == nil || lv.Root() != target {
		return nil
	}
	return nav.Pager(lv)
}

func (m *browseModel) turnPage(delta int) tea.Cmd {
	p := m.pager()
	if p == nil {
		return nil
	}
	if p.SetValue(p.Value() + delta) {
		m.sess.nav.Render()
		return m.animate()
	}
	return nil
}

func (m *browseModel) writeSnapshot() {
	m.sess.scene.Flush()
	opts := &renderOpts{}
	data := sink.RenderSVG(m.sess.scene.Snapshot(), m.cli.svgOptions(opts)...)
	if err := writeOutput(m.snapshot, data); err != nil {
		m.fail(err)
		return
	}
	m.report("Wrote %s", m.snapshot)
}

// animate starts the frame clock unless it is already running.
func (m *browseModel) animate() tea.Cmd {
	if m.ticking || m.sess.scene.Pending() == 0 {
		return nil
	}
	m.ticking = true
	m.lastTic = time.Now()
	return tickFrame()
}

// advance moves the scene clock to now and keeps ticking while
// transitions remain.
func (m *browseModel) advance(now time.Time) tea.Cmd {
	m.sess.scene.Advance(now.Sub(m.lastTic))
	m.lastTic = now
	if m.sess.scene.Pending() == 0 {
		m.ticking = false
		return nil
	}
	return tickFrame()
}

func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *browseModel) report(format string, args ...any) {
	m.status, m.failure = fmt.Sprintf(format, args...), false
}

func (m *browseModel) fail(err error) {
	m.status, m.failure = errors.UserMessage(err), true
}

func (m *browseModel) View() string {
	nav := m.sess.nav
	kids := m.sess.children()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName) + "  ")
	b.WriteString(StyleDim.Render(strings.Join(m.sess.breadcrumbs(), " › ")))
	b.WriteString("\n\n")

	if len(kids) == 0 {
		b.WriteString(listDimStyle.Render("  (no children)") + "\n")
	}
	offset := 0
	if m.cursor >= m.height {
		offset = m.cursor - m.height + 1
	}
	for i := offset; i < len(kids) && i < offset+m.height; i++ {
		n := kids[i]
		line := nodeIcon(n) + " " + nodeLabel(n)
		if n.Expandable() && nav.Link(n) == nil {
			line += " " + listDimStyle.Render(n.URL)
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("› ") + listSelectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + listNormalStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	var info []string
	if p := m.pager(); p != nil {
		info = append(info, fmt.Sprintf("page %d/%d", p.Value()+1, p.Pages()))
	}
	v := nav.View()
	info = append(info,
		fmt.Sprintf("%d levels", len(nav.Levels())),
		fmt.Sprintf("view %.0f,%.0f r%.0f", v.X, v.Y, v.W))
	b.WriteString(listDimStyle.Render("  " + strings.Join(info, " · ")))
	b.WriteString("\n")

	switch {
	case m.editing:
		b.WriteString("  " + m.input.View() + "\n")
	case m.loading != nil:
		b.WriteString("  " + m.spin.View() + " " + StyleDim.Render("Loading "+m.loading.Node.Name) + "\n")
	case m.status != "" && m.failure:
		b.WriteString("  " + listErrorStyle.Render(iconError+" "+m.status) + "\n")
	case m.status != "":
		b.WriteString("  " + StyleSuccess.Render(iconSuccess) + " " + m.status + "\n")
	default:
		b.WriteString("\n")
	}

	help := "↑/↓ move · enter zoom in · ⌫ zoom out · [ ] page · w snapshot · q quit"
	if m.editing {
		help = "enter create · esc cancel"
	}
	b.WriteString(listDimStyle.Render("  " + help))
	return b.String()
}
