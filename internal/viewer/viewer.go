// Package viewer is a desktop window for the navigator.
//
// The window draws the shapes of an in-memory scene with ebiten. Clicking
// a circle zooms to it and loads its nested level when it has a url;
// dragging a pager ring turns its pages. Backspace or the right mouse
// button zooms out, O opens another tree and Q quits.
//
// Payloads are fetched on their own goroutine and applied on the next
// Update, so a slow source never stalls the frame loop. Native dialogs
// come from zenity: the name of a new node and the tree to open.
package viewer

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ncruces/zenity"

	"github.com/matzehuels/packnav/pkg/config"
	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/navigator"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render"
	"github.com/matzehuels/packnav/pkg/render/scene"
)

// statusTTL is how long a status line stays on screen.
const statusTTL = 4 * time.Second

// Dialogs asks the user for input. Both calls block until the dialog
// closes and return zenity.ErrCanceled when it is dismissed.
type Dialogs interface {
	Entry(prompt string) (string, error)
	OpenFile() (string, error)
}

type expanded struct {
	exp  *navigator.Expansion
	tree *pack.Node
	err  error
}

type answer struct {
	name string
	err  error
}

type opened struct {
	path string
	tree *pack.Node
	err  error
}

// Viewer drives a navigator attached to a scene. It implements
// ebiten.Game.
type Viewer struct {
	ctx     context.Context
	cfg     config.Config
	log     *log.Logger
	fetcher navigator.Fetcher
	dialogs Dialogs

	nav   *navigator.Navigator
	scene *scene.Scene

	pressed  string // shape under the pointer when the button went down
	dragging bool   // a pager took the press
	loading  *navigator.Expansion
	asking   bool

	expanded chan expanded
	answers  chan answer
	opened   chan opened

	status   string
	failure  bool
	statusAt time.Duration
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithConfig sets the navigator and window configuration.
func WithConfig(cfg config.Config) Option {
	return func(v *Viewer) { v.cfg = cfg }
}

// WithFetcher sets where nested levels are loaded from.
func WithFetcher(f navigator.Fetcher) Option {
	return func(v *Viewer) { v.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithDialogs replaces the native dialogs.
func WithDialogs(d Dialogs) Option {
	return func(v *Viewer) { v.dialogs = d }
}

// New builds a viewer showing tree. The context bounds every fetch.
func New(ctx context.Context, tree *pack.Node, opts ...Option) (*Viewer, error) {
	v := &Viewer{
		ctx:      ctx,
		cfg:      config.Default(),
		log:      log.New(io.Discard),
		dialogs:  NativeDialogs{},
		expanded: make(chan expanded, 1),
		answers:  make(chan answer, 1),
		opened:   make(chan opened, 1),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.cfg.Validate(); err != nil {
		return nil, err
	}

	navOpts := append(v.cfg.NavigatorOptions(),
		navigator.WithLogger(v.log),
		navigator.WithAffordance(v))
	if v.fetcher != nil {
		navOpts = append(navOpts, navigator.WithFetcher(v.fetcher))
	}
	v.nav = navigator.New(navOpts...)
	if err := v.nav.SetRootData(tree); err != nil {
		return nil, err
	}
	v.scene = scene.New()
	if err := v.nav.AttachTo(v.scene); err != nil {
		return nil, err
	}
	return v, nil
}

// Navigator returns the navigator the viewer drives.
func (v *Viewer) Navigator() *navigator.Navigator { return v.nav }

// Scene returns the scene the navigator draws on.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Size is the side of the square window.
func (v *Viewer) Size() int { return int(v.cfg.Canvas()) }

// Show implements navigator.Affordance by asking for the new node's name.
func (v *Viewer) Show() {
	if v.asking {
		return
	}
	v.asking = true
	go func() {
		name, err := v.dialogs.Entry("Name of the new node")
		v.answers <- answer{name: name, err: err}
	}()
}

// Hide implements navigator.Affordance. An open dialog cannot be closed
// from here; its answer is dropped once creation is no longer pending.
func (v *Viewer) Hide() {}

// press handles the pointer going down at p, in window coordinates.
func (v *Viewer) press(p render.Point) {
	v.scene.SetPointer(p)
	if v.nav.PointerDown() {
		v.dragging = true
		return
	}
	v.pressed = ""
	if sh, ok := v.scene.At(p); ok {
		v.pressed = sh.ID
	}
}

// move handles the pointer moving to p.
func (v *Viewer) move(p render.Point) {
	v.scene.SetPointer(p)
	if v.dragging {
		v.nav.PointerMove()
	}
}

// release handles the pointer going up at p. A press and release on the
// same node is a click.
func (v *Viewer) release(p render.Point) {
	v.scene.SetPointer(p)
	if v.dragging {
		v.dragging = false
		v.nav.PointerUp()
		return
	}
	pressed := v.pressed
	v.pressed = ""
	sh, ok := v.scene.At(p)
	if !ok || sh.ID != pressed {
		return
	}
	if nd := v.nav.NodeAt(sh.ID); nd != nil {
		v.click(nd)
	}
}

// click begins the activation of nd and fetches its payload off the frame
// loop when it needs one.
func (v *Viewer) click(nd *pack.Node) {
	if v.loading != nil {
		v.report("still loading %s", v.loading.Node.Name)
		return
	}
	exp, err := v.nav.Begin(nd)
	if err != nil {
		v.fail(err)
		return
	}
	if exp == nil {
		return
	}
	v.loading = exp
	v.report("loading %s", nd.Name)
	go func() {
		tree, err := exp.Fetch(v.ctx)
		v.expanded <- expanded{exp: exp, tree: tree, err: err}
	}()
}

// zoomOut focuses the node above the current focus.
func (v *Viewer) zoomOut() {
	if up := v.nav.Up(); up != nil {
		v.click(up)
	}
}

// open asks for a JSON file and loads it as the new root tree.
func (v *Viewer) open() {
	go func() {
		path, err := v.dialogs.OpenFile()
		if err != nil {
			v.opened <- opened{err: err}
			return
		}
		tree, err := pnio.ImportJSON(path)
		v.opened <- opened{path: path, tree: tree, err: err}
	}()
}

// poll applies whatever the background goroutines have finished.
func (v *Viewer) poll() {
	select {
	case r := <-v.expanded:
		v.loading = nil
		if err := v.nav.Complete(r.exp, r.tree, r.err); err != nil {
			v.fail(err)
		} else {
			v.report("loaded %s", r.exp.Node.Name)
		}
	default:
	}

	select {
	case a := <-v.answers:
		v.asking = false
		v.applyName(a)
	default:
	}

	select {
	case o := <-v.opened:
		switch {
		case stderrors.Is(o.err, zenity.ErrCanceled):
		case o.err != nil:
			v.fail(o.err)
		default:
			v.replaceTree(o.path, o.tree)
		}
	default:
	}
}

func (v *Viewer) applyName(a answer) {
	if v.nav.Creating() == nil {
		return
	}
	if a.err != nil {
		v.nav.CancelCreate()
		if !stderrors.Is(a.err, zenity.ErrCanceled) {
			v.fail(a.err)
		}
		return
	}
	if err := v.nav.ConfirmCreate(a.name); err != nil {
		v.fail(err)
		if v.nav.Creating() != nil {
			v.nav.CancelCreate()
		}
		return
	}
	v.report("created %s", a.name)
}

func (v *Viewer) replaceTree(path string, tree *pack.Node) {
	v.loading = nil
	if err := v.nav.SetRootData(tree); err != nil {
		v.fail(err)
		return
	}
	v.log.Info("opened tree", "path", path, "nodes", tree.Count())
	v.report("opened %s", path)
}

// step advances the scene clock by dt.
func (v *Viewer) step(dt time.Duration) {
	v.scene.Advance(dt)
	if v.status != "" && v.scene.Now()-v.statusAt > statusTTL {
		v.status = ""
	}
}

func (v *Viewer) report(format string, args ...any) {
	v.setStatus(false, format, args...)
}

func (v *Viewer) fail(err error) {
	v.log.Warn("navigation failed", "err", err)
	v.setStatus(true, "%s", errors.UserMessage(err))
}

func (v *Viewer) setStatus(failure bool, format string, args ...any) {
	v.status, v.failure, v.statusAt = fmt.Sprintf(format, args...), failure, v.scene.Now()
}
