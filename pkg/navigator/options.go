package navigator

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/pager"
)

// Defaults.
const (
	DefaultRadius         = 1000
	DefaultSpeed          = 250 * time.Millisecond
	DefaultOverflowBudget = 17
	DefaultColor          = "#3182BD"

	PositionDuration = 500 * time.Millisecond
	ZoomDuration     = 1000 * time.Millisecond
)

// Margin offsets the navigator from the surface origin.
type Margin = pager.Margin

// Fetcher loads the payload of an expandable node.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*pack.Node, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*pack.Node, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*pack.Node, error) {
	return f(ctx, url)
}

// Affordance is the front-end's inline text entry for naming a new node.
type Affordance interface {
	Show()
	Hide()
}

// PagerOptions shapes the pagers of overflowing levels.
type PagerOptions struct {
	Width       int
	GapSize     float64 // degrees
	RadiusRatio float64 // ring radius relative to the navigator radius
}

// DefaultPagerOptions are used unless WithPager is given.
var DefaultPagerOptions = PagerOptions{Width: 20, GapSize: 1, RadiusRatio: 0.9}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// WithLayout replaces the layout service.
func WithLayout(l pack.Layout) Option {
	return func(n *Navigator) {
		if l != nil {
			n.layout = l
		}
	}
}

// WithFetcher sets the source of expansion payloads.
func WithFetcher(f Fetcher) Option {
	return func(n *Navigator) { n.fetcher = f }
}

// WithAffordance sets the inline creation front-end.
func WithAffordance(a Affordance) Option {
	return func(n *Navigator) { n.affordance = a }
}

// WithRadius sets the radius of the root level.
func WithRadius(r float64) Option {
	return func(n *Navigator) { n.radius = r }
}

// WithMargin offsets the navigator on its surface.
func WithMargin(m Margin) Option {
	return func(n *Navigator) { n.margin = m }
}

// WithColor sets the fill used for the focused node and its ancestors.
func WithColor(hex string) Option {
	return func(n *Navigator) { n.color = hex }
}

// WithSpeed sets the duration of enter and exit transitions.
func WithSpeed(d time.Duration) Option {
	return func(n *Navigator) { n.speed = d }
}

// WithOverflowBudget sets how many children an overflowing level shows at
// once.
func WithOverflowBudget(slots int) Option {
	return func(n *Navigator) {
		if slots > 0 {
			n.budget = slots
		}
	}
}

// WithPager shapes the pagers of overflowing levels.
func WithPager(o PagerOptions) Option {
	return func(n *Navigator) { n.pagerOpts = o }
}
