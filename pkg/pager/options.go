package pager

import (
	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/render"
)

// Margin offsets the pager's center from its parent's origin.
type Margin struct {
	Top, Left, Bottom, Right float64
}

// Callback receives the page a drag selected.
type Callback func(p *Pager, page int)

// Target names where a pager draws itself.
type Target struct {
	Surface render.Surface
	Parent  string // group to draw under, "" for the surface root
	ID      string // id of the pager's own group
}

// Configure applies the recognized keys of cfg. Numeric options accept any
// Go number type. A target, if present, is applied last.
func (p *Pager) Configure(cfg map[string]any) error {
	if v, ok := cfg["width"]; ok {
		w, isNum := number(v)
		if !isNum {
			return errors.Config("width", "expected a number, got %T", v)
		}
		p.SetWidth(w)
	}
	lo, hi := p.min, p.max
	if v, ok := number(cfg["min"]); ok {
		lo = int(v)
	}
	if v, ok := number(cfg["max"]); ok {
		hi = int(v)
	}
	p.SetRange(lo, hi)
	if v, ok := number(cfg["value"]); ok {
		p.SetValue(int(v))
	}
	if v, ok := number(cfg["radius"]); ok {
		p.radius = v
	}
	if v, ok := cfg["cssClass"].(string); ok {
		p.cssClass = v
	}
	if v, ok := cfg["margin"]; ok {
		m, err := margin(v)
		if err != nil {
			return err
		}
		p.margin = m
	}
	switch fn := cfg["callback"].(type) {
	case Callback:
		p.callback = fn
	case func(*Pager, int):
		p.callback = fn
	}
	if v, ok := number(cfg["gapSize"]); ok {
		p.gapSize = v
	}
	if t, ok := cfg["target"].(Target); ok && t.Surface != nil {
		p.AppendTo(t.Surface, t.Parent, t.ID)
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func margin(v any) (Margin, error) {
	switch m := v.(type) {
	case Margin:
		return m, nil
	case *Margin:
		if m != nil {
			return *m, nil
		}
	case map[string]any:
		var out Margin
		for key, dst := range map[string]*float64{"top": &out.Top, "left": &out.Left, "bottom": &out.Bottom, "right": &out.Right} {
			if n, ok := number(m[key]); ok {
				*dst = n
			}
		}
		return out, nil
	case map[string]float64:
		return Margin{Top: m["top"], Left: m["left"], Bottom: m["bottom"], Right: m["right"]}, nil
	}
	return Margin{}, errors.Config("margin", "expected an object, got %T", v)
}
