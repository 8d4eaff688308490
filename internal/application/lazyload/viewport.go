package lazyload

import "sync"

const (
	// DefaultRootMargin expande a viewport verticalmente para carregar um pouco antes.
	DefaultRootMargin = 50
	DefaultThreshold  = 0.01
)

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) area() float64 { return r.Width * r.Height }

func (r Rect) intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Positioned is an Element that knows its own bounding box.
type Positioned interface {
	Element
	Bounds() Rect
}

type observation struct {
	el        Element
	onVisible func(Element)
}

// ViewportObserver is a geometric Observer: an element is visible when the fraction of
// its box inside the viewport, grown vertically by the root margin, reaches the threshold.
// Elements without bounds are treated as visible.
type ViewportObserver struct {
	mu         sync.Mutex
	viewport   Rect
	rootMargin float64
	threshold  float64
	observed   []observation
}

// NewViewportObserver creates an observer for the given viewport.
func NewViewportObserver(viewport Rect) *ViewportObserver {
	return &ViewportObserver{
		viewport:   viewport,
		rootMargin: DefaultRootMargin,
		threshold:  DefaultThreshold,
	}
}

// Observe registra o elemento e dispara imediatamente se ele já estiver visível.
func (o *ViewportObserver) Observe(el Element, onVisible func(Element)) {
	o.mu.Lock()
	o.observed = append(o.observed, observation{el: el, onVisible: onVisible})
	o.mu.Unlock()
	o.check()
}

func (o *ViewportObserver) Unobserve(el Element) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, obs := range o.observed {
		if obs.el == el {
			o.observed = append(o.observed[:i], o.observed[i+1:]...)
			return
		}
	}
}

// Scroll moves the viewport and fires the callbacks of elements that became visible.
func (o *ViewportObserver) Scroll(viewport Rect) {
	o.mu.Lock()
	o.viewport = viewport
	o.mu.Unlock()
	o.check()
}

// Pending returns how many elements are still waiting to become visible.
func (o *ViewportObserver) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observed)
}

func (o *ViewportObserver) check() {
	o.mu.Lock()
	root := Rect{
		X:      o.viewport.X,
		Y:      o.viewport.Y - o.rootMargin,
		Width:  o.viewport.Width,
		Height: o.viewport.Height + 2*o.rootMargin,
	}
	var fire []observation
	for _, obs := range o.observed {
		if o.visible(obs.el, root) {
			fire = append(fire, obs)
		}
	}
	o.mu.Unlock()

	// Callbacks rodam fora do lock: normalmente chamam Unobserve.
	for _, obs := range fire {
		obs.onVisible(obs.el)
	}
}

func (o *ViewportObserver) visible(el Element, root Rect) bool {
	p, ok := el.(Positioned)
	if !ok {
		return true
	}
	box := p.Bounds()
	if box.area() == 0 {
		return box.X >= root.X && box.X <= root.X+root.Width && box.Y >= root.Y && box.Y <= root.Y+root.Height
	}
	ratio := box.intersect(root).area() / box.area()
	return ratio > 0 && ratio >= o.threshold
}
