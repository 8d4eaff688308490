package lazyload

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/domain/repository"
)

const (
	// DeferredAttr guarda a URL real da imagem até ela entrar na viewport.
	DeferredAttr = "data-src"

	ClassLoaded = "loaded"
	ClassError  = "error"

	ErrorAlt = "Erro ao carregar imagem"

	defaultWidth  = 300
	defaultHeight = 200
)

// Element is an image element with a deferred source.
type Element interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	AddClass(class string)
}

// Observer notifies once an element becomes visible.
type Observer interface {
	Observe(el Element, onVisible func(Element))
	Unobserve(el Element)
}

// Loader troca o placeholder pela imagem real quando o elemento fica visível.
type Loader struct {
	preloader repository.ImagePreloader
	observer  Observer
	logger    *zap.Logger
}

// NewLoader creates a Loader. A nil observer makes Init load every image at once.
func NewLoader(preloader repository.ImagePreloader, observer Observer, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{preloader: preloader, observer: observer, logger: logger}
}

// Init prepares every element that carries a deferred source.
func (l *Loader) Init(ctx context.Context, elements []Element) {
	if l.observer == nil {
		l.LoadAll(ctx, elements)
		return
	}

	for _, el := range elements {
		if _, ok := el.Attr(DeferredAttr); !ok {
			continue
		}
		l.observer.Observe(el, func(target Element) {
			l.observer.Unobserve(target)
			_ = l.Load(ctx, target)
		})
		if src, ok := el.Attr("src"); !ok || src == "" {
			el.SetAttr("src", Placeholder(dimension(el, "data-width", defaultWidth), dimension(el, "data-height", defaultHeight)))
		}
	}
}

// LoadAll carrega todas as imagens imediatamente.
func (l *Loader) LoadAll(ctx context.Context, elements []Element) {
	for _, el := range elements {
		_ = l.Load(ctx, el)
	}
}

// Load preloads the deferred source and swaps it in. On failure the element is marked
// with the error class and keeps its placeholder.
func (l *Loader) Load(ctx context.Context, el Element) error {
	src, ok := el.Attr(DeferredAttr)
	if !ok || src == "" {
		return nil
	}

	if err := l.preloader.Preload(ctx, src); err != nil {
		el.AddClass(ClassError)
		el.SetAttr("alt", ErrorAlt)
		l.logger.Warn("failed to preload image", zap.String("src", src), zap.Error(err))
		return fmt.Errorf("preload %s: %w", src, err)
	}

	el.SetAttr("src", src)
	el.AddClass(ClassLoaded)
	el.RemoveAttr(DeferredAttr)
	return nil
}

// Placeholder retorna um SVG leve em data URL exibindo "Carregando...".
func Placeholder(width, height int) string {
	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="100%%" height="100%%" fill="#f0f0f0"/>`+
		`<text x="50%%" y="50%%" text-anchor="middle" dy=".3em" fill="#999">Carregando...</text>`+
		`</svg>`, width, height)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func dimension(el Element, attr string, fallback int) int {
	v, ok := el.Attr(attr)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
