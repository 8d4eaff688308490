package web

import (
	"context"
	"fmt"
	"strings"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
)

type specSource interface {
	ChartSpec(slot string) (entity.ChartSpec, error)
}

// pagePreloader resolve as imagens da própria galeria sem passar pela rede e delega
// URLs externas ao preloader remoto.
type pagePreloader struct {
	specs  specSource
	remote repository.ImagePreloader
}

var _ repository.ImagePreloader = (*pagePreloader)(nil)

func (p *pagePreloader) Preload(ctx context.Context, src string) error {
	if slot, ok := exportSlot(src); ok {
		_, err := p.specs.ChartSpec(slot)
		return err
	}
	if p.remote == nil {
		return fmt.Errorf("no preloader for %s", src)
	}
	return p.remote.Preload(ctx, src)
}

func exportSlot(src string) (string, bool) {
	const prefix = "/charts/export/"
	if !strings.HasPrefix(src, prefix) || !strings.HasSuffix(src, ".png") {
		return "", false
	}
	slot := strings.TrimSuffix(strings.TrimPrefix(src, prefix), ".png")
	return slot, slot != ""
}
