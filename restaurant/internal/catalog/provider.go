package catalog

import (
	"context"
	"sync"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Provider loads the catalog once and hands out the cached copy. A failed
// load is retried on the next Get; concurrent callers share one fetch.
type Provider struct {
	src   Source
	log   *zap.Logger
	group singleflight.Group

	mu  sync.RWMutex
	cat *Catalog
}

func NewProvider(src Source, log *zap.Logger) *Provider {
	return &Provider{src: src, log: log.Named("catalog")}
}

func (p *Provider) Get(ctx context.Context) (*Catalog, error) {
	if c := p.Current(); c != nil {
		return c, nil
	}
	v, err, _ := p.group.Do("catalog", func() (interface{}, error) {
		if c := p.Current(); c != nil {
			return c, nil
		}
		items, err := p.src.Fetch(ctx)
		if err != nil {
			p.log.Error("catalog load", zap.Error(err))
			return nil, errors.Wrap(errs.ErrCatalogUnavailable, err.Error())
		}
		c := New(items)
		p.mu.Lock()
		p.cat = c
		p.mu.Unlock()
		p.log.Info("catalog loaded", zap.Int("restaurants", c.Len()))
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Current returns the loaded catalog or nil without triggering a load.
func (p *Provider) Current() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cat
}
