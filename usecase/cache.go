package usecase

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	domainCache "github.com/promptdeck/promptdeck/domains/cache"
)

type serviceCache struct {
	store domainCache.Store
}

func NewCacheService(store domainCache.Store) domainCache.ICacheUsecase {
	return &serviceCache{store: store}
}

func (service serviceCache) GetStats(ctx context.Context) (domainCache.Stats, error) {
	keys, size, err := service.store.Usage(ctx)
	if err != nil {
		return domainCache.Stats{}, err
	}
	return domainCache.Stats{
		Keys:      keys,
		TotalSize: size,
		HumanSize: humanize.Bytes(uint64(size)),
	}, nil
}

func (service serviceCache) Clear(ctx context.Context) (int, error) {
	removed, err := service.store.DeletePrefix(ctx, "")
	if err != nil {
		return 0, err
	}
	logrus.Infof("[CACHE] Cleared %d cached responses", removed)
	return removed, nil
}
