package usecase

import (
	"context"

	"gorm.io/gorm"

	domainHealth "github.com/promptdeck/promptdeck/domains/health"
	infraValkey "github.com/promptdeck/promptdeck/infrastructure/valkey"
)

type serviceHealth struct {
	db *gorm.DB
	vk *infraValkey.Client
}

func NewHealthService(db *gorm.DB, vk *infraValkey.Client) domainHealth.IHealthUsecase {
	return &serviceHealth{db: db, vk: vk}
}

func (service serviceHealth) Status(ctx context.Context) (domainHealth.Status, error) {
	overall := "ok"
	components := []domainHealth.ComponentStatus{}

	dbStatus := domainHealth.ComponentStatus{Name: "database", Status: "ok"}
	sqlDB, err := service.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus.Status = "down"
		dbStatus.Detail = err.Error()
		overall = "degraded"
	}
	components = append(components, dbStatus)

	cacheStatus := domainHealth.ComponentStatus{Name: "cache", Status: "ok"}
	if service.vk == nil {
		cacheStatus.Status = "disabled"
	} else if err := service.vk.Ping(ctx); err != nil {
		cacheStatus.Status = "down"
		cacheStatus.Detail = err.Error()
		overall = "degraded"
	}
	components = append(components, cacheStatus)

	return domainHealth.Status{Status: overall, Components: components}, nil
}
