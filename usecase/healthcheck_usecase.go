package usecase

import (
	"context"

	"vidtube/domain/dto"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type IHealthcheckUsecase interface {
	Check(ctx context.Context) *dto.HealthStatus
}

type HealthcheckUsecase struct {
	store repository.IHealth
}

func NewHealthcheckUsecase(store repository.IHealth) IHealthcheckUsecase {
	return &HealthcheckUsecase{store: store}
}

// Check never fails; a store that does not answer is reported as "down".
func (u *HealthcheckUsecase) Check(ctx context.Context) *dto.HealthStatus {
	status := &dto.HealthStatus{Status: "OK", Database: "up"}
	if err := u.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Database ping failed")
		status.Database = "down"
	}
	return status
}
