package service

import (
	"context"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/repository"
)

type historyService struct {
	history repository.TaskHistoryRepo
}

func NewHistoryService(history repository.TaskHistoryRepo) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) Record(ctx context.Context, userID, taskName string, minutes int) (*domain.TaskHistoryRecord, error) {
	return s.history.Record(ctx, userID, taskName, minutes)
}

func (s *historyService) Show(ctx context.Context, userID, taskName string) (*domain.TaskHistoryRecord, error) {
	return s.history.Get(ctx, userID, taskName)
}
