package service

import (
	"context"
	"fmt"
	"os"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/importer"
	"github.com/avnerell/dayweave/internal/repository"
)

type importService struct {
	events repository.EventRepo
}

func NewImportService(events repository.EventRepo) ImportService {
	return &importService{events: events}
}

func (s *importService) ImportFile(ctx context.Context, userID, path string) (*ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := importer.ParseICS(f, domain.CalendarIDForUser(userID))
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Skipped: res.Skipped}
	for _, ev := range res.Events {
		if _, cerr := s.events.Create(ctx, ev); cerr != nil {
			summary.Failed = append(summary.Failed, ev.Title)
			continue
		}
		summary.Created++
	}
	return summary, nil
}
