package service

import (
	"context"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/apod"
	"github.com/OfriRose/cosmic-canvas/pkg/mast"
)

type pictureSource interface {
	GetPictureOfDay(ctx context.Context, date, apiKey string) (cosmic.APODEntry, error)
}

type observationSource interface {
	QueryObservations(ctx context.Context, targetName string, telescope cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error)
}

// AstroService привязывает клиент APOD к ключу из конфига
type AstroService struct {
	client pictureSource
	apiKey string
}

func NewAstroService(client pictureSource, apiKey string) *AstroService {
	return &AstroService{client: client, apiKey: apiKey}
}

func (s *AstroService) PictureOfDay(ctx context.Context, date string) (cosmic.APODEntry, error) {
	return s.client.GetPictureOfDay(ctx, date, s.apiKey)
}

func (s *AstroService) ImageURL(ctx context.Context, date string) (string, error) {
	entry, err := s.client.GetPictureOfDay(ctx, date, s.apiKey)
	if err != nil {
		return "", err
	}

	return apod.BestImageURL(entry)
}

type ArchiveService struct {
	client observationSource
}

func NewArchiveService(client observationSource) *ArchiveService {
	return &ArchiveService{client}
}

func (s *ArchiveService) Observations(ctx context.Context, target string, telescope cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error) {
	return s.client.QueryObservations(ctx, target, telescope, limit)
}

func (s *ArchiveService) ComparisonPairs() []cosmic.ComparisonPair {
	return mast.ComparisonPairs()
}

func (s *ArchiveService) Comparison(name string) (cosmic.ComparisonPair, bool) {
	return mast.LookupComparison(name)
}
