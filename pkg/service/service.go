package service

import (
	"context"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/apod"
	"github.com/OfriRose/cosmic-canvas/pkg/mast"
)

type Picture interface {
	PictureOfDay(ctx context.Context, date string) (cosmic.APODEntry, error)
	ImageURL(ctx context.Context, date string) (string, error)
}

type Archive interface {
	Observations(ctx context.Context, target string, telescope cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error)
	ComparisonPairs() []cosmic.ComparisonPair
	Comparison(name string) (cosmic.ComparisonPair, bool)
}

type Service struct {
	Picture
	Archive
}

func NewService(apodClient *apod.Client, mastClient *mast.Client, apiKey string) *Service {
	return &Service{
		Picture: NewAstroService(apodClient, apiKey),
		Archive: NewArchiveService(mastClient),
	}
}
