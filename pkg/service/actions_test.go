package service

import (
	"context"
	"errors"
	"testing"

	cosmic "github.com/OfriRose/cosmic-canvas"

	"github.com/stretchr/testify/require"
)

type fakePictures struct {
	entry   cosmic.APODEntry
	err     error
	gotDate string
	gotKey  string
}

func (f *fakePictures) GetPictureOfDay(_ context.Context, date, apiKey string) (cosmic.APODEntry, error) {
	f.gotDate, f.gotKey = date, apiKey
	return f.entry, f.err
}

type fakeObservations struct {
	records []cosmic.ObservationRecord
	limit   int
}

func (f *fakeObservations) QueryObservations(_ context.Context, _ string, _ cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error) {
	f.limit = limit
	return f.records, nil
}

func TestAstroServiceBindsKey(t *testing.T) {
	src := &fakePictures{entry: cosmic.APODEntry{Date: "2024-03-01", Title: "M16"}}
	s := NewAstroService(src, "secret")

	entry, err := s.PictureOfDay(context.Background(), "2024-03-01")
	require.NoError(t, err)
	require.Equal(t, "M16", entry.Title)
	require.Equal(t, "2024-03-01", src.gotDate)
	require.Equal(t, "secret", src.gotKey)
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name        string
		entry       cosmic.APODEntry
		srcErr      error
		expectedVal string
		expectedErr error
	}{
		{
			name:        "hd image",
			entry:       cosmic.APODEntry{MediaType: cosmic.MediaImage, URL: "https://a/s.jpg", HDURL: "https://a/h.jpg"},
			expectedVal: "https://a/h.jpg",
		},
		{
			name:        "video thumbnail",
			entry:       cosmic.APODEntry{MediaType: cosmic.MediaVideo, URL: "https://youtube", ThumbURL: "https://a/t.jpg"},
			expectedVal: "https://a/t.jpg",
		},
		{
			name:        "video without thumbnail",
			entry:       cosmic.APODEntry{MediaType: cosmic.MediaVideo, URL: "https://youtube"},
			expectedErr: cosmic.ErrData,
		},
		{
			name:        "upstream error",
			srcErr:      cosmic.ErrRateLimit,
			expectedErr: cosmic.ErrRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAstroService(&fakePictures{entry: tt.entry, err: tt.srcErr}, "k")

			u, err := s.ImageURL(context.Background(), "")
			require.Equal(t, tt.expectedVal, u)

			if tt.expectedErr == nil {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, tt.expectedErr), "got %v", err)
			}
		})
	}
}

func TestArchiveService(t *testing.T) {
	src := &fakeObservations{records: []cosmic.ObservationRecord{{ObsID: "1"}}}
	s := NewArchiveService(src)

	recs, err := s.Observations(context.Background(), "M16", cosmic.JWST, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, 5, src.limit)

	pairs := s.ComparisonPairs()
	require.Len(t, pairs, 3)
	require.Equal(t, "Carina Nebula", pairs[1].Name)

	pair, ok := s.Comparison("carina nebula")
	require.True(t, ok)
	require.Equal(t, "Carina Nebula", pair.Name)
}
