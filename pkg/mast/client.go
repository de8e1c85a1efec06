package mast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/cache"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"
	"github.com/OfriRose/cosmic-canvas/pkg/metrics"

	"github.com/sirupsen/logrus"
)

const (
	cacheNamespace = "mast"

	// радиус конуса поиска вокруг разрешённых координат, в градусах
	searchRadius = 0.2

	columns = "obsid,obs_id,target_name,instrument_name,filters,t_obs_release,proposal_id,dataproduct_type,obs_collection,jpegURL"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	Cache          cache.Cache
	TTL            time.Duration
	PreviewWorkers int
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          cache.Cache
	ttl            time.Duration
	previewWorkers int
}

func NewClient(c Config) *Client {
	cl := &Client{
		baseURL:        strings.TrimRight(c.BaseURL, "/"),
		httpClient:     c.HTTPClient,
		cache:          c.Cache,
		ttl:            c.TTL,
		previewWorkers: c.PreviewWorkers,
	}

	if cl.baseURL == "" {
		cl.baseURL = consts.MASTURL
	}

	if cl.httpClient == nil {
		cl.httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cl.cache == nil {
		cl.cache = cache.NewMemory()
	}

	if cl.ttl == 0 {
		cl.ttl = consts.CacheTTL
	}

	if cl.previewWorkers <= 0 {
		cl.previewWorkers = 4
	}

	return cl
}

// QueryObservations ищет снимки объекта в архиве, без имени - просто снимки миссии.
// отклоненный запрос или неизвестное имя дают пустой список и warning,
// сеть и лимиты уходят наверх ошибкой
func (c *Client) QueryObservations(ctx context.Context, targetName string, telescope cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error) {

	if telescope != cosmic.JWST && telescope != cosmic.HST {
		return nil, fmt.Errorf("%w: unknown telescope %q", cosmic.ErrQuery, telescope)
	}

	targetName = strings.TrimSpace(targetName)
	limit = clampLimit(limit)

	key := cache.Key(cacheNamespace, targetName, string(telescope), strconv.Itoa(limit))
	if records, ok := c.fromCache(ctx, key); ok {
		return records, nil
	}

	records, err := c.search(ctx, targetName, telescope, limit)
	if errors.Is(err, cosmic.ErrQuery) {
		logrus.Warnf("archive query for %q on %s gave no results: %q", targetName, telescope, err)
		records, err = []cosmic.ObservationRecord{}, nil
	}

	if err != nil {
		return nil, err
	}

	// превью могли не успеть из-за отмены самого вызывающего, такой неполный ответ не кэшируем
	if ctx.Err() != nil {
		logrus.Warnf("archive query for %q on %s interrupted, result not cached: %q", targetName, telescope, ctx.Err())
		return records, nil
	}

	c.toCache(ctx, key, records)
	return records, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return consts.DefaultLimit
	case limit > consts.MaxLimit:
		return consts.MaxLimit
	}

	return limit
}

func (c *Client) search(ctx context.Context, targetName string, telescope cosmic.Telescope, limit int) ([]cosmic.ObservationRecord, error) {

	params := map[string]any{
		"columns": columns,
		"filters": []filter{
			{ParamName: "obs_collection", Values: []string{telescope.Mission()}},
			{ParamName: "dataproduct_type", Values: []string{"image"}},
		},
	}

	service := serviceFiltered
	if targetName != "" {
		ra, dec, err := c.resolveName(ctx, targetName)
		if err != nil {
			return nil, err
		}

		service = servicePosition
		params["position"] = fmt.Sprintf("%s, %s, %g", ra, dec, searchRadius)
	}

	var resp tableResponse
	err := c.invoke(ctx, request{
		Service:  service,
		Params:   params,
		PageSize: limit,
		Page:     1,
	}, &resp)
	if err != nil {
		return nil, err
	}

	rows := resp.Data
	if len(rows) > limit {
		rows = rows[:limit]
	}

	records := make([]cosmic.ObservationRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, toRecord(r, telescope))
	}

	c.resolvePreviews(ctx, rows, records)

	return records, nil
}

// resolveName возвращает координаты объекта в виде строк, как их отдал MAST
func (c *Client) resolveName(ctx context.Context, name string) (string, string, error) {

	var resp lookupResponse
	err := c.invoke(ctx, request{
		Service: serviceLookup,
		Params:  map[string]any{"input": name, "format": "json"},
	}, &resp)
	if err != nil {
		return "", "", err
	}

	for _, rc := range resp.ResolvedCoordinate {
		if rc.RA != "" && rc.Decl != "" {
			logrus.Debugf("resolved %q as %q (%s, %s)", name, rc.CanonicalName, rc.RA, rc.Decl)
			return rc.RA.String(), rc.Decl.String(), nil
		}
	}

	return "", "", fmt.Errorf("%w: could not resolve target %q", cosmic.ErrQuery, name)
}

func (c *Client) fromCache(ctx context.Context, key string) ([]cosmic.ObservationRecord, bool) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logrus.Warnf("archive cache read failed: %q", err)
	}

	var records []cosmic.ObservationRecord
	if ok {
		if err := json.Unmarshal(raw, &records); err != nil || records == nil {
			logrus.Warnf("archive cache entry is corrupt: %v", err)
			ok = false
		}
	}

	metrics.ObserveCache(cacheNamespace, ok)
	return records, ok
}

func (c *Client) toCache(ctx context.Context, key string, records []cosmic.ObservationRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		logrus.Errorf("failed to encode observations: %q", err)
		return
	}

	if err := c.cache.Put(ctx, key, raw, c.ttl); err != nil {
		logrus.Warnf("archive cache write failed: %q", err)
	}
}
