package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/cache"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"
	"github.com/OfriRose/cosmic-canvas/pkg/metrics"

	"github.com/sirupsen/logrus"
)

const (
	cacheNamespace = "apod"
	maxBodySize    = 1 << 20
)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      cache.Cache
	TTL        time.Duration
	Location   *time.Location
	Now        func() time.Time
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	ttl        time.Duration
	location   *time.Location
	now        func() time.Time
}

func NewClient(c Config) *Client {
	cl := &Client{
		baseURL:    c.BaseURL,
		httpClient: c.HTTPClient,
		cache:      c.Cache,
		ttl:        c.TTL,
		location:   c.Location,
		now:        c.Now,
	}

	if cl.baseURL == "" {
		cl.baseURL = consts.APODURL
	}

	if cl.httpClient == nil {
		cl.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	if cl.cache == nil {
		cl.cache = cache.NewMemory()
	}

	if cl.ttl == 0 {
		cl.ttl = consts.CacheTTL
	}

	if cl.location == nil {
		loc, err := time.LoadLocation(consts.APODTimeZone)
		if err != nil {
			logrus.Warnf("failed to load %s, falling back to UTC: %q", consts.APODTimeZone, err)
			loc = time.UTC
		}
		cl.location = loc
	}

	if cl.now == nil {
		cl.now = time.Now
	}

	return cl
}

// GetPictureOfDay отдает запись APOD за дату в формате YYYY-MM-DD, пустая дата - сегодня.
// без ключа идем с DEMO_KEY
func (c *Client) GetPictureOfDay(ctx context.Context, date, apiKey string) (cosmic.APODEntry, error) {

	if apiKey == "" {
		apiKey = consts.DemoKey
	}

	day, err := c.resolveDate(date)
	if err != nil {
		return cosmic.APODEntry{}, err
	}

	key := cache.Key(cacheNamespace, day, apiKey)
	if entry, ok := c.fromCache(ctx, key); ok {
		return entry, nil
	}

	req, err := makeRequest(c.baseURL, map[string]string{
		consts.ApiKey:      apiKey,
		consts.ParamDate:   day,
		consts.ParamThumbs: consts.True, // для видео APOD отдаёт превью
	})
	if err != nil {
		return cosmic.APODEntry{}, err
	}

	start := time.Now()
	entry, err := c.getMetadata(ctx, req)
	metrics.ObserveUpstream(cacheNamespace, "picture_of_day", start, err)
	if err != nil {
		return cosmic.APODEntry{}, err
	}

	c.toCache(ctx, key, entry)
	return entry, nil
}

// дата по умолчанию - "сегодня" по времени APOD, а не сервера
func (c *Client) resolveDate(date string) (string, error) {

	today, _ := time.Parse(consts.TimeFormat, c.now().In(c.location).Format(consts.TimeFormat))

	if date == "" {
		return today.Format(consts.TimeFormat), nil
	}

	t, err := time.Parse(consts.TimeFormat, date)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", cosmic.ErrQuery, date)
	}

	if t.Before(consts.APODFirstDay) || t.After(today) {
		return "", fmt.Errorf("%w: date must be between %s and %s", cosmic.ErrQuery,
			consts.APODFirstDay.Format(consts.TimeFormat), today.Format(consts.TimeFormat))
	}

	return t.Format(consts.TimeFormat), nil
}

func (c *Client) fromCache(ctx context.Context, key string) (cosmic.APODEntry, bool) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logrus.Warnf("apod cache read failed: %q", err)
	}

	var entry cosmic.APODEntry
	if ok {
		if err := json.Unmarshal(raw, &entry); err != nil {
			logrus.Warnf("apod cache entry is corrupt: %q", err)
			ok = false
		}
	}

	metrics.ObserveCache(cacheNamespace, ok)
	return entry, ok
}

func (c *Client) toCache(ctx context.Context, key string, entry cosmic.APODEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		logrus.Errorf("failed to encode apod entry: %q", err)
		return
	}

	if err := c.cache.Put(ctx, key, raw, c.ttl); err != nil {
		logrus.Warnf("apod cache write failed: %q", err)
	}
}

// конструктор для формирования строки запроса
func makeRequest(baseUrl string, params map[string]string) (string, error) {
	ur, err := url.Parse(baseUrl)
	if err != nil {
		return "", err
	}

	q := ur.Query()
	for k, v := range params {
		q.Set(k, v)
	}

	ur.RawQuery = q.Encode()
	return ur.String(), nil
}

// ответ APOD как он приходит по сети
type apodPayload struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	ThumbURL    string `json:"thumbnail_url"`
	Copyright   string `json:"copyright"`
}

type errorPayload struct {
	Msg   string `json:"msg"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) getMetadata(ctx context.Context, u string) (cosmic.APODEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return cosmic.APODEntry{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cosmic.APODEntry{}, networkError(err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return cosmic.APODEntry{}, networkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return cosmic.APODEntry{}, statusError(resp.StatusCode, body)
	}

	return parseEntry(body)
}

func parseEntry(body []byte) (cosmic.APODEntry, error) {

	var p apodPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return cosmic.APODEntry{}, fmt.Errorf("%w: response is not a valid APOD object", cosmic.ErrData)
	}

	required := []struct {
		name  string
		value string
	}{
		{"date", p.Date},
		{"title", p.Title},
		{"explanation", p.Explanation},
		{"media_type", p.MediaType},
		{"url", p.URL},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return cosmic.APODEntry{}, fmt.Errorf("%w: missing required field %q", cosmic.ErrData, f.name)
		}
	}

	if p.MediaType != cosmic.MediaImage && p.MediaType != cosmic.MediaVideo {
		return cosmic.APODEntry{}, fmt.Errorf("%w: unsupported media_type %q", cosmic.ErrData, p.MediaType)
	}

	return cosmic.APODEntry{
		Date:        p.Date,
		Title:       p.Title,
		Explanation: p.Explanation,
		MediaType:   p.MediaType,
		URL:         p.URL,
		HDURL:       p.HDURL,
		ThumbURL:    p.ThumbURL,
		Copyright:   strings.TrimSpace(p.Copyright),
	}, nil
}

func statusError(code int, body []byte) error {

	var p errorPayload
	_ = json.Unmarshal(body, &p)

	msg := p.Msg
	if p.Error != nil {
		if p.Error.Code == "OVER_RATE_LIMIT" {
			return fmt.Errorf("%w: %s", cosmic.ErrRateLimit, p.Error.Message)
		}
		if msg == "" {
			msg = p.Error.Message
		}
	}

	if msg == "" {
		msg = http.StatusText(code)
	}

	switch {
	case code == http.StatusTooManyRequests || strings.Contains(strings.ToLower(msg), "rate limit"):
		return fmt.Errorf("%w: %s", cosmic.ErrRateLimit, msg)
	case code == http.StatusForbidden || code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", cosmic.ErrInvalidKey, msg)
	case code == http.StatusBadRequest || code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", cosmic.ErrQuery, msg)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: APOD responded %d %s", cosmic.ErrNetwork, code, msg)
	}

	return fmt.Errorf("%w: unexpected status %d", cosmic.ErrData, code)
}

// url.Error содержит полный адрес вместе с api_key, поэтому наружу отдаём только причину
func networkError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}

	return fmt.Errorf("%w: %v", cosmic.ErrNetwork, err)
}
