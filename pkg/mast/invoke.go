package mast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"
	"github.com/OfriRose/cosmic-canvas/pkg/metrics"
)

const (
	serviceLookup    = "Mast.Name.Lookup"
	serviceFiltered  = "Mast.Caom.Filtered"
	servicePosition  = "Mast.Caom.Filtered.Position"
	serviceProducts  = "Mast.Caom.Products"
	statusError      = "ERROR"
	maxResponseBytes = 16 << 20
)

type filter struct {
	ParamName string   `json:"paramName"`
	Values    []string `json:"values"`
}

type request struct {
	Service  string         `json:"service"`
	Params   map[string]any `json:"params"`
	Format   string         `json:"format"`
	PageSize int            `json:"pagesize,omitempty"`
	Page     int            `json:"page,omitempty"`
}

type row map[string]any

type tableResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   []row  `json:"data"`
}

type lookupResponse struct {
	Status             string `json:"status"`
	Msg                string `json:"msg"`
	ResolvedCoordinate []struct {
		CanonicalName string      `json:"canonicalName"`
		RA            json.Number `json:"ra"`
		Decl          json.Number `json:"decl"`
	} `json:"resolvedCoordinate"`
}

// invoke отправляет запрос в MAST и раскладывает ответ в out
func (c *Client) invoke(ctx context.Context, r request, out any) (err error) {

	start := time.Now()
	defer func() {
		metrics.ObserveUpstream("mast", r.Service, start, err)
	}()

	r.Format = "json"
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}

	form := url.Values{"request": {string(payload)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+consts.MASTInvoke, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return networkError(err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: archive responded %d", cosmic.ErrRateLimit, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: archive responded %d", cosmic.ErrNetwork, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: archive responded %d", cosmic.ErrQuery, resp.StatusCode)
	}

	var status struct {
		Status string `json:"status"`
		Msg    string `json:"msg"`
	}

	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("%w: archive response for %s is not valid JSON", cosmic.ErrData, r.Service)
	}

	if strings.EqualFold(status.Status, statusError) {
		return fmt.Errorf("%w: %s", cosmic.ErrQuery, status.Msg)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: unexpected archive response for %s", cosmic.ErrData, r.Service)
	}

	return nil
}

func networkError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}

	return fmt.Errorf("%w: %v", cosmic.ErrNetwork, err)
}
