package mast

import (
	"context"
	"errors"
	"net/url"
	"strings"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// resolvePreviews заполняет PreviewURL там, где его удалось найти.
// Быстрый путь - jpegURL из самой выборки, медленный - список продуктов наблюдения.
// Ошибки медленного пути только логируются: наблюдение остаётся в выдаче без превью.
func (c *Client) resolvePreviews(ctx context.Context, rows []row, records []cosmic.ObservationRecord) {

	var g errgroup.Group
	g.SetLimit(c.previewWorkers)

	for i := range records {
		if u := rows[i].str("jpegURL"); u != "" {
			records[i].PreviewURL = c.downloadURL(u)
			continue
		}

		obsid := rows[i].str("obsid")
		if obsid == "" {
			continue
		}

		g.Go(func() error {
			u, err := c.productPreview(ctx, obsid)
			if err != nil {
				logrus.Warnf("could not fetch products for observation %s: %q", obsid, err)
				return nil
			}

			records[i].PreviewURL = u
			return nil
		})
	}

	_ = g.Wait()
}

func (c *Client) productPreview(ctx context.Context, obsid string) (string, error) {

	var resp tableResponse
	err := c.invoke(ctx, request{
		Service: serviceProducts,
		Params:  map[string]any{"obsid": obsid},
	}, &resp)
	if err != nil {
		return "", err
	}

	// сначала честные PREVIEW, потом любой продукт-картинка
	var fallback string
	for _, p := range resp.Data {
		uri := p.str("dataURI")
		if _, err := getPicExtension(uri); err != nil {
			continue
		}

		if strings.EqualFold(p.str("productType"), "PREVIEW") {
			return c.downloadURL(uri), nil
		}

		if fallback == "" {
			fallback = uri
		}
	}

	if fallback != "" {
		return c.downloadURL(fallback), nil
	}

	return "", nil
}

// mast:JWST/product/... превращается в ссылку на скачивание
func (c *Client) downloadURL(uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}

	return c.baseURL + consts.MASTDownload + "?" + url.Values{"uri": {uri}}.Encode()
}

// вытягивает и проверяет формат файла
func getPicExtension(str string) (string, error) {

	if len(str) == 0 {
		return "", errors.New("empty string")
	}

	list := strings.Split(str, ".")
	if len(list) < 2 {
		return "", errors.New("no file extension")
	}

	ext := strings.ToLower(list[len(list)-1])
	for _, v := range []string{"jpg", "jpeg", "png"} {
		if ext == v {
			return ext, nil
		}
	}

	return "", errors.New("no file extension")
}
