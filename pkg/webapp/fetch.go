package webapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	maxPageBytes = 8 << 20
	maxIconBytes = 2 << 20

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptIcon = "image/avif,image/webp,image/png,image/svg+xml,image/*;q=0.8,*/*;q=0.5"
)

// NewClient returns the HTTP client web app installs fetch through. It does
// not retry and gives up after the configured timeout.
func NewClient(cfg config.WebApp) *http.Client {
	client := cleanhttp.DefaultClient()
	client.Timeout = cfg.FetchTimeout()
	return client
}

// pageHeaders mimic a browser navigation; some sites serve bare error pages
// to clients that do not look like one.
func (i *Installer) pageHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", acceptHTML)
	h.Set("Accept-Language", i.cfg.AcceptLanguage)
	h.Set("Cache-Control", "max-age=0")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Upgrade-Insecure-Requests", "1")
	if i.cfg.UserAgent != "" {
		h.Set("User-Agent", i.cfg.UserAgent)
	}
	return h
}

func (i *Installer) iconHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", acceptIcon)
	h.Set("Sec-Fetch-Dest", "image")
	if i.cfg.UserAgent != "" {
		h.Set("User-Agent", i.cfg.UserAgent)
	}
	return h
}

// get performs a single GET and returns at most limit bytes of a 2xx body.
func (i *Installer) get(ctx context.Context, u *url.URL, header http.Header, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInput, "cannot build request for %s", u).
			WithDetail("url", u.String())
	}
	req.Header = header

	i.logger.Debug().Str("url", u.String()).Msg("Fetching")
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetwork, "failed to fetch %s", u).
			WithDetail("url", u.String())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(fmt.Errorf("unexpected status %s", resp.Status), errors.ErrNetwork,
			"failed to fetch %s", u).
			WithDetail("url", u.String()).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetwork, "failed to read response from %s", u).
			WithDetail("url", u.String())
	}
	return body, nil
}
