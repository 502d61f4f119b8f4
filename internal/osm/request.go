package osm

import (
	"context"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// maxBodyBytes caps response bodies; a 5 km Overpass street query is a few MB.
const maxBodyBytes = 64 << 20

// do sends req after waiting on the rate limiter and returns the body of a
// 200 response.
func (c *Client) do(ctx context.Context, req *http.Request, service string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrapf(err, "osm: %s rate limit", service)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := eris.Wrapf(err, "osm: %s request", service)
		// A cancelled or expired caller context is not the service's fault.
		if ctx.Err() == nil && isTimeout(err) {
			return nil, &TransientError{Service: service, Err: reqErr}
		}
		return nil, reqErr
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("osm: %s returned status %d", service, resp.StatusCode)
		if isTransientStatus(resp.StatusCode) {
			return nil, &TransientError{Service: service, StatusCode: resp.StatusCode, Err: statusErr}
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "osm: %s read body", service)
	}

	zap.L().Debug("osm: response received",
		zap.String("service", service),
		zap.String("url", req.URL.Redacted()),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}
