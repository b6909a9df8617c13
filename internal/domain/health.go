package domain

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/linkdeck/linkdeck/internal/utils"
)

// CheckURL performs a best-effort reachability probe against rawURL.
// Any HTTP response, including errors like 404, means the target is
// reachable; only transport-level failures count as broken.
func CheckURL(ctx context.Context, rawURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 0,
				}).DialContext(ctx, network, addr)
			},
			TLSHandshakeTimeout: timeout,
			DisableKeepAlives:   true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Don't follow redirects; a redirect is a response.
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	defer utils.Close(resp.Body)

	return nil
}

// ProbeStatus maps a probe outcome to a health status.
func ProbeStatus(err error) HealthStatus {
	if err != nil {
		return HealthBroken
	}
	return HealthHealthy
}
