package capture

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	tls2 "github.com/refraction-networking/utls"

	"github.com/rohitmenonhart-xhunter/starweb-p1/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const preflightTimeout = 8 * time.Second

// preflightFetcher checks target reachability with a plain HTTP request
// carrying a Chrome TLS fingerprint (utls), so unreachable hosts and
// hard error pages fail fast without spending a browser tab.
type preflightFetcher struct{}

func newPreflightFetcher() *preflightFetcher {
	return &preflightFetcher{}
}

// check performs a GET and discards the body. A transport error or a
// status >= 400 is a NavigationFailure; anything the site serves,
// including bot-walled 2xx/3xx shells, passes — the browser makes the
// final call.
func (f *preflightFetcher) check(ctx context.Context, targetURL string) error {
	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return models.NewAuditError(models.ErrCodeInvalidInput, "invalid target URL", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return categorizeError(err, "target is unreachable")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode >= 400 {
		return models.NewAuditError(
			models.ErrCodeNavigation,
			fmt.Sprintf("target returned HTTP %d", resp.StatusCode),
			nil,
		)
	}
	return nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint
// via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
