package pds

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
)

// ListReposMethod is the XRPC method that enumerates a PDS's repositories.
const ListReposMethod = "com.atproto.sync.listRepos"

// Client defines the PDS calls used by this application.
type Client interface {
	ListRepos(ctx context.Context, host string) (*Listing, error)
}

// realClient issues XRPC queries with indigo's xrpc client.
type realClient struct {
	httpClient *http.Client
}

// NewClient creates a PDS client. A zero timeout waits indefinitely.
func NewClient(timeout time.Duration) Client {
	return &realClient{httpClient: &http.Client{Timeout: timeout}}
}

// BaseURL returns the scheme and host for a PDS host name. Hosts that already
// carry a scheme are used as given.
func BaseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	return "https://" + host
}

// ListReposURL returns the full listRepos endpoint for host.
func ListReposURL(host string) string {
	return BaseURL(host) + "/xrpc/" + ListReposMethod
}

// ListRepos fetches a single, unpaginated listRepos response from host.
func (c *realClient) ListRepos(ctx context.Context, host string) (*Listing, error) {
	xc := &xrpc.Client{
		Client: c.httpClient,
		Host:   BaseURL(host),
	}

	var body bytes.Buffer
	if err := xc.Do(ctx, xrpc.Query, "", ListReposMethod, nil, nil, &body); err != nil {
		var xe *xrpc.Error
		if errors.As(err, &xe) {
			return nil, &RequestError{StatusCode: xe.StatusCode, URL: ListReposURL(host)}
		}
		return nil, &TransportError{URL: ListReposURL(host), Err: err}
	}

	return ParseListing(body.Bytes())
}
