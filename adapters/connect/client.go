package connect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eklokova/connect-reports/core/report"
	"github.com/eklokova/connect-reports/core/types"
	"github.com/eklokova/connect-reports/internal/config"
	apperrors "github.com/eklokova/connect-reports/internal/errors"
	"github.com/eklokova/connect-reports/internal/logging"
)

// Client is the platform API client. It implements report.API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	pageSize   int
	log        *zap.Logger
}

// compile-time check that the client satisfies the report surface
var _ report.API = (*Client)(nil)

// New creates a client from API configuration
func New(cfg config.APIConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		token:      cfg.Token,
		pageSize:   pageSize,
		log:        logging.With(zap.String("component", "connect")),
	}
}

// Assets lists assets matching the query
func (c *Client) Assets(ctx context.Context, q report.AssetQuery) ([]types.Asset, error) {
	filter := &rql{}
	filter.ge("events.created.at", q.CreatedAfter)
	filter.le("events.created.at", q.CreatedBefore)
	filter.in("product.id", q.Products)
	if q.Status != "" && q.Status != "all" {
		filter.eq("status", q.Status)
	}
	return listAll[types.Asset](ctx, c, "/subscriptions/assets", filter)
}

// Asset fetches a single asset by id, nil when absent
func (c *Client) Asset(ctx context.Context, id string) (*types.Asset, error) {
	filter := (&rql{}).eq("id", id)
	return first[types.Asset](ctx, c, "/subscriptions/assets", filter)
}

// Listing returns the listed listing for a marketplace/product pair
func (c *Client) Listing(ctx context.Context, marketplaceID, productID string) (*types.Listing, error) {
	filter := (&rql{}).
		eq("marketplace.id", marketplaceID).
		eq("product.id", productID).
		eq("status", "listed")
	return first[types.Listing](ctx, c, "/listings", filter)
}

// ActivePriceListVersion returns the active version of a price list
func (c *Client) ActivePriceListVersion(ctx context.Context, priceListID string) (*types.PriceListVersion, error) {
	filter := (&rql{}).
		eq("pricelist.id", priceListID).
		eq("status", "active")
	return first[types.PriceListVersion](ctx, c, "/pricing/versions", filter)
}

// FilledPoints lists the filled price points of a version
func (c *Client) FilledPoints(ctx context.Context, versionID string) ([]types.PricePoint, error) {
	filter := (&rql{}).eq("status", "filled")
	path := fmt.Sprintf("/pricing/versions/%s/points", versionID)
	return listAll[types.PricePoint](ctx, c, path, filter)
}

// ApprovedRequests lists approved requests matching the query
func (c *Client) ApprovedRequests(ctx context.Context, q report.RequestQuery) ([]types.Request, error) {
	filter := &rql{}
	filter.eq("status", "approved")
	filter.ge("created", q.CreatedAfter)
	filter.le("created", q.CreatedBefore)
	filter.in("asset.connection.type", q.ConnectionTypes)
	filter.in("asset.product.id", q.Products)
	filter.in("type", q.Types)
	filter.in("marketplace.id", q.Marketplaces)
	filter.orderBy("created")
	return listAll[types.Request](ctx, c, "/requests", filter)
}

// listAll drains a filtered collection page by page
func listAll[T any](ctx context.Context, c *Client, path string, filter *rql) ([]T, error) {
	var out []T
	for offset := 0; ; offset += c.pageSize {
		page, err := getPage[T](ctx, c, path, filter, c.pageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < c.pageSize {
			return out, nil
		}
	}
}

// first fetches at most one record, nil when the collection is empty
func first[T any](ctx context.Context, c *Client, path string, filter *rql) (*T, error) {
	page, err := getPage[T](ctx, c, path, filter, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(page) == 0 {
		return nil, nil
	}
	return &page[0], nil
}

func getPage[T any](ctx context.Context, c *Client, path string, filter *rql, limit, offset int) ([]T, error) {
	url := c.endpoint + path + "?" + filter.encode(limit, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Internal("building request", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("GET", zap.String("url", url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeNetwork, "platform request failed", err).
			WithContext("path", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.Newf(apperrors.TypeExternalService,
			"platform returned %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	var page []T
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, apperrors.Wrap(apperrors.TypeExternalService, "decoding platform response", err).
			WithContext("path", path)
	}
	return page, nil
}
