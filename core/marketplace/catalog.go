package marketplace

import (
	"context"
	"strconv"

	"market-sync/core/syncer"

	"go.uber.org/zap"
)

// requestCursor is the pagination token sent with every page request
// after the first.
type requestCursor struct {
	ID        string `json:"id"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type catalogRequest struct {
	Limit  int            `json:"limit"`
	Cursor *requestCursor `json:"cursor,omitempty"`
}

// responseCursor carries the next-page token. An empty ID is the
// exhaustion sentinel.
type responseCursor struct {
	ID        string `json:"id"`
	UpdatedAt string `json:"updatedAt"`
	Total     int    `json:"total"`
}

type catalogResponse struct {
	Cursor responseCursor `json:"cursor"`
	Items  []catalogItem  `json:"items"`
}

type catalogItem struct {
	OfferID   string `json:"offer_id"`
	ProductID int64  `json:"product_id"`
}

// FetchCatalog paginates the catalog listing to exhaustion and returns
// the full snapshot for one run. The accumulator is local to the call, so
// the client stays reusable across runs.
//
// Termination is decided solely by the empty-string cursor id; a short
// page does not end the loop. A non-terminal cursor combined with an
// empty page signals a contract violation by the server and fails
// immediately instead of looping.
func (c *Client) FetchCatalog(ctx context.Context) ([]syncer.CatalogItem, error) {
	var (
		items  []syncer.CatalogItem
		cursor *requestCursor
		pages  int
	)

	for {
		req := catalogRequest{Limit: c.cfg.PageSize, Cursor: cursor}
		var resp catalogResponse
		if err := c.postJSON(ctx, syncer.StageFetchCatalog, pathCatalogList, req, &resp); err != nil {
			return nil, err
		}
		pages++

		for _, it := range resp.Items {
			items = append(items, syncer.CatalogItem{
				ExternalID: it.OfferID,
				InternalID: strconv.FormatInt(it.ProductID, 10),
			})
		}
		c.logger.Debug("catalog page fetched",
			zap.Int("page", pages),
			zap.Int("page_items", len(resp.Items)),
			zap.Int("accumulated", len(items)),
			zap.Int("reported_total", resp.Cursor.Total),
		)

		if resp.Cursor.ID == "" {
			return items, nil
		}
		if len(resp.Items) == 0 {
			return nil, &syncer.UpstreamError{
				Stage:  syncer.StageFetchCatalog,
				Detail: "server returned a non-terminal cursor with an empty page",
			}
		}
		cursor = &requestCursor{ID: resp.Cursor.ID, UpdatedAt: resp.Cursor.UpdatedAt}
	}
}
