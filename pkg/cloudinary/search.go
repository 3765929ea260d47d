package cloudinary

import (
	"context"
)

// SearchService provides asset search operations.
type SearchService struct {
	client *Client
}

const (
	// MaxPageSize is the largest max_results accepted by the search API.
	MaxPageSize = 500

	resourceTypeImage = "image"
)

// ByTag returns every image asset carrying tag.
//
// Pages of pageSize assets are requested until a response has no
// next_cursor. The result preserves API order with pages concatenated.
// If any page fails, no assets are returned.
//
// Example:
//
//	resources, err := client.Search().ByTag(ctx, "meme template", 500)
func (s *SearchService) ByTag(ctx context.Context, tag string, pageSize int) ([]Resource, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		return nil, ErrInvalidPageSize
	}

	var (
		all    []Resource
		cursor string
		page   int
	)

	for {
		page++
		req := searchRequest{
			Expression:   "tags:" + tag,
			MaxResults:   pageSize,
			ResourceType: resourceTypeImage,
			NextCursor:   cursor,
		}

		s.client.logDebugf("cloudinary: searching tag %q (page %d)", tag, page)

		var resp searchResponse
		if err := s.client.post(ctx, "/resources/search", req, &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Resources...)
		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	if all == nil {
		all = []Resource{}
	}

	s.client.logDebugf("cloudinary: tag %q returned %d resources over %d pages", tag, len(all), page)
	return all, nil
}
