package cloudinary

import "encoding/json"

// Resource is a single asset from a search response.
//
// Raw keeps the asset object exactly as the API returned it. When set,
// MarshalJSON writes Raw, so fields not modelled here (context, version,
// display_name and so on) survive a decode and re-encode.
type Resource struct {
	PublicID     string   `json:"public_id"`
	Format       string   `json:"format"`
	ResourceType string   `json:"resource_type,omitempty"`
	Type         string   `json:"type,omitempty"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	Bytes        int64    `json:"bytes,omitempty"`
	SecureURL    string   `json:"secure_url,omitempty"`
	URL          string   `json:"url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// resource has Resource's fields without its methods.
type resource Resource

// UnmarshalJSON decodes the known fields and keeps a copy of data in Raw.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var v resource
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	v.Raw = append(json.RawMessage(nil), data...)
	*r = Resource(v)
	return nil
}

// MarshalJSON writes Raw when present, otherwise the known fields.
func (r Resource) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(resource(r))
}

// searchRequest is the JSON body of a resources/search call.
type searchRequest struct {
	Expression   string `json:"expression"`
	MaxResults   int    `json:"max_results"`
	ResourceType string `json:"resource_type"`
	NextCursor   string `json:"next_cursor,omitempty"`
}

// searchResponse is one page of a resources/search call.
type searchResponse struct {
	TotalCount int        `json:"total_count"`
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"next_cursor"`
}

// errorResponse is the body Cloudinary sends with error statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
