package client

import (
	"net/url"
	"strconv"
)

// ListMeta is returned alongside paginated collections.
type ListMeta struct {
	TotalCount int  `json:"total_count"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
}

// ListOptions selects a page of a collection. Zero values are omitted and
// the backend applies its defaults.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) query() string {
	v := url.Values{}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
