package model

import (
	"strconv"
	"time"
)

func formatEpochMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Search filter operators used against the CRM search endpoint.
const (
	OperatorBetween     = "BETWEEN"
	OperatorHasProperty = "HAS_PROPERTY"

	SortAscending = "ASCENDING"
)

// SearchFilter is one condition inside a filter group.
type SearchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value,omitempty"`
	HighValue    string `json:"highValue,omitempty"`
}

// SearchFilterGroup ANDs its filters together.
type SearchFilterGroup struct {
	Filters []SearchFilter `json:"filters"`
}

// SearchSort orders search results by one property.
type SearchSort struct {
	PropertyName string `json:"propertyName"`
	Direction    string `json:"direction"`
}

// SearchRequest is the body of a CRM object search.
type SearchRequest struct {
	FilterGroups []SearchFilterGroup `json:"filterGroups"`
	Sorts        []SearchSort        `json:"sorts"`
	Properties   []string            `json:"properties"`
	Limit        int                 `json:"limit"`
	After        int                 `json:"after"`
}

// PagingNext carries the raw continuation token of a search response.
type PagingNext struct {
	After string `json:"after"`
}

// Paging is the pagination metadata of a search response.
type Paging struct {
	Next *PagingNext `json:"next,omitempty"`
}

// SearchResponse is the parsed body of a meeting search.
type SearchResponse struct {
	Total   int       `json:"total"`
	Results []Meeting `json:"results"`
	Paging  *Paging   `json:"paging,omitempty"`
}

// NextToken returns the raw continuation token, or "" when the response
// carries none.
func (r *SearchResponse) NextToken() string {
	if r == nil || r.Paging == nil || r.Paging.Next == nil {
		return ""
	}
	return r.Paging.Next.After
}

// MeetingSearchRequest builds the incremental search body for one page:
// meetings modified within [lower, upper] that have a recorded outcome,
// ascending by modification time.
func MeetingSearchRequest(lower, upper time.Time, limit, after int) *SearchRequest {
	return &SearchRequest{
		FilterGroups: []SearchFilterGroup{{
			Filters: []SearchFilter{
				{
					PropertyName: PropLastModified,
					Operator:     OperatorBetween,
					Value:        formatEpochMillis(lower),
					HighValue:    formatEpochMillis(upper),
				},
				{
					PropertyName: PropMeetingOutcome,
					Operator:     OperatorHasProperty,
				},
			},
		}},
		Sorts: []SearchSort{{
			PropertyName: PropLastModified,
			Direction:    SortAscending,
		}},
		Properties: MeetingProperties,
		Limit:      limit,
		After:      after,
	}
}
