package model_test

import (
	"testing"
	"time"

	"hubsync/internal/sync/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestFirstPageHasNext(t *testing.T) {
	cursor := model.FirstPage()

	assert.True(t, cursor.HasNext())
	assert.Equal(t, 0, cursor.After())
	assert.True(t, cursor.LastModifiedDate().IsZero())
}

func TestAdvance(t *testing.T) {
	lastUpdated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		token         string
		wantNext      bool
		wantAfter     int
		wantWatermark bool
	}{
		{name: "absent token ends pagination", token: "", wantNext: false},
		{name: "zero token ends pagination", token: "0", wantNext: false},
		{name: "malformed token ends pagination", token: "abc", wantNext: false},
		{name: "negative token ends pagination", token: "-5", wantNext: false},
		{name: "regular token continues", token: "100", wantNext: true, wantAfter: 100},
		{name: "token below ceiling continues", token: "9899", wantNext: true, wantAfter: 9899},
		{name: "token at ceiling switches to watermark", token: "9900", wantNext: true, wantAfter: 0, wantWatermark: true},
		{name: "token beyond ceiling switches to watermark", token: "9901", wantNext: true, wantAfter: 0, wantWatermark: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := model.FirstPage().Advance(tt.token, lastUpdated)

			assert.Equal(t, tt.wantNext, cursor.HasNext())
			if tt.wantNext {
				assert.Equal(t, tt.wantAfter, cursor.After())
			}
			if tt.wantWatermark {
				assert.Equal(t, lastUpdated, cursor.LastModifiedDate())
			} else {
				assert.True(t, cursor.LastModifiedDate().IsZero())
			}
		})
	}
}

func TestAdvanceKeepsNarrowedWindow(t *testing.T) {
	escaped := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	later := escaped.Add(time.Hour)

	// Hitting the ceiling narrows the window
	cursor := model.FirstPage().Advance("9901", escaped)
	assert.Equal(t, 0, cursor.After())
	assert.Equal(t, escaped, cursor.LastModifiedDate())

	// Regular tokens advance the offset without widening the window back
	cursor = cursor.Advance("100", later)
	assert.Equal(t, 100, cursor.After())
	assert.Equal(t, escaped, cursor.LastModifiedDate())

	cursor = cursor.Advance("200", later)
	assert.Equal(t, 200, cursor.After())
	assert.Equal(t, escaped, cursor.LastModifiedDate())

	// A second escape narrows the window again
	cursor = cursor.Advance("9900", later)
	assert.Equal(t, 0, cursor.After())
	assert.Equal(t, later, cursor.LastModifiedDate())

	cursor = cursor.Advance("", later)
	assert.False(t, cursor.HasNext())
}

func TestMeetingSearchRequest(t *testing.T) {
	lower := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	upper := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	req := model.MeetingSearchRequest(lower, upper, 100, 200)

	assert.Equal(t, 100, req.Limit)
	assert.Equal(t, 200, req.After)
	assert.Equal(t, model.MeetingProperties, req.Properties)

	if assert.Len(t, req.Sorts, 1) {
		assert.Equal(t, model.PropLastModified, req.Sorts[0].PropertyName)
		assert.Equal(t, model.SortAscending, req.Sorts[0].Direction)
	}

	if assert.Len(t, req.FilterGroups, 1) && assert.Len(t, req.FilterGroups[0].Filters, 2) {
		window := req.FilterGroups[0].Filters[0]
		assert.Equal(t, model.PropLastModified, window.PropertyName)
		assert.Equal(t, model.OperatorBetween, window.Operator)
		assert.Equal(t, "1709251200000", window.Value)
		assert.Equal(t, "1709337600000", window.HighValue)

		outcome := req.FilterGroups[0].Filters[1]
		assert.Equal(t, model.PropMeetingOutcome, outcome.PropertyName)
		assert.Equal(t, model.OperatorHasProperty, outcome.Operator)
	}
}

func TestSearchResponseNextToken(t *testing.T) {
	var nilResp *model.SearchResponse
	assert.Equal(t, "", nilResp.NextToken())

	assert.Equal(t, "", (&model.SearchResponse{}).NextToken())

	resp := &model.SearchResponse{
		Paging: &model.Paging{Next: &model.PagingNext{After: "300"}},
	}
	assert.Equal(t, "300", resp.NextToken())
}
