package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/healthmate/cli/internal/models"
)

// TimelineFilter narrows the timeline feed; empty optional fields are
// omitted from the query.
type TimelineFilter struct {
	Page           int
	Limit          int
	StartDate      string
	EndDate        string
	Type           models.TimelineItemType
	FamilyMemberID string
}

func (f TimelineFilter) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	if f.Type != "" {
		// The query parameter takes the plural token ("reports"), while
		// response items carry the singular type ("report").
		t := string(f.Type)
		if f.Type == models.TimelineItemReport {
			t = "reports"
		}
		v.Set("type", t)
	}
	if f.FamilyMemberID != "" {
		v.Set("familyMemberId", f.FamilyMemberID)
	}
	return v
}

// TimelinePage is one page of the chronological health feed.
type TimelinePage struct {
	Timeline   []models.TimelineItem `json:"timeline"`
	Pagination models.Pagination     `json:"pagination"`
}

// Timeline returns one page of health events, newest first.
func (c *Client) Timeline(ctx context.Context, filter TimelineFilter) (*TimelinePage, error) {
	var res TimelinePage
	if err := c.do(ctx, http.MethodGet, "/api/timeline", filter.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Dashboard returns the aggregate counts behind the dashboard screen.
func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var res models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/timeline/dashboard", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
