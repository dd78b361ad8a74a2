package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/healthmate/cli/internal/models"
)

// VitalsFilter narrows the vitals list. Dates are YYYY-MM-DD strings, as the
// backend expects; empty optional fields are omitted from the query.
type VitalsFilter struct {
	Page           int
	Limit          int
	StartDate      string
	EndDate        string
	FamilyMemberID string
}

func (f VitalsFilter) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	if f.FamilyMemberID != "" {
		v.Set("familyMemberId", f.FamilyMemberID)
	}
	return v
}

// VitalsPage is one page of vitals entries.
type VitalsPage struct {
	Vitals     []models.VitalSigns `json:"vitals"`
	Pagination models.Pagination   `json:"pagination"`
}

type vitalsPayload struct {
	Vitals models.VitalSigns `json:"vitals"`
}

// AddVitals records a new vitals entry.
func (c *Client) AddVitals(ctx context.Context, entry models.VitalSigns) (*models.VitalSigns, error) {
	var res vitalsPayload
	if err := c.do(ctx, http.MethodPost, "/api/vitals", nil, entry, &res); err != nil {
		return nil, err
	}
	return &res.Vitals, nil
}

// ListVitals returns one page of vitals entries.
func (c *Client) ListVitals(ctx context.Context, filter VitalsFilter) (*VitalsPage, error) {
	var res VitalsPage
	if err := c.do(ctx, http.MethodGet, "/api/vitals", filter.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetVitals fetches a single vitals entry.
func (c *Client) GetVitals(ctx context.Context, id string) (*models.VitalSigns, error) {
	var res vitalsPayload
	if err := c.do(ctx, http.MethodGet, "/api/vitals/"+id, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Vitals, nil
}

// UpdateVitals replaces the fields of an existing entry.
func (c *Client) UpdateVitals(ctx context.Context, id string, entry models.VitalSigns) (*models.VitalSigns, error) {
	var res vitalsPayload
	if err := c.do(ctx, http.MethodPut, "/api/vitals/"+id, nil, entry, &res); err != nil {
		return nil, err
	}
	return &res.Vitals, nil
}

// DeleteVitals removes a vitals entry.
func (c *Client) DeleteVitals(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/vitals/"+id, nil, nil, nil)
}

// VitalsStats returns aggregates for a period such as "7d", "30d" or "90d".
func (c *Client) VitalsStats(ctx context.Context, period string) (*models.VitalsStats, error) {
	v := url.Values{}
	v.Set("period", period)

	var res struct {
		Stats models.VitalsStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vitals/stats", v, nil, &res); err != nil {
		return nil, err
	}
	return &res.Stats, nil
}
