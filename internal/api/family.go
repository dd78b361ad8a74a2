package api

import (
	"context"
	"net/http"

	"github.com/healthmate/cli/internal/models"
)

type familyMemberPayload struct {
	FamilyMember models.FamilyMember `json:"familyMember"`
}

// AddFamilyMember registers a dependent under the current account.
func (c *Client) AddFamilyMember(ctx context.Context, member models.FamilyMember) (*models.FamilyMember, error) {
	var res familyMemberPayload
	if err := c.do(ctx, http.MethodPost, "/api/family", nil, member, &res); err != nil {
		return nil, err
	}
	return &res.FamilyMember, nil
}

// ListFamilyMembers returns all family members. Screens use this to populate
// member choices instead of hardcoding them.
func (c *Client) ListFamilyMembers(ctx context.Context) ([]models.FamilyMember, error) {
	var res struct {
		FamilyMembers []models.FamilyMember `json:"familyMembers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/family", nil, nil, &res); err != nil {
		return nil, err
	}
	return res.FamilyMembers, nil
}

// FamilyOverview returns counts aggregated across all members.
func (c *Client) FamilyOverview(ctx context.Context) (*models.FamilyOverview, error) {
	var res models.FamilyOverview
	if err := c.do(ctx, http.MethodGet, "/api/family/overview", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetFamilyMember fetches a single family member.
func (c *Client) GetFamilyMember(ctx context.Context, id string) (*models.FamilyMember, error) {
	var res familyMemberPayload
	if err := c.do(ctx, http.MethodGet, "/api/family/"+id, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.FamilyMember, nil
}

// UpdateFamilyMember replaces a family member's details.
func (c *Client) UpdateFamilyMember(ctx context.Context, id string, member models.FamilyMember) (*models.FamilyMember, error) {
	var res familyMemberPayload
	if err := c.do(ctx, http.MethodPut, "/api/family/"+id, nil, member, &res); err != nil {
		return nil, err
	}
	return &res.FamilyMember, nil
}

// DeleteFamilyMember removes a family member and detaches their records.
func (c *Client) DeleteFamilyMember(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/family/"+id, nil, nil, nil)
}

// FamilyHealthSummary returns the recent reports and vitals for one member.
func (c *Client) FamilyHealthSummary(ctx context.Context, id string) (*models.HealthSummary, error) {
	var res models.HealthSummary
	if err := c.do(ctx, http.MethodGet, "/api/family/"+id+"/health-summary", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
