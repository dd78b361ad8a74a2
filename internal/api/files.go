package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/healthmate/cli/internal/models"
)

// ReportFilter narrows the reports list. Zero-valued optional fields are
// omitted from the query string entirely, never sent as empty strings.
type ReportFilter struct {
	Page           int
	Limit          int
	ReportType     models.ReportType
	FamilyMemberID string
}

func (f ReportFilter) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	if f.ReportType != "" {
		v.Set("reportType", string(f.ReportType))
	}
	if f.FamilyMemberID != "" {
		v.Set("familyMemberId", f.FamilyMemberID)
	}
	return v
}

// ReportsPage is one page of the reports list.
type ReportsPage struct {
	Reports    []models.Report   `json:"reports"`
	Pagination models.Pagination `json:"pagination"`
}

type reportPayload struct {
	Report models.Report `json:"report"`
}

// UploadReport submits a report file for analysis. This is the only
// multipart call in the API; familyMemberID is omitted when empty so the
// report is filed under the account owner.
func (c *Client) UploadReport(ctx context.Context, file io.Reader, fileName string, reportType models.ReportType, familyMemberID string) (*models.Report, error) {
	fields := map[string]string{"reportType": string(reportType)}
	if familyMemberID != "" {
		fields["familyMemberId"] = familyMemberID
	}

	var res reportPayload
	if err := c.upload(ctx, "/api/files/upload", fields, "file", fileName, file, &res); err != nil {
		return nil, err
	}
	return &res.Report, nil
}

// ListReports returns one page of the account's reports.
func (c *Client) ListReports(ctx context.Context, filter ReportFilter) (*ReportsPage, error) {
	var res ReportsPage
	if err := c.do(ctx, http.MethodGet, "/api/files/reports", filter.values(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetReport fetches a single report including its AI insight, if processed.
func (c *Client) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var res reportPayload
	if err := c.do(ctx, http.MethodGet, "/api/files/reports/"+id, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Report, nil
}

// DeleteReport removes a report and its stored file.
func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/reports/"+id, nil, nil, nil)
}

// AnalyzeReport asks the backend to run (or re-run) AI analysis.
func (c *Client) AnalyzeReport(ctx context.Context, id string) (*models.Report, error) {
	var res reportPayload
	if err := c.do(ctx, http.MethodPost, "/api/files/reports/"+id+"/analyze", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Report, nil
}
