package gatepasssdk

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

func codePath(code string, suffix string) string {
	return "/codes/" + url.PathEscape(code) + suffix
}

// Issue creates an invitation for holderName.
func (c *Client) Issue(ctx context.Context, holderName string) (*InvitationResponse, error) {
	var inv InvitationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/codes", IssueRequest{HolderName: holderName}, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

// IssueBatch creates one invitation per name, all or nothing.
func (c *Client) IssueBatch(ctx context.Context, holderNames []string) ([]InvitationResponse, error) {
	var out IssueBatchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/codes/batch", IssueBatchRequest{HolderNames: holderNames}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out.Codes, nil
}

// Redeem presents a scanned code. The outcome is in the response; an error
// means the scan was not adjudicated and entry must be refused.
func (c *Client) Redeem(ctx context.Context, code string) (*RedeemResponse, error) {
	var res RedeemResponse
	if err := c.doJSON(ctx, http.MethodPost, codePath(code, "/redeem"), nil, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return &res, nil
}

// Lookup fetches a record without changing it.
func (c *Client) Lookup(ctx context.Context, code string) (*InvitationResponse, error) {
	var inv InvitationResponse
	if err := c.doJSON(ctx, http.MethodGet, codePath(code, ""), nil, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns records newest first. state may be "", "issued" or "used";
// limit <= 0 uses the server default.
func (c *Client) List(ctx context.Context, state string, limit int) ([]InvitationResponse, error) {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/codes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Codes, nil
}

// Scans returns the validation attempts recorded for code.
func (c *Client) Scans(ctx context.Context, code string) ([]ScanEventResponse, error) {
	var out ScanHistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, codePath(code, "/scans"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Scans, nil
}

// QR downloads the PNG for code. size 0 uses the server default. When
// download is set the server names the file after the holder and that name
// is returned.
func (c *Client) QR(ctx context.Context, code string, size int, download bool) ([]byte, string, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if download {
		q.Set("download", "1")
	}
	path := codePath(code, "/qr.png")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", parseErrorResponse(resp, body)
	}

	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return body, filename, nil
}

// Stats returns issued, used and remaining counts.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var s StatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/stats", nil, &s, http.StatusOK); err != nil {
		return nil, err
	}
	return &s, nil
}
