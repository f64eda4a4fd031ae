package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/model"

	"go.uber.org/zap"
)

// API paths used by the sync.
const (
	meetingSearchPath       = "/crm/v3/objects/meetings/search"
	meetingAssociationsPath = "/crm/v3/associations/MEETINGS/CONTACTS/batch/read"
	contactBatchReadPath    = "/crm/v3/objects/contacts/batch/read"
)

// Client talks to the HubSpot CRM API. It implements
// repository.CRMClient. The bound access token may be swapped at any
// time by the token refresher.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	mu          sync.RWMutex
	accessToken string
}

// NewClient creates a CRM API client.
func NewClient(cfg *config.HubSpotConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		log: log,
	}
}

// SetAccessToken binds the client to fresh credentials.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// APIRequest issues one JSON request against the CRM API and decodes
// the response body into out (which may be nil). Non-2xx responses are
// returned as infrastructure errors carrying the status code.
func (c *Client) APIRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body").WithCause(err).WithComponent("hubspot_client")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err).WithComponent("hubspot_client")
	}
	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("CRM API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperrors.NewInfrastructureError("CRM API request failed").WithCause(err).WithComponent("hubspot_client")
	}
	defer resp.Body.Close()

	c.log.Debug("CRM API request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		appErr := apperrors.NewInfrastructureError(fmt.Sprintf("CRM API returned status %d", resp.StatusCode)).
			WithComponent("hubspot_client").
			WithDetail("path", path).
			WithDetail("status", resp.StatusCode).
			WithDetail("body", string(respBody))
		if resp.StatusCode == http.StatusUnauthorized {
			appErr.Type = apperrors.ErrorTypeAuthentication
		}
		return appErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInfrastructureError("failed to decode CRM API response").WithCause(err).WithComponent("hubspot_client")
	}
	return nil
}

// SearchMeetings issues one meeting search request and returns the
// parsed page. No retries happen at this layer.
func (c *Client) SearchMeetings(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	var resp model.SearchResponse
	if err := c.APIRequest(ctx, http.MethodPost, meetingSearchPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type batchReadInput struct {
	ID string `json:"id"`
}

type associationBatchRequest struct {
	Inputs []batchReadInput `json:"inputs"`
}

type associationBatchResponse struct {
	Results []model.Association `json:"results"`
}

// ReadMeetingContactAssociations batch-reads meeting-to-contact
// associations for the given meeting IDs, preserving input order.
func (c *Client) ReadMeetingContactAssociations(ctx context.Context, meetingIDs []string) ([]model.Association, error) {
	req := associationBatchRequest{Inputs: make([]batchReadInput, 0, len(meetingIDs))}
	for _, id := range meetingIDs {
		req.Inputs = append(req.Inputs, batchReadInput{ID: id})
	}

	var resp associationBatchResponse
	if err := c.APIRequest(ctx, http.MethodPost, meetingAssociationsPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []model.Association{}, nil
	}
	return resp.Results, nil
}

type contactBatchRequest struct {
	Properties []string         `json:"properties"`
	Inputs     []batchReadInput `json:"inputs"`
}

type contactBatchResponse struct {
	Results []model.Contact `json:"results"`
}

// ReadContacts batch-reads contacts with the fixed property allow-list.
func (c *Client) ReadContacts(ctx context.Context, contactIDs []string) ([]model.Contact, error) {
	req := contactBatchRequest{
		Properties: model.ContactProperties,
		Inputs:     make([]batchReadInput, 0, len(contactIDs)),
	}
	for _, id := range contactIDs {
		req.Inputs = append(req.Inputs, batchReadInput{ID: id})
	}

	var resp contactBatchResponse
	if err := c.APIRequest(ctx, http.MethodPost, contactBatchReadPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []model.Contact{}, nil
	}
	return resp.Results, nil
}
