package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adlaunch/internal/interfaces"
	"adlaunch/internal/metrics"
	"adlaunch/internal/models"
)

// MetaClient talks to the Meta Graph API. Tokens travel as a query parameter
// on reads and deletes, and as a body field on writes, matching how the
// platform documents each call.
type MetaClient struct {
	baseURL      string
	version      string
	httpClient   *http.Client
	uploadClient *http.Client
	metrics      *metrics.Metrics
}

func NewMetaClient(baseURL, version string) *MetaClient {
	return &MetaClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		version:      strings.Trim(version, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		uploadClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// SetHTTPClient overrides the client used for regular calls.
func (c *MetaClient) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetUploadHTTPClient overrides the client used for video uploads, which run
// far longer than regular calls.
func (c *MetaClient) SetUploadHTTPClient(hc *http.Client) {
	c.uploadClient = hc
}

func (c *MetaClient) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

var _ interfaces.GraphAPI = (*MetaClient)(nil)

func (c *MetaClient) AccountBalance(ctx context.Context, accountID, token string) (*models.AccountBalance, error) {
	q := url.Values{}
	q.Set("fields", "spend_cap,amount_spent,currency")
	q.Set("access_token", token)
	var out models.AccountBalance
	if err := c.get(ctx, "account_balance", "/act_"+accountID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MetaClient) ListPages(ctx context.Context, token string) ([]models.Page, error) {
	q := url.Values{}
	q.Set("access_token", token)
	var out struct {
		Data []models.Page `json:"data"`
	}
	if err := c.get(ctx, "list_pages", "/me/accounts", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *MetaClient) CreateCampaign(ctx context.Context, accountID, token string, spec models.CampaignSpec) (string, error) {
	payload := struct {
		models.CampaignSpec
		AccessToken string `json:"access_token"`
	}{spec, token}
	return c.postJSON(ctx, c.httpClient, "create_campaign", "/act_"+accountID+"/campaigns", payload)
}

func (c *MetaClient) CreateAdSet(ctx context.Context, accountID, token string, spec models.AdSetSpec) (string, error) {
	payload := struct {
		models.AdSetSpec
		AccessToken string `json:"access_token"`
	}{spec, token}
	return c.postJSON(ctx, c.httpClient, "create_adset", "/act_"+accountID+"/adsets", payload)
}

func (c *MetaClient) UploadVideoByURL(ctx context.Context, accountID, token, fileURL string) (string, error) {
	payload := struct {
		FileURL     string `json:"file_url"`
		AccessToken string `json:"access_token"`
	}{fileURL, token}
	return c.postJSON(ctx, c.uploadClient, "upload_video", "/act_"+accountID+"/advideos", payload)
}

func (c *MetaClient) UploadVideoFile(ctx context.Context, accountID, token, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("access_token", token); err != nil {
		return "", fmt.Errorf("building upload_video request: %w", err)
	}
	part, err := mw.CreateFormFile("source", filename)
	if err != nil {
		return "", fmt.Errorf("building upload_video request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("building upload_video request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload_video request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/act_"+accountID+"/advideos"), &buf)
	if err != nil {
		return "", fmt.Errorf("building upload_video request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(c.uploadClient, "upload_video", req)
	if err != nil {
		return "", err
	}
	return createdID("upload_video", body)
}

func (c *MetaClient) VideoThumbnails(ctx context.Context, videoID, token string) ([]models.VideoThumbnail, error) {
	q := url.Values{}
	q.Set("access_token", token)
	var out struct {
		Data []models.VideoThumbnail `json:"data"`
	}
	if err := c.get(ctx, "video_thumbnails", "/"+videoID+"/thumbnails", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *MetaClient) VideoMeta(ctx context.Context, videoID, token string) (*models.VideoMeta, error) {
	q := url.Values{}
	q.Set("fields", "width,height")
	q.Set("access_token", token)
	var out models.VideoMeta
	if err := c.get(ctx, "video_meta", "/"+videoID, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MetaClient) CreateCreative(ctx context.Context, accountID, token string, spec models.CreativeSpec) (string, error) {
	payload := struct {
		models.CreativeSpec
		AccessToken string `json:"access_token"`
	}{spec, token}
	return c.postJSON(ctx, c.httpClient, "create_creative", "/act_"+accountID+"/adcreatives", payload)
}

func (c *MetaClient) CreateAd(ctx context.Context, accountID, token string, spec models.AdSpec) (string, error) {
	payload := struct {
		models.AdSpec
		AccessToken string `json:"access_token"`
	}{spec, token}
	return c.postJSON(ctx, c.httpClient, "create_ad", "/act_"+accountID+"/ads", payload)
}

// DeleteCampaign removes a campaign; the platform cascades the delete to ad
// sets, creatives and ads hanging off it.
func (c *MetaClient) DeleteCampaign(ctx context.Context, campaignID, token string) error {
	q := url.Values{}
	q.Set("access_token", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/"+campaignID)+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building delete_campaign request: %w", err)
	}
	_, err = c.do(c.httpClient, "delete_campaign", req)
	return err
}

func (c *MetaClient) endpoint(path string) string {
	return c.baseURL + "/" + c.version + path
}

func (c *MetaClient) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path)+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	body, err := c.do(c.httpClient, op, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", interfaces.ErrMalformedResponse, op, err)
	}
	return nil
}

func (c *MetaClient) postJSON(ctx context.Context, hc *http.Client, op, path string, payload interface{}) (string, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(hc, op, req)
	if err != nil {
		return "", err
	}
	return createdID(op, body)
}

func (c *MetaClient) do(hc *http.Client, op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, graphError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *MetaClient) observe(op string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordGraphRequest(op, status, time.Since(start))
}

type graphErrorEnvelope struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

func graphError(status int, body []byte) error {
	ge := &interfaces.GraphError{HTTPStatus: status, Body: strings.TrimSpace(string(body))}
	var envelope graphErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		ge.Message = envelope.Error.Message
		ge.Type = envelope.Error.Type
		ge.Code = envelope.Error.Code
		ge.Subcode = envelope.Error.ErrorSubcode
		ge.TraceID = envelope.Error.FBTraceID
	}
	return ge
}

func createdID(op string, body []byte) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decoding %s response: %v", interfaces.ErrMalformedResponse, op, err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: %s response has no id", interfaces.ErrMalformedResponse, op)
	}
	return out.ID, nil
}
