package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geonews/models"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the remote API answers 401. The caller
// decides what that means: during logout it is success, everywhere else it
// surfaces as a generic failure. No retry or token refresh happens here.
var ErrUnauthorized = errors.New("unauthorized: remote API rejected the token")

// APIClient talks to the remote HTTP API. Every authenticated request gets
// its Authorization header from the AuthBinder at dispatch time.
type APIClient struct {
	baseURL string
	binder  *AuthBinder
	client  *http.Client
}

// NewAPIClient returns a client for the API at baseURL.
func NewAPIClient(baseURL string, binder *AuthBinder) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		binder:  binder,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the remote API base URL.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) do(ctx context.Context, sid, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if header := c.binder.Header(ctx, sid); header != "" {
		req.Header.Set("Authorization", header)
	}
	return c.client.Do(req)
}

// decodeEnvelope unmarshals a response body that may arrive either bare or
// wrapped in a {"data": ...} envelope.
func decodeEnvelope(body []byte, v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, v)
	}
	return json.Unmarshal(body, v)
}

// apiError extracts the error message the API put in the body, falling back
// to the HTTP status.
func apiError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return errors.New(payload.Error)
		}
		if payload.Message != "" {
			return errors.New(payload.Message)
		}
	}
	return fmt.Errorf("remote API returned status %d", status)
}

// Login exchanges credentials for an auth response. The caller validates
// that the body actually carries a token and a user before trusting it.
func (c *APIClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, "", http.MethodPost, "/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body)
	}

	var auth models.AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("malformed login response: %w", err)
	}
	return &auth, nil
}

// Logout tells the remote API to drop the session. The caller passes the
// Authorization header captured before local state was cleared, since by
// then the binder no longer has one. A 401 means the token already expired,
// which is the outcome logout wants anyway, so it maps to ErrUnauthorized
// for the caller to ignore.
func (c *APIClient) Logout(ctx context.Context, authHeader string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}
	return nil
}

func (c *APIClient) getJSON(ctx context.Context, sid, path string, v any) error {
	resp, err := c.do(ctx, sid, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, body)
	}
	return decodeEnvelope(body, v)
}

// FetchNews lists all news records.
func (c *APIClient) FetchNews(ctx context.Context, sid string) ([]models.NewsItem, error) {
	news := []models.NewsItem{}
	if err := c.getJSON(ctx, sid, "/noticias", &news); err != nil {
		return nil, err
	}
	return news, nil
}

// FetchNewsByID fetches a single news record.
func (c *APIClient) FetchNewsByID(ctx context.Context, sid string, id int) (*models.NewsItem, error) {
	var item models.NewsItem
	if err := c.getJSON(ctx, sid, fmt.Sprintf("/noticias/%d", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// FetchPersons lists geocoded persons for the map.
func (c *APIClient) FetchPersons(ctx context.Context, sid string) ([]models.Person, error) {
	persons := []models.Person{}
	if err := c.getJSON(ctx, sid, "/persons", &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// FetchBusinesses lists geocoded businesses for the map.
func (c *APIClient) FetchBusinesses(ctx context.Context, sid string) ([]models.Business, error) {
	businesses := []models.Business{}
	if err := c.getJSON(ctx, sid, "/comercios", &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

// newsMultipart renders a news form as multipart/form-data. The update
// flow tunnels PUT through POST with a _method field, which is what the
// remote API expects.
func newsMultipart(form models.NewsForm, methodOverride string) (string, *bytes.Buffer, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if methodOverride != "" {
		if err := mw.WriteField("_method", methodOverride); err != nil {
			return "", nil, err
		}
	}
	if err := mw.WriteField("title", form.Title); err != nil {
		return "", nil, err
	}
	if err := mw.WriteField("content", form.Content); err != nil {
		return "", nil, err
	}
	if form.PersonRecordID != nil {
		if err := mw.WriteField("person_record_id", *form.PersonRecordID); err != nil {
			return "", nil, err
		}
	}
	if form.AddressID != nil {
		if err := mw.WriteField("address_id", *form.AddressID); err != nil {
			return "", nil, err
		}
	}
	if len(form.Image) > 0 {
		part, err := mw.CreateFormFile("image", form.ImageName)
		if err != nil {
			return "", nil, err
		}
		if _, err := part.Write(form.Image); err != nil {
			return "", nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return "", nil, err
	}
	return mw.FormDataContentType(), &buf, nil
}

func (c *APIClient) postNews(ctx context.Context, sid, path string, form models.NewsForm, methodOverride string) (*models.NewsItem, error) {
	contentType, body, err := newsMultipart(form, methodOverride)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, sid, http.MethodPost, path, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var item models.NewsItem
	if err := decodeEnvelope(respBody, &item); err != nil {
		return nil, fmt.Errorf("malformed news response: %w", err)
	}
	return &item, nil
}

// CreateNews creates a news record, optionally with an attached image.
func (c *APIClient) CreateNews(ctx context.Context, sid string, form models.NewsForm) (*models.NewsItem, error) {
	return c.postNews(ctx, sid, "/noticias", form, "")
}

// UpdateNews updates a news record. An empty association field
// disassociates; an absent one leaves the association untouched.
func (c *APIClient) UpdateNews(ctx context.Context, sid string, id int, form models.NewsForm) (*models.NewsItem, error) {
	return c.postNews(ctx, sid, fmt.Sprintf("/noticias/%d", id), form, "PUT")
}

// DeleteNews deletes a news record.
func (c *APIClient) DeleteNews(ctx context.Context, sid string, id int) error {
	resp, err := c.do(ctx, sid, http.MethodDelete, fmt.Sprintf("/noticias/%d", id), "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}
	return nil
}
