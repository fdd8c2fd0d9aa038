// Package backend is the HTTP client for the dashboard's REST backend: auth,
// user lists, stock file data and file upload.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mapup/internal/model"
)

const (
	loginPath      = "/api/auth/login"
	createUserPath = "/api/auth/createUser"
	userListPath   = "/api/auth/user-lists"
	fileDataPath   = "/api/data/file-data"
	uploadPath     = "/api/data/upload-file"
)

// Client is the set of backend operations the dashboard consumes.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CreateUser(ctx context.Context, req CreateUserRequest) error
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, userID string) error
	FileData(ctx context.Context) ([]model.StockRecord, error)
	UploadFile(ctx context.Context, filename string, content io.Reader) error
}

// LoginResult is the part of the login response the dashboard keeps.
type LoginResult struct {
	Token    string
	Role     model.Role
	Username string
}

// CreateUserRequest is the body of POST /api/auth/createUser.
type CreateUserRequest struct {
	FullName string     `json:"fullName"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// APIError is returned for any non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// HTTPStatus returns the upstream status code.
func (e *APIError) HTTPStatus() int { return e.Status }

// ServerMessage returns the message the backend sent with a failed call, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type tokenKey struct{}

// WithToken returns a context whose backend calls carry token as a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL. A zero timeout means requests are
// bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginResponse struct {
	Token    string     `json:"token"`
	Role     model.Role `json:"role"`
	Username string     `json:"username"`
	User     *struct {
		Role     model.Role `json:"role"`
		Username string     `json:"username"`
	} `json:"user"`
}

// Login posts the credentials and returns the issued token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, loginPath, body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}

	res := &LoginResult{Token: resp.Token, Role: resp.Role, Username: resp.Username}
	if resp.User != nil {
		if res.Role == "" {
			res.Role = resp.User.Role
		}
		if res.Username == "" {
			res.Username = resp.User.Username
		}
	}
	return res, nil
}

// CreateUser posts a new user. Only success or failure is consumed.
func (c *HTTPClient) CreateUser(ctx context.Context, req CreateUserRequest) error {
	return c.doJSON(ctx, http.MethodPost, createUserPath, req, nil)
}

// ListUsers fetches the full user list.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]model.User, error) {
	var resp struct {
		Users []model.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, userListPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []model.User{}, nil
	}
	return resp.Users, nil
}

// DeleteUser deletes one user by id.
func (c *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, userListPath+"/"+url.PathEscape(userID), nil, nil)
}

// FileData fetches every stock record of the uploaded dataset.
func (c *HTTPClient) FileData(ctx context.Context) ([]model.StockRecord, error) {
	var resp struct {
		Data []model.StockRecord `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fileDataPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []model.StockRecord{}, nil
	}
	return resp.Data, nil
}

// UploadFile streams content as the multipart field "file". content is no
// longer read once UploadFile returns.
func (c *HTTPClient) UploadFile(ctx context.Context, filename string, content io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan struct{})

	go func() {
		defer close(done)
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, uploadPath, pr)
	if err == nil {
		req.Header.Set("Content-Type", mw.FormDataContentType())
		err = c.do(req, nil)
	}
	// unblock the writer if the request ended before the body was read
	pr.CloseWithError(io.ErrClosedPipe)
	<-done
	return err
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
