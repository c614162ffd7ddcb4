// Package youtrack is a minimal REST client for the YouTrack issue and user
// API: just the operations the publisher needs.
package youtrack

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// UserSummary is one hit of the user search.
type UserSummary struct {
	Login string `json:"login"`
}

// UserProfile is a full user record; Email is what identity resolution
// matches against.
type UserProfile struct {
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Issue struct {
	ID string `json:"id"`
}

// APIError is a failure the tracker itself reported, as opposed to a
// transport-level failure reaching it. Callers use the distinction to
// decide between skipping one record and aborting a batch.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtrack: status %d", e.StatusCode)
	}
	return fmt.Sprintf("youtrack: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to one YouTrack instance. Safe for concurrent use; each call
// acquires and releases its own request/response pair.
type Client struct {
	baseURL  string
	username string
	password string
	token    string

	http *fasthttp.Client
}

func New(baseURL, username, password, token string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		token:    token,
		http: &fasthttp.Client{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// SearchUsers runs the tracker's fuzzy user search. The result set may be
// empty; that is not an error.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]UserSummary, error) {
	var users []UserSummary
	err := c.getJSON(ctx, "/rest/admin/user?q="+url.QueryEscape(query), &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a full profile; the tracker answers 404 for unknown logins.
func (c *Client) GetUser(ctx context.Context, login string) (UserProfile, error) {
	var user UserProfile
	err := c.getJSON(ctx, "/rest/admin/user/"+url.PathEscape(login), &user)
	return user, err
}

// GetIssue fetches an issue; the tracker answers 404 for unknown ids.
func (c *Client) GetIssue(ctx context.Context, id string) (Issue, error) {
	var issue Issue
	err := c.getJSON(ctx, "/rest/issue/"+url.PathEscape(id), &issue)
	return issue, err
}

// ExecuteCommand runs a tracker command against an issue, attributed to
// runAs when set. disableNotifications keeps bulk commit comments from
// spamming issue watchers.
func (c *Client) ExecuteCommand(ctx context.Context, issueID, command, comment, runAs string, disableNotifications bool) error {
	form := url.Values{}
	form.Set("command", command)
	form.Set("comment", comment)
	if runAs != "" {
		form.Set("runAs", runAs)
	}
	if disableNotifications {
		form.Set("disableNotifications", "true")
	}

	req := fasthttp.AcquireRequest()
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(res)

	req.SetRequestURI(c.baseURL + "/rest/issue/" + url.PathEscape(issueID) + "/execute")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(form.Encode())
	c.authorize(req)

	if err := c.do(ctx, req, res); err != nil {
		return err
	}

	return checkStatus(res)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req := fasthttp.AcquireRequest()
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(res)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	c.authorize(req)

	if err := c.do(ctx, req, res); err != nil {
		return err
	}

	if err := checkStatus(res); err != nil {
		return err
	}

	return json.Unmarshal(res.Body(), out)
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, res *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.http.DoDeadline(req, res, deadline)
	}
	return c.http.Do(req, res)
}

// authorize prefers a permanent token; otherwise falls back to basic auth
// with the configured service account.
func (c *Client) authorize(req *fasthttp.Request) {
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if c.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
		return
	}

	creds := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
	req.Header.Set(fasthttp.HeaderAuthorization, "Basic "+creds)
}

// checkStatus turns non-2xx responses into *APIError, pulling the message
// from the `value` field YouTrack wraps errors in when one is present.
func checkStatus(res *fasthttp.Response) error {
	code := res.StatusCode()
	if code >= fasthttp.StatusOK && code < fasthttp.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{StatusCode: code}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(res.Body(), &body); err == nil && body.Value != "" {
		apiErr.Message = body.Value
	}

	return apiErr
}
