package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Mario960060/cosmichub/internal/model"
)

// HTTPClient implements HubClient using the Cosmic Hub HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Subtask CRUD ---

func (c *HTTPClient) CreateSubtask(ctx context.Context, req *CreateSubtaskRequest) (*model.Subtask, error) {
	var st model.Subtask
	if err := c.doJSON(ctx, http.MethodPost, "/v1/subtasks", req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) GetSubtask(ctx context.Context, id string) (*model.Subtask, error) {
	var st model.Subtask
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(id), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) ListSubtasks(ctx context.Context, req *ListSubtasksRequest) (*ListSubtasksResponse, error) {
	q := url.Values{}
	if len(req.ProjectIDs) > 0 {
		q.Set("project", strings.Join(req.ProjectIDs, ","))
	}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if req.AssignedTo != "" {
		q.Set("assigned_to", req.AssignedTo)
	}
	if req.Unassigned {
		q.Set("unassigned", "true")
	}
	if req.Priority != nil {
		q.Set("priority", fmt.Sprintf("%d", *req.Priority))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/subtasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListSubtasksResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateSubtask(ctx context.Context, id string, req *UpdateSubtaskRequest) (*model.Subtask, error) {
	var st model.Subtask
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/subtasks/"+url.PathEscape(id), req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) DeleteSubtask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/subtasks/"+url.PathEscape(id), nil, nil)
}

// --- Work logs ---

func (c *HTTPClient) AddWorkLog(ctx context.Context, subtaskID string, req *AddWorkLogRequest) (*model.WorkLog, error) {
	var wl model.WorkLog
	if err := c.doJSON(ctx, http.MethodPost, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/worklogs", req, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

func (c *HTTPClient) GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, float64, error) {
	var resp struct {
		WorkLogs    []*model.WorkLog `json:"work_logs"`
		HoursLogged float64          `json:"hours_logged"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/worklogs", nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.WorkLogs, resp.HoursLogged, nil
}

// --- Dependencies ---

func (c *HTTPClient) AddDependency(ctx context.Context, req *AddDependencyRequest) (*model.Dependency, error) {
	var dep model.Dependency
	if err := c.doJSON(ctx, http.MethodPost, "/v1/subtasks/"+url.PathEscape(req.SubtaskID)+"/dependencies", req, &dep); err != nil {
		return nil, err
	}
	return &dep, nil
}

func (c *HTTPClient) RemoveDependency(ctx context.Context, subtaskID, dependsOnID string) error {
	q := url.Values{}
	q.Set("depends_on", dependsOnID)
	path := "/v1/subtasks/" + url.PathEscape(subtaskID) + "/dependencies?" + q.Encode()
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) GetDependencies(ctx context.Context, subtaskID string) ([]*model.Dependency, error) {
	var resp struct {
		Dependencies []*model.Dependency `json:"dependencies"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/dependencies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Dependencies, nil
}

func (c *HTTPClient) GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error) {
	var resp struct {
		Blockers []*model.Subtask `json:"blockers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/blockers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Blockers, nil
}

// --- Engine views ---

func (c *HTTPClient) GetRisk(ctx context.Context, subtaskID string) (*model.DeadlineRisk, error) {
	var risk model.DeadlineRisk
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/risk", nil, &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}

func (c *HTTPClient) GetRedFlags(ctx context.Context, userID string) ([]*model.RedFlag, error) {
	var resp struct {
		RedFlags []*model.RedFlag `json:"red_flags"`
	}
	path := "/v1/redflags?user=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.RedFlags, nil
}

// --- Task requests ---

func (c *HTTPClient) CreateRequest(ctx context.Context, req *CreateRequestRequest) (*model.TaskRequest, error) {
	var tr model.TaskRequest
	if err := c.doJSON(ctx, http.MethodPost, "/v1/requests", req, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (c *HTTPClient) ListRequests(ctx context.Context, status string) ([]*model.TaskRequest, error) {
	var resp struct {
		Requests []*model.TaskRequest `json:"requests"`
	}
	path := "/v1/requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

func (c *HTTPClient) ApproveRequest(ctx context.Context, id, resolvedBy string) (*model.TaskRequest, error) {
	return c.resolveRequest(ctx, id, "approve", resolvedBy)
}

func (c *HTTPClient) RejectRequest(ctx context.Context, id, resolvedBy string) (*model.TaskRequest, error) {
	return c.resolveRequest(ctx, id, "reject", resolvedBy)
}

func (c *HTTPClient) resolveRequest(ctx context.Context, id, action, resolvedBy string) (*model.TaskRequest, error) {
	body := map[string]string{}
	if resolvedBy != "" {
		body["resolved_by"] = resolvedBy
	}
	var tr model.TaskRequest
	path := "/v1/requests/" + url.PathEscape(id) + "/" + action
	if err := c.doJSON(ctx, http.MethodPost, path, body, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// --- Projects ---

func (c *HTTPClient) CreateProject(ctx context.Context, req *CreateProjectRequest) (*model.Project, error) {
	var p model.Project
	if err := c.doJSON(ctx, http.MethodPost, "/v1/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var resp struct {
		Projects []*model.Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *HTTPClient) AddMember(ctx context.Context, projectID, userID, role string) (*model.Member, error) {
	body := map[string]string{"user_id": userID}
	if role != "" {
		body["role"] = role
	}
	var m model.Member
	if err := c.doJSON(ctx, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/members", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) ListMembers(ctx context.Context, projectID string) ([]*model.Member, error) {
	var resp struct {
		Members []*model.Member `json:"members"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/projects/"+url.PathEscape(projectID)+"/members", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// --- Aggregates ---

func (c *HTTPClient) GetStats(ctx context.Context) (*model.ProjectStats, error) {
	var stats model.ProjectStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- Events ---

func (c *HTTPClient) GetEvents(ctx context.Context, subtaskID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subtasks/"+url.PathEscape(subtaskID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError is returned for non-2xx responses, carrying the server's message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

var _ HubClient = (*HTTPClient)(nil)
