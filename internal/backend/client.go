// Package backend is the HTTP client for the library backend API. The backend
// owns all business logic (fines, due dates, stock counts, authorization);
// this client only moves JSON and maps failures to typed errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

// Client is the library backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new backend client.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LoginResponse is the backend's answer to a successful credential check.
type LoginResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login exchanges credentials for an identity, role, and bearer token.
// Students use register number + DOB, staff and admins use email + password;
// the backend decides which applies.
func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"identifier": identifier, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		if IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusBadRequest) {
			return nil, domain.ErrAuthentication("invalid credentials")
		}
		return nil, fmt.Errorf("backend.Login: %w", err)
	}
	return &out, nil
}

// VerifyToken revalidates a stored bearer credential against the profile
// endpoint. Any error counts as "session invalid" for the caller.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := c.doRequest(ctx, http.MethodPut, "/users/profile", token, body, nil); err != nil {
		return fmt.Errorf("backend.VerifyToken: %w", err)
	}
	return nil
}

// --- Books ---

// ListBooks returns the full inventory.
func (c *Client) ListBooks(ctx context.Context, token string) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.get(ctx, "/books", token, &books); err != nil {
		return nil, fmt.Errorf("backend.ListBooks: %w", err)
	}
	return books, nil
}

// CreateBook registers a new title.
func (c *Client) CreateBook(ctx context.Context, token string, req domain.CreateBookRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/books", token, req, nil); err != nil {
		return fmt.Errorf("backend.CreateBook: %w", err)
	}
	return nil
}

// AddBookCopy adds one physical copy to an existing title.
func (c *Client) AddBookCopy(ctx context.Context, token, bookID string) error {
	body := map[string]string{"bookId": bookID}
	if err := c.doRequest(ctx, http.MethodPost, "/books/copy", token, body, nil); err != nil {
		return fmt.Errorf("backend.AddBookCopy: %w", err)
	}
	return nil
}

// BulkDeleteBooks removes a set of titles.
func (c *Client) BulkDeleteBooks(ctx context.Context, token string, ids []string) error {
	body := map[string][]string{"selectedIds": ids}
	if err := c.doRequest(ctx, http.MethodPost, "/books/bulk-delete", token, body, nil); err != nil {
		return fmt.Errorf("backend.BulkDeleteBooks: %w", err)
	}
	return nil
}

// UploadBooks forwards a CSV import to the backend.
func (c *Client) UploadBooks(ctx context.Context, token string, csv []byte) error {
	body := map[string]string{"csv": string(csv)}
	if err := c.doRequest(ctx, http.MethodPost, "/books/upload", token, body, nil); err != nil {
		return fmt.Errorf("backend.UploadBooks: %w", err)
	}
	return nil
}

// --- Circulation ---

// IssueBook issues a copy to a borrower.
func (c *Client) IssueBook(ctx context.Context, token string, req domain.IssueRequest) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.doRequest(ctx, http.MethodPost, "/circulation/issue", token, req, &tx); err != nil {
		return nil, fmt.Errorf("backend.IssueBook: %w", err)
	}
	return &tx, nil
}

// ReturnBook accepts a copy back and settles its fine state.
func (c *Client) ReturnBook(ctx context.Context, token string, req domain.ReturnRequest) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.doRequest(ctx, http.MethodPost, "/circulation/return", token, req, &tx); err != nil {
		return nil, fmt.Errorf("backend.ReturnBook: %w", err)
	}
	return &tx, nil
}

// DashboardStats returns the circulation summary counters.
func (c *Client) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/circulation/dashboard-stats", token, &stats); err != nil {
		return nil, fmt.Errorf("backend.DashboardStats: %w", err)
	}
	return &stats, nil
}

// History returns all issue/return transactions.
func (c *Client) History(ctx context.Context, token string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.get(ctx, "/circulation/history", token, &txs); err != nil {
		return nil, fmt.Errorf("backend.History: %w", err)
	}
	return txs, nil
}

// StudentHistory returns the calling student's own transactions.
func (c *Client) StudentHistory(ctx context.Context, token string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.get(ctx, "/circulation/student-history", token, &txs); err != nil {
		return nil, fmt.Errorf("backend.StudentHistory: %w", err)
	}
	return txs, nil
}

// ClearHistory deletes transaction records in a date range.
func (c *Client) ClearHistory(ctx context.Context, token, start, end string) error {
	body := map[string]string{"start": start, "end": end}
	if err := c.doRequest(ctx, http.MethodPost, "/circulation/history/delete", token, body, nil); err != nil {
		return fmt.Errorf("backend.ClearHistory: %w", err)
	}
	return nil
}

// Fines returns outstanding and settled fines.
func (c *Client) Fines(ctx context.Context, token string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.get(ctx, "/circulation/fines", token, &txs); err != nil {
		return nil, fmt.Errorf("backend.Fines: %w", err)
	}
	return txs, nil
}

// --- Directory ---

// ListStudents returns all student accounts.
func (c *Client) ListStudents(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users/students", token, &users); err != nil {
		return nil, fmt.Errorf("backend.ListStudents: %w", err)
	}
	return users, nil
}

// ListStaff returns all staff accounts.
func (c *Client) ListStaff(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users/staff-list", token, &users); err != nil {
		return nil, fmt.Errorf("backend.ListStaff: %w", err)
	}
	return users, nil
}

// ListAdmins returns all administrator accounts.
func (c *Client) ListAdmins(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users/admins", token, &users); err != nil {
		return nil, fmt.Errorf("backend.ListAdmins: %w", err)
	}
	return users, nil
}

// CreateUser creates a directory account for the given role.
func (c *Client) CreateUser(ctx context.Context, token string, role domain.Role, req domain.CreateUserRequest) error {
	path := ""
	switch role {
	case domain.RoleStudent:
		path = "/users/student"
	case domain.RoleStaff:
		path = "/users/create-staff"
	case domain.RoleAdmin:
		path = "/users/create-admin"
	default:
		return domain.ErrValidation("unknown role %q", role)
	}
	if err := c.doRequest(ctx, http.MethodPost, path, token, req, nil); err != nil {
		return fmt.Errorf("backend.CreateUser: %w", err)
	}
	return nil
}

// BulkUpdateUsers applies a semester/active change to many accounts.
func (c *Client) BulkUpdateUsers(ctx context.Context, token string, req domain.BulkUpdateUsersRequest) error {
	if err := c.doRequest(ctx, http.MethodPut, "/users/bulk-update", token, req, nil); err != nil {
		return fmt.Errorf("backend.BulkUpdateUsers: %w", err)
	}
	return nil
}

// UploadUsers forwards a CSV student import to the backend.
func (c *Client) UploadUsers(ctx context.Context, token string, csv []byte) error {
	body := map[string]string{"csv": string(csv)}
	if err := c.doRequest(ctx, http.MethodPost, "/users/upload", token, body, nil); err != nil {
		return fmt.Errorf("backend.UploadUsers: %w", err)
	}
	return nil
}

// --- Departments, feedback, audit, settings ---

// ListDepartments returns all departments.
func (c *Client) ListDepartments(ctx context.Context, token string) ([]domain.Department, error) {
	var depts []domain.Department
	if err := c.get(ctx, "/departments", token, &depts); err != nil {
		return nil, fmt.Errorf("backend.ListDepartments: %w", err)
	}
	return depts, nil
}

// CreateDepartment registers a department.
func (c *Client) CreateDepartment(ctx context.Context, token, name, code string) error {
	body := map[string]string{"name": name, "code": code}
	if err := c.doRequest(ctx, http.MethodPost, "/departments", token, body, nil); err != nil {
		return fmt.Errorf("backend.CreateDepartment: %w", err)
	}
	return nil
}

// ListFeedback returns all feedback messages.
func (c *Client) ListFeedback(ctx context.Context, token string) ([]domain.Feedback, error) {
	var items []domain.Feedback
	if err := c.get(ctx, "/feedback", token, &items); err != nil {
		return nil, fmt.Errorf("backend.ListFeedback: %w", err)
	}
	return items, nil
}

// SubmitFeedback posts a feedback message.
func (c *Client) SubmitFeedback(ctx context.Context, token, message string) error {
	body := map[string]string{"message": message}
	if err := c.doRequest(ctx, http.MethodPost, "/feedback", token, body, nil); err != nil {
		return fmt.Errorf("backend.SubmitFeedback: %w", err)
	}
	return nil
}

// DeleteFeedback removes a feedback message.
func (c *Client) DeleteFeedback(ctx context.Context, token, id string) error {
	body := map[string]string{"id": id}
	if err := c.doRequest(ctx, http.MethodPost, "/feedback/delete", token, body, nil); err != nil {
		return fmt.Errorf("backend.DeleteFeedback: %w", err)
	}
	return nil
}

// AuditLogs returns the backend's administrative audit trail.
func (c *Client) AuditLogs(ctx context.Context, token string) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	if err := c.get(ctx, "/audit", token, &entries); err != nil {
		return nil, fmt.Errorf("backend.AuditLogs: %w", err)
	}
	return entries, nil
}

// ClearAuditLogs deletes the audit trail.
func (c *Client) ClearAuditLogs(ctx context.Context, token string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/audit/delete", token, nil, nil); err != nil {
		return fmt.Errorf("backend.ClearAuditLogs: %w", err)
	}
	return nil
}

// Rules returns the library circulation policy.
func (c *Client) Rules(ctx context.Context, token string) (*domain.LibraryRules, error) {
	var rules domain.LibraryRules
	if err := c.get(ctx, "/settings", token, &rules); err != nil {
		return nil, fmt.Errorf("backend.Rules: %w", err)
	}
	return &rules, nil
}

// UpdateRules replaces the library circulation policy.
func (c *Client) UpdateRules(ctx context.Context, token string, rules domain.LibraryRules) error {
	if err := c.doRequest(ctx, http.MethodPut, "/settings/rules", token, rules, nil); err != nil {
		return fmt.Errorf("backend.UpdateRules: %w", err)
	}
	return nil
}

// --- transport ---

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
