package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/checkinhq/checkin-backend-go/internal/config"
)

const (
	loginPath    = "/api/method/hr.api.get_keys"
	employeePath = "/api/resource/Employee"
	checkinDoc   = "Employee Checkin"

	// The directory listing endpoint pages by default; one page of this size
	// covers the whole directory for the deployments this serves.
	listPageLength = 1000
)

var ErrInvalidCredentials = errors.New("erp rejected the username or password")

// Credential is the bearer string derived from an api key pair. It is held
// for a single relay run and never persisted.
type Credential string

// Client talks to the Frappe-style HR system. All calls are request/response
// with a shared timeout; nothing is cached between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.ERPConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError represents a non-2xx reply from the ERP.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("erp API error [%d]: %s", e.StatusCode, e.Body)
}

// EmployeeProfile is the detailed employee record the ERP returns. Only the
// identifier fields used for reconciliation are decoded; everything else the
// document carries is ignored.
type EmployeeProfile struct {
	DocName            string `json:"name"`
	UserID             string `json:"user_id"`
	User               string `json:"user"`
	AttendanceDeviceID string `json:"attendance_device_id"`
	// The device-code custom field was renamed between ERP revisions; both
	// spellings are still in the wild.
	CodeInDevice       string `json:"employee_code_in_device"`
	CodeInDeviceLegacy string `json:"EmployeeCodeInDevice"`
	NumericCode        string `json:"numeric_code"`
}

// CandidateIdentifiers returns the profile's possible device identifiers in
// matching priority order, empty values removed.
func (p EmployeeProfile) CandidateIdentifiers() []string {
	all := []string{
		p.UserID,
		p.User,
		p.AttendanceDeviceID,
		p.CodeInDeviceLegacy,
		p.CodeInDevice,
		p.NumericCode,
		p.DocName,
	}
	candidates := make([]string, 0, len(all))
	for _, id := range all {
		if id != "" {
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// CheckinRequest is one IN or OUT event posted to the ERP.
type CheckinRequest struct {
	Employee  string  `json:"employee"`
	LogType   string  `json:"log_type"` // "IN" or "OUT"
	Time      string  `json:"time"`     // "YYYY-MM-DD HH:MM:SS" local
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Login exchanges a username/password for the api key pair and returns the
// bearer credential built from it.
func (c *Client) Login(ctx context.Context, username, password string) (Credential, error) {
	u := c.baseURL + loginPath + "?" + url.Values{
		"usr": {username},
		"pwd": {password},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	body, err := c.do(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// The key pair arrives either wrapped in a "message" envelope or at the
	// top level, depending on the ERP revision. Some revisions put a plain
	// status string in "message" instead, so it is decoded separately.
	var envelope struct {
		Message   json.RawMessage `json:"message"`
		APIKey    string          `json:"api_key"`
		APISecret string          `json:"api_secret"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}

	var keys struct {
		APIKey    string `json:"api_key"`
		APISecret string `json:"api_secret"`
	}
	if len(envelope.Message) > 0 {
		// A string or otherwise keyless "message" is not an error; the
		// top-level fields get their chance below.
		_ = json.Unmarshal(envelope.Message, &keys)
	}

	key, secret := keys.APIKey, keys.APISecret
	if key == "" || secret == "" {
		key, secret = envelope.APIKey, envelope.APISecret
	}
	if key == "" || secret == "" {
		return "", ErrInvalidCredentials
	}

	return Credential(fmt.Sprintf("token %s:%s", key, secret)), nil
}

// ListEmployeeProfiles fetches the employee directory: one listing call for
// the document names, then one detail call per document. A failed detail
// fetch is logged and skipped; a failed listing fails the whole call.
func (c *Client) ListEmployeeProfiles(ctx context.Context, cred Credential) ([]EmployeeProfile, error) {
	u := fmt.Sprintf("%s%s?limit_page_length=%d", c.baseURL, employeePath, listPageLength)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, cred)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var listing struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode employee listing: %w", err)
	}

	profiles := make([]EmployeeProfile, 0, len(listing.Data))
	for _, item := range listing.Data {
		docName := decodeDocName(item)
		if docName == "" {
			continue
		}

		profile, err := c.getEmployeeProfile(ctx, cred, docName)
		if err != nil {
			slog.Warn("Failed to fetch employee detail, skipping", "doc_name", docName, "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// PostCheckin posts a single IN/OUT event.
func (c *Client) PostCheckin(ctx context.Context, cred Credential, checkin CheckinRequest) error {
	payload, err := json.Marshal(checkin)
	if err != nil {
		return err
	}

	u := c.baseURL + "/api/resource/" + url.PathEscape(checkinDoc)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.authorize(req, cred)
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("failed to post %s checkin for %s: %w", checkin.LogType, checkin.Employee, err)
	}
	return nil
}

func (c *Client) getEmployeeProfile(ctx context.Context, cred Credential, docName string) (EmployeeProfile, error) {
	u := c.baseURL + employeePath + "/" + url.PathEscape(docName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return EmployeeProfile{}, err
	}
	c.authorize(req, cred)

	body, err := c.do(req)
	if err != nil {
		return EmployeeProfile{}, err
	}

	var detail struct {
		Data EmployeeProfile `json:"data"`
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return EmployeeProfile{}, fmt.Errorf("failed to decode employee detail: %w", err)
	}
	return detail.Data, nil
}

func (c *Client) authorize(req *http.Request, cred Credential) {
	req.Header.Set("Authorization", string(cred))
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// decodeDocName pulls the document name out of a listing item. Depending on
// ERP version the item is either a bare string or an object with a "name"
// (or "employee") field.
func decodeDocName(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}

	var obj struct {
		Name     string `json:"name"`
		Employee string `json:"employee"`
	}
	if err := json.Unmarshal(item, &obj); err == nil {
		if obj.Name != "" {
			return obj.Name
		}
		return obj.Employee
	}
	return ""
}
