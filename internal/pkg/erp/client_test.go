package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/checkinhq/checkin-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.ERPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestLogin_MessageEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/method/hr.api.get_keys", r.URL.Path)
		assert.Equal(t, "ops@example.com", r.URL.Query().Get("usr"))
		assert.Equal(t, "secret", r.URL.Query().Get("pwd"))
		w.Write([]byte(`{"message":{"api_key":"k123","api_secret":"s456"}}`))
	}))
	defer srv.Close()

	cred, err := newTestClient(srv).Login(context.Background(), "ops@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, Credential("token k123:s456"), cred)
}

func TestLogin_TopLevelKeyPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"api_key":"k123","api_secret":"s456"}`))
	}))
	defer srv.Close()

	cred, err := newTestClient(srv).Login(context.Background(), "ops@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, Credential("token k123:s456"), cred)
}

func TestLogin_UnauthorizedIsInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid login", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Login(context.Background(), "ops@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingKeysIsInvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"status string message", `{"message":"Logged In"}`},
		{"keyless object message", `{"message":{"full_name":"Ops User"}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Login(context.Background(), "ops@example.com", "secret")

			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_ServerErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Login(context.Background(), "ops@example.com", "secret")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestListEmployeeProfiles_FailedDetailIsSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token k:s", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/api/resource/Employee":
			assert.Equal(t, "1000", r.URL.Query().Get("limit_page_length"))
			w.Write([]byte(`{"data":[{"name":"HR-EMP-00001"},{"name":"HR-EMP-00002"}]}`))
		case "/api/resource/Employee/HR-EMP-00001":
			w.Write([]byte(`{"data":{"name":"HR-EMP-00001","user_id":"aisha@example.com","employee_code_in_device":"D5"}}`))
		case "/api/resource/Employee/HR-EMP-00002":
			http.Error(w, "gone", http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	profiles, err := newTestClient(srv).ListEmployeeProfiles(context.Background(), Credential("token k:s"))

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "HR-EMP-00001", profiles[0].DocName)
	assert.Equal(t, "aisha@example.com", profiles[0].UserID)
	assert.Equal(t, "D5", profiles[0].CodeInDevice)
}

func TestListEmployeeProfiles_StringListingItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/resource/Employee":
			w.Write([]byte(`{"data":["HR-EMP-00001"]}`))
		case "/api/resource/Employee/HR-EMP-00001":
			w.Write([]byte(`{"data":{"name":"HR-EMP-00001","EmployeeCodeInDevice":"D5"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	profiles, err := newTestClient(srv).ListEmployeeProfiles(context.Background(), Credential("token k:s"))

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "D5", profiles[0].CodeInDeviceLegacy)
}

func TestListEmployeeProfiles_ListingFailureFailsCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListEmployeeProfiles(context.Background(), Credential("token k:s"))

	assert.Error(t, err)
}

func TestPostCheckin(t *testing.T) {
	var got CheckinRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/resource/Employee Checkin", r.URL.Path)
		assert.Equal(t, "token k:s", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	err := newTestClient(srv).PostCheckin(context.Background(), Credential("token k:s"), CheckinRequest{
		Employee:  "HR-EMP-00001",
		LogType:   "IN",
		Time:      "2025-01-06 08:00:00",
		Latitude:  24.71,
		Longitude: 46.67,
	})

	require.NoError(t, err)
	assert.Equal(t, "HR-EMP-00001", got.Employee)
	assert.Equal(t, "IN", got.LogType)
	assert.Equal(t, "2025-01-06 08:00:00", got.Time)
	assert.Equal(t, 24.71, got.Latitude)
	assert.Equal(t, 46.67, got.Longitude)
}

func TestPostCheckin_RejectionSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate", http.StatusConflict)
	}))
	defer srv.Close()

	err := newTestClient(srv).PostCheckin(context.Background(), Credential("token k:s"), CheckinRequest{
		Employee: "HR-EMP-00001",
		LogType:  "OUT",
		Time:     "2025-01-06 17:00:00",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestCandidateIdentifiers_PriorityOrderAndEmptySkip(t *testing.T) {
	p := EmployeeProfile{
		DocName:            "HR-EMP-00001",
		User:               "omar@example.com",
		CodeInDevice:       "D7",
		CodeInDeviceLegacy: "",
		NumericCode:        "1007",
	}

	assert.Equal(t, []string{"omar@example.com", "D7", "1007", "HR-EMP-00001"}, p.CandidateIdentifiers())
}
