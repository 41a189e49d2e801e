package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const (
	userPath       = "/auth/v1/user"
	adminUsersPath = "/auth/v1/admin/users/"
)

// SupabaseUser is a user the mocked Auth API resolves from a bearer token.
type SupabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ReceivedRequest is a call recorded by the mock.
type ReceivedRequest struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   map[string]any
}

// SupabaseMock stands in for the Supabase Auth API.
// GET /auth/v1/user resolves tokens registered with AcceptToken. Any other route answers with the
// response set through SetResponse, or 200 {} by default. A "*" path segment matches any value.
type SupabaseMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	users     map[string]SupabaseUser
	responses map[string]cannedResponse
	received  []ReceivedRequest
}

// NewSupabaseMock creates a mock that is not yet listening.
func NewSupabaseMock() *SupabaseMock {
	return &SupabaseMock{
		users:     map[string]SupabaseUser{},
		responses: map[string]cannedResponse{},
	}
}

// Start begins serving on a random local port.
func (m *SupabaseMock) Start() {
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
}

// Close stops the server.
func (m *SupabaseMock) Close() {
	if m.server != nil {
		m.server.Close()
	}
}

// GetUrl returns the base URL of the running mock.
func (m *SupabaseMock) GetUrl() string {
	return m.server.URL
}

// Reset forgets every token, canned response and recorded request.
func (m *SupabaseMock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = map[string]SupabaseUser{}
	m.responses = map[string]cannedResponse{}
	m.received = nil
}

// AcceptToken makes GET /auth/v1/user resolve token to user.
func (m *SupabaseMock) AcceptToken(token string, user SupabaseUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[token] = user
}

// SetResponse fixes the status and body returned for method and path.
func (m *SupabaseMock) SetResponse(method, path string, status int, body map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns the recorded requests for method whose path starts with prefix.
func (m *SupabaseMock) Requests(method, prefix string) []ReceivedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]ReceivedRequest, 0)
	for _, req := range m.received {
		if req.Method == method && strings.HasPrefix(req.Path, prefix) {
			result = append(result, req)
		}
	}
	return result
}

func (m *SupabaseMock) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(payload, &body)
	if body == nil {
		body = map[string]any{}
	}

	headers := map[string]string{}
	for key, values := range r.Header {
		headers[key] = values[0]
	}
	m.received = append(m.received, ReceivedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: headers,
		Body:    body,
	})

	w.Header().Set("Content-Type", "application/json")

	if canned, ok := m.findResponse(r.Method, r.URL.Path); ok {
		writeJSON(w, canned.status, canned.body)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == userPath {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if user, ok := m.users[token]; ok {
			writeJSON(w, http.StatusOK, user)
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{})
}

func (m *SupabaseMock) findResponse(method, path string) (cannedResponse, bool) {
	if canned, ok := m.responses[method+" "+path]; ok {
		return canned, true
	}

	for key, canned := range m.responses {
		keyMethod, keyPath, _ := strings.Cut(key, " ")
		if keyMethod == method && matchPath(keyPath, path) {
			return canned, true
		}
	}
	return cannedResponse{}, false
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DeleteUserPath returns the admin deletion path for userID.
func DeleteUserPath(userID string) string {
	return adminUsersPath + userID
}
