package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/gestao-consultoria/backend/internal/integration/persistence/model"
	"github.com/gestao-consultoria/backend/test/integration/mock"
)

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^the identity provider accepts token "([^"]*)" for user "([^"]*)"$`, t.theIdentityProviderAcceptsToken)
	ctx.Given(`^a profile exists for user "([^"]*)" with role "([^"]*)"$`, t.aProfileExists)
	ctx.Given(`^the identity provider answers "([^"]*)" "([^"]*)" with status (\d+) and body:$`, t.theIdentityProviderAnswers)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^I set header "([^"]*)" to "([^"]*)"$`, t.iSetHeaderTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, t.iSendRequestsToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should match json:$`, t.theResponseShouldMatchJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the identity provider should have received (\d+) user deletion requests?$`, t.theIdentityProviderShouldHaveReceivedDeletions)
	ctx.Then(`^the last user deletion should target "([^"]*)" with the service role key$`, t.theLastDeletionShouldTarget)
	ctx.Then(`^the table "([^"]*)" should contain (\d+) rows?$`, t.theTableShouldContainRows)
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) theIdentityProviderAcceptsToken(token, userID string) error {
	supabaseMock.AcceptToken(token, mock.SupabaseUser{ID: userID, Email: userID + "@example.com"})
	return nil
}

func (t *testContext) aProfileExists(userID, role string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("profile ids are uuids: %w", err)
	}

	now := time.Now().UTC()
	return t.db.DbConn.Create(&model.ProfileModel{
		ID:        id,
		Email:     userID + "@example.com",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

func (t *testContext) theIdentityProviderAnswers(method, path string, status int, body *godog.DocString) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("invalid canned body: %w", err)
	}
	supabaseMock.SetResponse(method, path, status, payload)
	return nil
}

func (t *testContext) iSetHeaderTo(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, path, []byte(body.Content))
}

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.executeRequest(method, path, []byte(body.Content)); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.response = &response{status: resp.StatusCode, body: body}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.response.status, string(t.response.body))
	}
	return nil
}

func (t *testContext) theResponseShouldMatchJSON(body *godog.DocString) error {
	var expected, actual any
	if err := json.Unmarshal([]byte(body.Content), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}
	if err := json.Unmarshal(t.response.body, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if !reflect.DeepEqual(expected, actual) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", body.Content, string(t.response.body))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.response.body), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.body))
	}
	return nil
}

// theResponseFieldShouldBe resolves a dot separated path; numeric segments index arrays.
func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	var data any
	if err := json.Unmarshal(t.response.body, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, err := lookup(data, field)
	if err != nil {
		return err
	}

	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func lookup(data any, field string) (any, error) {
	current := data
	for _, part := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", field)
			}
			current = value
		case []any:
			var index int
			if _, err := fmt.Sscanf(part, "%d", &index); err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, field)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", field)
		}
	}
	return current, nil
}

func (t *testContext) theIdentityProviderShouldHaveReceivedDeletions(expected int) error {
	got := len(supabaseMock.Requests(http.MethodDelete, mock.DeleteUserPath("")))
	if got != expected {
		return fmt.Errorf("expected %d deletion requests, got %d", expected, got)
	}
	return nil
}

func (t *testContext) theLastDeletionShouldTarget(userID string) error {
	requests := supabaseMock.Requests(http.MethodDelete, mock.DeleteUserPath(""))
	if len(requests) == 0 {
		return fmt.Errorf("no deletion request received")
	}

	last := requests[len(requests)-1]
	if last.Path != mock.DeleteUserPath(userID) {
		return fmt.Errorf("expected deletion of %s, got path %s", userID, last.Path)
	}
	if last.Headers["Authorization"] != "Bearer "+testServiceRoleKey {
		return fmt.Errorf("deletion was not authorized with the service role key")
	}
	if last.Headers["Apikey"] != testServiceRoleKey {
		return fmt.Errorf("deletion apikey header = %q", last.Headers["Apikey"])
	}
	return nil
}

func (t *testContext) theTableShouldContainRows(table string, expected int) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}
