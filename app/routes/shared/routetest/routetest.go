// Package routetest drives Fiber apps in handler tests with an authenticated caller.
package routetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"nfm-facility/app/routes/auth"
)

// Response is a decoded test response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON decodes the body into v.
func (r Response) JSON(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %q: %v", r.Body, err)
	}
}

// Do sends a request as a user holding roles. A nil roles slice sends no token.
func Do(t *testing.T, app *fiber.App, method, path, body string, roles ...string) Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return Send(t, app, req, roles...)
}

// Send runs a prepared request, such as a multipart upload, as a user holding roles.
func Send(t *testing.T, app *fiber.App, req *http.Request, roles ...string) Response {
	t.Helper()
	if roles != nil {
		token, err := auth.GenerateJWT("00000000-0000-0000-0000-000000000001", "tester@nfm.local", "Test", "User", roles)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// Admin is shorthand for the admin role.
var Admin = []string{"admin"}
