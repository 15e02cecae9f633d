package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/hash"
	"propertyhub-api/pkg/jwtutil"
)

func TestMain(m *testing.M) {
	// Cheap hashing keeps the handler tests fast; verification still works.
	hash.Initialize(&config.BcryptConfig{Cost: bcrypt.MinCost})
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationDays: 1})
	os.Exit(m.Run())
}

// request runs a handler against a synthetic JSON request and returns the
// recorder. Extra request setup (headers, path params) happens via mutate.
func request(t *testing.T, h echo.HandlerFunc, method, target string, body any, mutate func(*http.Request, echo.Context)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if mutate != nil {
		mutate(req, c)
	}

	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return out
}
