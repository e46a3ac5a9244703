package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "s3cret"

func TestIssueAndResolve(t *testing.T) {
	r := NewResolver(testSecret)

	token, err := r.Issue("user1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := r.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.AccountID != "user1" {
		t.Fatalf("expected user1, got %q", id.AccountID)
	}
}

func TestResolveAcceptsAccountIDClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"account_id": "legacy"})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	id, err := NewResolver(testSecret).Resolve(signed)
	if err != nil || id.AccountID != "legacy" {
		t.Fatalf("expected legacy, got %+v, %v", id, err)
	}
}

func TestResolveRejects(t *testing.T) {
	r := NewResolver(testSecret)

	foreign, _ := NewResolver("other").Issue("user1")
	expired, _ := NewResolver(testSecret, WithTTL(-time.Minute)).Issue("user1")
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "user"}).SignedString([]byte(testSecret))
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
		"no subject":   noSubject,
		"alg none":     unsigned,
		"empty":        "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			id, err := r.Resolve(token)
			if err == nil {
				t.Fatalf("expected an error, got identity %+v", id)
			}
			if id.Authenticated() {
				t.Fatalf("rejected token must resolve to anonymous, got %+v", id)
			}
		})
	}
}

func TestNoSecret(t *testing.T) {
	r := NewResolver("")
	if _, err := r.Issue("user1"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("issue: expected ErrNoSecret, got %v", err)
	}
	if _, err := r.Resolve("anything"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("resolve: expected ErrNoSecret, got %v", err)
	}
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def":  "abc.def",
		"Bearer  abc.def": "abc.def",
		"abc.def":         "abc.def",
		"Bearer ":         "Bearer ",
	}
	for header, want := range cases {
		if got := extractToken(header); got != want {
			t.Errorf("extractToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	r := NewResolver(testSecret)
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id := IdentityFrom(c)
		if !id.Authenticated() {
			return c.SendString("anonymous")
		}
		return c.SendString(id.AccountID)
	})

	token, err := r.Issue("user1")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		header string
		want   string
	}{
		{"", "anonymous"},
		{"Bearer " + token, "user1"},
		{token, "user1"},
		{"Bearer broken.token.x", "anonymous"},
	}
	for _, tc := range cases {
		header, want := tc.header, tc.want
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		if string(body) != want {
			t.Errorf("header %q: got %q, want %q", header, body, want)
		}
	}
}
