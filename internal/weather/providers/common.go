package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPClientConfig bundles the HTTP client and the optional circuit breaker.
type HTTPClientConfig struct {
	Client  *http.Client
	Breaker *gobreaker.CircuitBreaker
}

var errServerError = errors.New("server error")

// newBreaker trips after consecutive 5xx or transport failures. Client-side
// cancellation is not held against the provider.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// fetchBody performs exactly one request and returns the body of a 2xx
// response. Any other outcome yields a nil body and a nil error, except when
// ctx is done, in which case the context error is returned. There are no
// retries.
func fetchBody(
	ctx context.Context,
	cfg HTTPClientConfig,
	buildRequest func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, nil
	}

	call := func() (interface{}, error) {
		resp, err := cfg.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Not the provider's fault; does not count against the breaker.
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, nil
		}

		return io.ReadAll(resp.Body)
	}

	var result interface{}
	if cfg.Breaker != nil {
		result, err = cfg.Breaker.Execute(call)
	} else {
		result, err = call()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, nil
	}

	body, _ := result.([]byte)
	return body, nil
}

// decodeLenient unmarshals body into v. It reports false for an empty body,
// the literal null, a non-object document or invalid JSON. Values whose type
// does not match the target field are skipped and leave the zero value.
func decodeLenient(body []byte, v interface{}) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		return errors.As(err, &typeErr)
	}
	return true
}
