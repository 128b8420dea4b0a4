package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robbyt/go-wasmbridge/loader/httpauth"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient implements the httpRequester interface for testing
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if m.doFunc != nil {
		return m.doFunc(req)
	}
	return nil, errors.New("doFunc not implemented")
}

// mockResponseBody implements io.ReadCloser for testing
type mockResponseBody struct {
	io.Reader
	closed bool
}

func (m *mockResponseBody) Close() error {
	m.closed = true
	return nil
}

func newMockResponse(statusCode int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       &mockResponseBody{Reader: bytes.NewReader(body)},
		Status:     http.StatusText(statusCode),
		Header:     make(http.Header),
	}
}

var testModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestNewFromHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		url           string
		expectError   bool
		errorIs       error
		errorContains string
	}{
		{
			name: "Valid HTTPS URL",
			url:  "https://example.com/demo.wasm",
		},
		{
			name: "Valid HTTP URL",
			url:  "http://example.com/zig-out/bin/wasmtest.wasm",
		},
		{
			name:        "Invalid URL scheme",
			url:         "file:///path/to/demo.wasm",
			expectError: true,
			errorIs:     ErrSchemeUnsupported,
		},
		{
			name:          "Invalid URL format",
			url:           "://invalid-url",
			expectError:   true,
			errorContains: "unable to parse URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFromHTTP(tt.url)
			if tt.expectError {
				require.Error(t, err)
				if tt.errorIs != nil {
					require.ErrorIs(t, err, tt.errorIs)
				}
				if tt.errorContains != "" {
					require.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, loader)
			require.Equal(t, tt.url, loader.url)
			require.Equal(t, tt.url, loader.GetSourceURL().String())
			require.NotNil(t, loader.client)
			require.NotNil(t, loader.options)
			require.IsType(t, &httpauth.NoAuth{}, loader.options.Authenticator)
		})
	}
}

func TestNewFromHTTPWithOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		optionsModifier func(options *HTTPOptions) *HTTPOptions
		validateOption  func(t *testing.T, loader *FromHTTP)
	}{
		{
			name: "Custom timeout",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return options.WithTimeout(60 * time.Second)
			},
			validateOption: func(t *testing.T, loader *FromHTTP) {
				t.Helper()
				require.Equal(t, 60*time.Second, loader.options.Timeout)
				client, ok := loader.client.(*http.Client)
				require.True(t, ok)
				require.Equal(t, 60*time.Second, client.Timeout)
			},
		},
		{
			name: "Basic auth",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return options.WithBasicAuth("user", "pass")
			},
			validateOption: func(t *testing.T, loader *FromHTTP) {
				t.Helper()
				auth, ok := loader.options.Authenticator.(*httpauth.BasicAuth)
				require.True(t, ok, "Expected BasicAuth authenticator")
				require.Equal(t, "user", auth.Username)
				require.Equal(t, "pass", auth.Password)
			},
		},
		{
			name: "Bearer auth",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return options.WithBearerAuth("token123")
			},
			validateOption: func(t *testing.T, loader *FromHTTP) {
				t.Helper()
				auth, ok := loader.options.Authenticator.(*httpauth.HeaderAuth)
				require.True(t, ok, "Expected HeaderAuth authenticator")
				require.Equal(t, "Bearer token123", auth.Headers["Authorization"])
			},
		},
		{
			name: "Insecure skip verify",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return options.WithInsecureSkipVerify()
			},
			validateOption: func(t *testing.T, loader *FromHTTP) {
				t.Helper()
				client, ok := loader.client.(*http.Client)
				require.True(t, ok)
				transport, ok := client.Transport.(*http.Transport)
				require.True(t, ok)
				require.True(t, transport.TLSClientConfig.InsecureSkipVerify)
			},
		},
		{
			name: "Nil options fall back to defaults",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return nil
			},
			validateOption: func(t *testing.T, loader *FromHTTP) {
				t.Helper()
				require.Equal(t, 30*time.Second, loader.options.Timeout)
				require.NotNil(t, loader.options.Headers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			options := tt.optionsModifier(DefaultHTTPOptions())
			loader, err := NewFromHTTPWithOptions("https://example.com/demo.wasm", options)
			require.NoError(t, err)
			tt.validateOption(t, loader)
		})
	}
}

func TestFromHTTPGetReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		url              string
		optionsModifier  func(options *HTTPOptions) *HTTPOptions
		customResp       func() *http.Response
		mockError        error
		requestValidator func(t *testing.T, req *http.Request)
		expectError      bool
		errorIs          error
		errorContains    string
	}{
		{
			name: "Success - Default",
			url:  "https://example.com/demo.wasm",
			customResp: func() *http.Response {
				return newMockResponse(http.StatusOK, testModule)
			},
			requestValidator: func(t *testing.T, req *http.Request) {
				t.Helper()
				require.Equal(t, "https://example.com/demo.wasm", req.URL.String())
				require.Equal(t, http.MethodGet, req.Method)
				require.Equal(t, "go-wasmbridge/http-loader", req.Header.Get("User-Agent"))
			},
		},
		{
			name: "Success - Basic Auth",
			url:  "https://example.com/auth",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				return options.WithBasicAuth("user", "pass").WithTimeout(5 * time.Second)
			},
			customResp: func() *http.Response {
				return newMockResponse(http.StatusOK, testModule)
			},
			requestValidator: func(t *testing.T, req *http.Request) {
				t.Helper()
				username, password, ok := req.BasicAuth()
				require.True(t, ok, "Expected Basic Auth to be set")
				require.Equal(t, "user", username)
				require.Equal(t, "pass", password)
			},
		},
		{
			name: "Success - Custom Headers",
			url:  "https://example.com/demo.wasm",
			optionsModifier: func(options *HTTPOptions) *HTTPOptions {
				options.Headers["User-Agent"] = "Custom-Agent"
				options.Headers["X-Custom"] = "value"
				return options.WithBearerAuth("test-token")
			},
			customResp: func() *http.Response {
				return newMockResponse(http.StatusOK, testModule)
			},
			requestValidator: func(t *testing.T, req *http.Request) {
				t.Helper()
				require.Equal(t, "Custom-Agent", req.Header.Get("User-Agent"))
				require.Equal(t, "value", req.Header.Get("X-Custom"))
				require.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			},
		},
		{
			name: "Failure - Unauthorized",
			url:  "https://example.com/auth",
			customResp: func() *http.Response {
				return newMockResponse(http.StatusUnauthorized, []byte("Unauthorized"))
			},
			expectError:   true,
			errorIs:       ErrModuleNotAvailable,
			errorContains: "HTTP 401",
		},
		{
			name: "Failure - Not Found",
			url:  "https://example.com/missing.wasm",
			customResp: func() *http.Response {
				return newMockResponse(http.StatusNotFound, []byte("Not Found"))
			},
			expectError:   true,
			errorIs:       ErrModuleNotAvailable,
			errorContains: "HTTP 404",
		},
		{
			name:          "Failure - Network Error",
			url:           "https://invalid-domain.example",
			mockError:     errors.New("network error"),
			expectError:   true,
			errorContains: "failed to execute HTTP request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			options := DefaultHTTPOptions()
			if tt.optionsModifier != nil {
				options = tt.optionsModifier(options)
			}

			loader, err := NewFromHTTPWithOptions(tt.url, options)
			require.NoError(t, err, "Failed to create HTTP loader")

			loader.client = &mockHTTPClient{
				doFunc: func(req *http.Request) (*http.Response, error) {
					if tt.requestValidator != nil {
						tt.requestValidator(t, req)
					}
					if tt.mockError != nil {
						return nil, tt.mockError
					}
					return tt.customResp(), nil
				},
			}

			reader, err := loader.GetReader()
			if tt.expectError {
				require.Error(t, err)
				if tt.errorIs != nil {
					require.ErrorIs(t, err, tt.errorIs)
				}
				if tt.errorContains != "" {
					require.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, reader)
			defer reader.Close()

			content, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.Equal(t, testModule, content)
		})
	}
}

func TestFromHTTPGetReaderWithContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ctx         func() (context.Context, context.CancelFunc)
		expectError error
	}{
		{
			name: "Success - Background Context",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
		},
		{
			name: "Failure - Cancelled Context",
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			expectError: context.Canceled,
		},
		{
			name: "Failure - Expired Deadline",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
			},
			expectError: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFromHTTP("https://example.com/demo.wasm")
			require.NoError(t, err)

			loader.client = &mockHTTPClient{
				doFunc: func(req *http.Request) (*http.Response, error) {
					if err := req.Context().Err(); err != nil {
						return nil, err
					}
					return newMockResponse(http.StatusOK, testModule), nil
				},
			}

			ctx, cancel := tt.ctx()
			defer cancel()

			reader, err := loader.GetReaderWithContext(ctx)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, reader)
			require.NoError(t, reader.Close())
		})
	}
}

func TestFromHTTPWithServer(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/zig-out/bin/wasmtest.wasm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/wasm")
		_, _ = w.Write(testModule)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Run("serves module bytes", func(t *testing.T) {
		t.Parallel()
		loader, err := NewFromHTTP(server.URL + "/zig-out/bin/wasmtest.wasm")
		require.NoError(t, err)

		reader, err := loader.GetReaderWithContext(context.Background())
		require.NoError(t, err)
		defer reader.Close()

		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		require.Equal(t, testModule, content)
	})

	t.Run("missing module is not available", func(t *testing.T) {
		t.Parallel()
		loader, err := NewFromHTTP(server.URL + "/nope.wasm")
		require.NoError(t, err)

		reader, err := loader.GetReader()
		require.ErrorIs(t, err, ErrModuleNotAvailable)
		require.Contains(t, err.Error(), "HTTP 404")
		require.Nil(t, reader)
	})
}

func TestFromHTTPString(t *testing.T) {
	t.Parallel()

	loader, err := NewFromHTTPWithOptions(
		"https://example.com/demo.wasm",
		DefaultHTTPOptions().WithBasicAuth("user", "secret"),
	)
	require.NoError(t, err)

	str := loader.String()
	require.Contains(t, str, "loader.FromHTTP{URL: https://example.com/demo.wasm")
	require.Contains(t, str, "Auth: Basic")
	require.NotContains(t, str, "secret")
}
