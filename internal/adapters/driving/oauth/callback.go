// Package oauth provides the OAuth redirect listener and browser utilities.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/logger"
)

// Ensure CallbackServer implements the CallbackReceiver interface.
var _ driven.CallbackReceiver = (*CallbackServer)(nil)

// callbackResult is what the redirect handler hands to WaitForCode.
type callbackResult struct {
	code string
	err  error
}

// CallbackServer captures the authorization redirect on a local HTTP route.
// It holds at most one undelivered result; a second redirect arriving before
// the first is consumed is rejected with 409 Conflict.
type CallbackServer struct {
	mu            sync.Mutex
	host          string
	port          int
	path          string
	expectedState string
	results       chan callbackResult
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a callback server for the given redirect URI.
// The listener binds to the URI's host and port and serves only its path.
// When expectedState is non-empty, redirects carrying a different state are rejected.
func NewCallbackServer(redirectURI, expectedState string) (*CallbackServer, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: redirect uri: %w", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("%w: redirect uri must use http for a local listener", domain.ErrInvalidInput)
	}

	host := u.Hostname()
	if host == "" || host == "localhost" {
		host = "127.0.0.1"
	}

	port := 80
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: redirect uri port %q", domain.ErrInvalidInput, p)
		}
		port = n
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	return &CallbackServer{
		host:          host,
		port:          port,
		path:          path,
		expectedState: expectedState,
		results:       make(chan callbackResult, 1),
	}, nil
}

// Handler returns the HTTP handler serving the callback route.
func (s *CallbackServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)
	return mux
}

// Start starts listening. If the port is 0, a random available port is chosen.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}
	logger.Debug("oauth: callback server listening on %s%s", listener.Addr(), s.path)

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver(callbackResult{err: fmt.Errorf("callback server: %w", err)})
		}
	}()

	return nil
}

// handleCallback processes the redirect from the identity provider.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		errDesc := query.Get("error_description")
		logger.Error("oauth: authorization failed: %s - %s", errParam, errDesc)
		err := fmt.Errorf("%w: %s - %s", domain.ErrConsentDenied, errParam, errDesc)
		s.respond(w, callbackResult{err: err}, http.StatusOK,
			"Authorization failed", html.EscapeString(errDesc))
		return
	}

	if s.expectedState != "" {
		if state := query.Get("state"); state != s.expectedState {
			logger.Warn("oauth: ignoring callback with unexpected state %q", state)
			s.reject(w, "Invalid state parameter.")
			return
		}
	}

	code := query.Get("code")
	if code == "" {
		logger.Warn("oauth: ignoring callback without a code")
		s.reject(w, "No authorization code received.")
		return
	}

	s.respond(w, callbackResult{code: code}, http.StatusOK,
		"Authorization successful!", "You can close this window and return to the application.")
}

// respond hands res to the waiter and renders the page. If a result is
// already waiting, the request is rejected instead.
func (s *CallbackServer) respond(w http.ResponseWriter, res callbackResult, status int, title, message string) {
	if !s.deliver(res) {
		logger.Warn("oauth: rejected callback, %v", domain.ErrCallbackPending)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		_, _ = fmt.Fprint(w, resultHTML("Authorization already received",
			"This sign-in has already been completed. You can close this window."))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, resultHTML(title, message))
}

// reject answers 400 without touching the handoff slot, so a stray request
// cannot end the login.
func (s *CallbackServer) reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprint(w, resultHTML("Authorization failed", message))
}

// deliver puts res in the single slot without blocking.
func (s *CallbackServer) deliver(res callbackResult) bool {
	select {
	case s.results <- res:
		return true
	default:
		return false
	}
}

// WaitForCode blocks until the authorization code is received, the
// identity provider reports an error, or ctx is done.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case res := <-s.results:
		if res.err != nil {
			return "", res.err
		}
		return res.code, nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI for this callback server.
func (s *CallbackServer) RedirectURI() string {
	host := s.host
	if host == "127.0.0.1" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(host, strconv.Itoa(s.Port())), s.path)
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>hagraph - Sign in</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
        }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; }
        p { color: #7B8088; margin: 0; font-size: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, title, message)
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
