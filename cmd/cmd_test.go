package cmd

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"collectibles/internal/api"
	"collectibles/internal/transport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("API_BASE_URL", baseURL)
	t.Setenv("APP_ENV", "production")
	t.Setenv("STATE_STORE", "file")
	t.Setenv("STATE_FILE", filepath.Join(t.TempDir(), "state.json"))
	t.Setenv("LOG_LEVEL", "error")
	tokenFlag = ""
}

func platform(t *testing.T, routes map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/Account/profile" && r.Header.Get(transport.TokenHeader) != "tok-1" {
			_, _ = w.Write([]byte(`{"code":401,"msg":"token expired"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLoginThenProfile(t *testing.T) {
	srv, _ := platform(t, map[string]string{
		"/User/checkIn":    `{"code":1,"msg":"ok","data":{"token":"tok-1","userinfo":{"id":9,"nickname":"alice","mobile":"13800138000"}}}`,
		"/Account/profile": `{"code":1,"data":{"id":9,"nickname":"alice","mobile":"13800138000","money":"12345.6","real_name_status":1}}`,
	})
	setupEnv(t, srv.URL)

	out, err := execute(t, "login", "--mobile", "13800138000", "--password", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "logged in as alice (138****8000)") {
		t.Errorf("unexpected login output %q", out)
	}

	out, err = execute(t, "profile")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	for _, want := range []string{"alice", "138****8000", "12,345.60", "approved"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in profile output:\n%s", want, out)
		}
	}
}

func TestProfileWithoutSession(t *testing.T) {
	srv, calls := platform(t, map[string]string{})
	setupEnv(t, srv.URL)

	_, err := execute(t, "profile")
	if !errors.Is(err, api.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if api.UserMessage(err) != "please log in first" {
		t.Errorf("unexpected message %q", api.UserMessage(err))
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Errorf("expected no requests, got %d", *calls)
	}
}

func TestNoticesReadState(t *testing.T) {
	srv, _ := platform(t, map[string]string{
		"/Notice/list": `{"code":1,"data":{"current_page":1,"last_page":1,"total":2,"data":[` +
			`{"id":1,"type":"system","title":"Maintenance tonight","createtime":1700000000},` +
			`{"id":2,"type":"system","title":"New drop","createtime":1700000100}]}}`,
	})
	setupEnv(t, srv.URL)

	out, err := execute(t, "notices")
	if err != nil {
		t.Fatalf("notices: %v", err)
	}
	if !strings.Contains(out, "2 unread") {
		t.Errorf("expected 2 unread, got:\n%s", out)
	}

	if _, err := execute(t, "notices", "read", "1"); err != nil {
		t.Fatalf("notices read: %v", err)
	}

	out, err = execute(t, "notices", "--unread")
	if err != nil {
		t.Fatalf("notices --unread: %v", err)
	}
	if !strings.Contains(out, "1 unread") || strings.Contains(out, "Maintenance tonight") {
		t.Errorf("expected only notice 2 to remain unread, got:\n%s", out)
	}
	unreadOnlyFlag = false
}

func TestWithdrawValidationSkipsNetwork(t *testing.T) {
	srv, calls := platform(t, map[string]string{})
	setupEnv(t, srv.URL)
	tokenFlag = "tok-1"
	defer func() { tokenFlag = "" }()

	_, err := execute(t, "withdraw", "--account", "3", "--amount", "0.001", "--pay-password", "123456")
	var vErr *api.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Errorf("expected no requests, got %d", *calls)
	}
}

func TestRechargeValidatesBeforeUpload(t *testing.T) {
	srv, calls := platform(t, map[string]string{
		"/Common/upload": `{"code":1,"data":{"url":"/uploads/shot.png"}}`,
	})
	setupEnv(t, srv.URL)
	tokenFlag = "tok-1"
	shot := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(shot, []byte("\x89PNG"), 0o600); err != nil {
		t.Fatal(err)
	}
	defer func() {
		tokenFlag = ""
		screenshotFile = ""
	}()

	tests := []struct {
		name string
		args []string
	}{
		{name: "bad amount", args: []string{"recharge", "submit", "--account", "5", "--amount", "abc", "--screenshot-file", shot}},
		{name: "zero amount", args: []string{"recharge", "submit", "--account", "5", "--amount", "0", "--screenshot-file", shot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			var vErr *api.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != "money" {
				t.Fatalf("expected money validation error, got %v", err)
			}
			if n := atomic.LoadInt32(calls); n != 0 {
				t.Errorf("expected no requests, got %d", n)
			}
		})
	}
}

func TestStateListsAndClearsSession(t *testing.T) {
	srv, _ := platform(t, map[string]string{
		"/User/checkIn": `{"code":1,"msg":"ok","data":{"token":"tok-1","userinfo":{"id":9,"nickname":"alice","mobile":"13800138000"}}}`,
	})
	setupEnv(t, srv.URL)

	out, err := execute(t, "state")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !strings.Contains(out, "0 keys") {
		t.Errorf("expected empty state, got:\n%s", out)
	}

	if _, err := execute(t, "login", "--mobile", "13800138000", "--password", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err = execute(t, "state")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	for _, want := range []string{"user-token", "user-info", "2 keys in file store"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in state output:\n%s", want, out)
		}
	}

	out, err = execute(t, "state", "clear")
	if err != nil {
		t.Fatalf("state clear: %v", err)
	}
	if !strings.Contains(out, "removed 2 keys") {
		t.Errorf("unexpected clear output %q", out)
	}

	_, err = execute(t, "profile")
	if !errors.Is(err, api.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after clear, got %v", err)
	}
}

func TestConfigShowsResolvedTarget(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TARGET", "https://backend.example.com/some/path")
	t.Setenv("API_PREFIX", "/api")

	out, err := execute(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "https://backend.example.com/api") || !strings.Contains(out, "target") {
		t.Errorf("unexpected config output:\n%s", out)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		err   bool
	}{
		{input: "42", want: 42},
		{input: " 7 ", want: 7},
		{input: "0", err: true},
		{input: "-3", err: true},
		{input: "abc", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("unexpected error %v", err)
			}
			if int64(got) != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
