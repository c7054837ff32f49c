package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, legacy bool) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Options{BaseURL: server.URL + "/api/", LegacyAuthHeader: legacy}), server
}

func TestDoParsesJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Account/profile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"code":1,"msg":"ok","data":{"nickname":"amy"}}`)
	}, true)

	resp, err := Fetch[struct {
		Nickname string `json:"nickname"`
	}](context.Background(), client, Request{Path: "/Account/profile", Query: map[string]string{"page": "2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.CodeValue() != 1 || resp.Data.Nickname != "amy" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDoParsesJSONServedAsText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "\xEF\xBB\xBF  {\"code\":1,\"data\":[]}\n")
	}, true)

	resp, err := Fetch[struct{ Title string }](context.Background(), client, Request{Path: "Cms/page"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.CodeValue() != 1 {
		t.Errorf("expected code 1, got %d", resp.CodeValue())
	}
}

func TestDoRejectsNonJSON(t *testing.T) {
	body := "<html>" + strings.Repeat("x", 300) + "</html>"
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, body)
	}, true)

	_, err := client.Do(context.Background(), Request{Path: "/x"})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Snippet != body[:100] {
		t.Errorf("expected first 100 characters, got %q", parseErr.Snippet)
	}
}

func TestDoHTTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		contains    []string
	}{
		{
			name:        "msg field",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"msg":"bad request"}`,
			contains:    []string{"400", "bad request"},
		},
		{
			name:        "message field",
			status:      http.StatusForbidden,
			contentType: "application/json",
			body:        `{"message":"forbidden here"}`,
			contains:    []string{"403", "forbidden here"},
		},
		{
			name:        "raw json",
			status:      http.StatusConflict,
			contentType: "application/json",
			body:        `{"error":"dup"}`,
			contains:    []string{"409", `{"error":"dup"}`},
		},
		{
			name:        "non json body",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "<h1>bad gateway</h1>",
			contains:    []string{"HTTP error! status: 502"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, true)

			_, err := client.Do(context.Background(), Request{Path: "/x"})
			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if httpErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, httpErr.Status)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
		})
	}
}

func TestDoFormDataIsNotJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if strings.Contains(ct, "application/json") {
			t.Errorf("multipart request got JSON content type %q", ct)
		}
		if !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("expected multipart content type, got %q", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.MultipartForm.Value["tag"]; len(got) != 2 {
			t.Errorf("expected repeated field, got %v", got)
		}
		if r.FormValue("money") != "100" {
			t.Errorf("expected money=100, got %q", r.FormValue("money"))
		}
		if _, ok := r.MultipartForm.File["image"]; !ok {
			t.Error("expected image part")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"code":1}`)
	}, true)

	form := NewFormData().
		Append("money", "100").
		Append("tag", "a").
		Append("tag", "b").
		AppendFile("image", "proof.png", strings.NewReader("png-bytes"))
	if _, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/Recharge/submitOrder", Body: form}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoTextOnlyFormIsMultipart(t *testing.T) {
	tests := []struct {
		name   string
		form   *FormData
		fields map[string]string
	}{
		{
			name:   "fields only",
			form:   NewFormData().Append("recharge_id", "5").Append("money", "100"),
			fields: map[string]string{"recharge_id": "5", "money": "100"},
		},
		{
			name:   "empty",
			form:   NewFormData(),
			fields: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				ct := r.Header.Get("Content-Type")
				if !strings.HasPrefix(ct, "multipart/form-data") {
					t.Errorf("expected multipart content type, got %q", ct)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("parse multipart: %v", err)
				}
				if len(r.MultipartForm.Value) != len(tt.fields) {
					t.Errorf("expected %d fields, got %v", len(tt.fields), r.MultipartForm.Value)
				}
				for key, want := range tt.fields {
					if got := r.MultipartForm.Value[key]; len(got) != 1 || got[0] != want {
						t.Errorf("expected %s=%s, got %v", key, want, got)
					}
				}
				if len(r.MultipartForm.File) != 0 {
					t.Errorf("expected no file parts, got %v", r.MultipartForm.File)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"code":1}`)
			}, true)

			if _, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/Recharge/submitOrder", Body: tt.form}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDoContentTypeRules(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		body   Body
		want   string
	}{
		{name: "json body", body: JSONBody(`{"a":1}`), want: "application/json"},
		{name: "no body", want: "application/json"},
		{name: "explicit content type wins", header: map[string]string{"content-type": "text/plain"}, body: JSONBody("hi"), want: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Content-Type"); got != tt.want {
					t.Errorf("expected content type %q, got %q", tt.want, got)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"code":1}`)
			}, true)
			if _, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/x", Header: tt.header, Body: tt.body}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDoTokenHeaders(t *testing.T) {
	tests := []struct {
		name       string
		legacy     bool
		token      string
		header     map[string]string
		wantToken  string
		wantLegacy bool
		legacyVal  string
	}{
		{name: "token with legacy shim", legacy: true, token: "tok", wantToken: "tok", wantLegacy: true, legacyVal: ""},
		{name: "legacy shim disabled", legacy: false, token: "tok", wantToken: "tok", wantLegacy: false},
		{name: "caller legacy value kept", legacy: true, token: "tok", header: map[string]string{"batoken": "old"}, wantToken: "tok", wantLegacy: true, legacyVal: "old"},
		{name: "no token", legacy: true, wantToken: "", wantLegacy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get(TokenHeader); got != tt.wantToken {
					t.Errorf("expected token %q, got %q", tt.wantToken, got)
				}
				values, ok := r.Header[http.CanonicalHeaderKey(LegacyTokenHeader)]
				if ok != tt.wantLegacy {
					t.Errorf("expected legacy header present=%v, got %v", tt.wantLegacy, ok)
				}
				if ok && values[0] != tt.legacyVal {
					t.Errorf("expected legacy value %q, got %q", tt.legacyVal, values[0])
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"code":1}`)
			}, tt.legacy)
			if _, err := client.Do(context.Background(), Request{Path: "/x", Token: tt.token, Header: tt.header}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDoTransportFailureIsFlagged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := New(Options{BaseURL: base, LegacyAuthHeader: true})
	_, err := client.Do(context.Background(), Request{Path: "/x"})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !transportErr.PossibleCORS {
		t.Error("expected PossibleCORS flag")
	}
}

func TestDoCancelledContextIsNotFlagged(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"code":1}`)
	}, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Do(ctx, Request{Path: "/x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		t.Error("cancelled request must not be reported as a transport failure")
	}
}

func TestDecodeEnvelopeEmptyData(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "empty array", payload: `{"code":1,"msg":"ok","data":[]}`},
		{name: "empty string", payload: `{"code":0,"msg":"nope","data":""}`},
		{name: "real mismatch", payload: `{"code":1,"data":[1,2]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeEnvelope[struct{ Title string }]([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Code == nil {
				t.Error("expected code to survive")
			}
		})
	}
}
