package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"collectibles/internal/config"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/session"
	"collectibles/internal/storage"
	"collectibles/internal/transport"

	"github.com/sirupsen/logrus"
)

type recorded struct {
	Method string
	Path   string
	Header http.Header
	Query  map[string]string
	Form   map[string][]string
	Files  map[string]string
	JSON   map[string]any
}

// fakePlatform answers by path and records every request it sees.
type fakePlatform struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func (f *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Query:  map[string]string{},
	}
	for k := range r.URL.Query() {
		rec.Query[k] = r.URL.Query().Get(k)
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			rec.Form = r.MultipartForm.Value
			rec.Files = map[string]string{}
			for field, headers := range r.MultipartForm.File {
				if len(headers) > 0 {
					rec.Files[field] = headers[0].Filename
				}
			}
		}
	} else if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.JSON)
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	handler, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":0,"msg":"no route"}`))
		return
	}
	handler(w, r)
}

func (f *fakePlatform) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func (f *fakePlatform) callsTo(path string) []recorded {
	var out []recorded
	for _, rec := range f.calls() {
		if rec.Path == path {
			out = append(out, rec)
		}
	}
	return out
}

func jsonReply(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

const okEmpty = `{"code":1,"msg":"ok","data":[]}`

type harness struct {
	client   *Client
	session  *session.Session
	platform *fakePlatform
	failures []string
}

func newHarness(t *testing.T, routes map[string]func(http.ResponseWriter, *http.Request)) *harness {
	t.Helper()
	platform := &fakePlatform{routes: routes}
	srv := httptest.NewServer(platform)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logrus.NewEntry(logger)

	sess := session.New(storage.NewLocal(storage.NewMemoryStore(), "test:"), session.WithLogger(entry))
	tc := transport.New(transport.Options{
		BaseURL:          srv.URL + "/api",
		LegacyAuthHeader: true,
		Logger:           entry,
	})
	h := &harness{session: sess, platform: platform}
	target := config.Target{BaseURL: srv.URL + "/api", Origin: "https://cdn.example.com"}
	h.client = NewClient(tc, sess, target,
		WithLogger(entry),
		WithCompensationHandler(func(_ context.Context, lookup string, err error) {
			h.failures = append(h.failures, lookup+": "+err.Error())
		}),
	)
	return h
}

func (h *harness) login(t *testing.T, token string) {
	t.Helper()
	if err := h.session.Login(context.Background(), token, &dto.UserInfo{ID: 1, Mobile: "13800000000"}); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestSubmitRechargeSendsMultipartWithoutImage(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Recharge/submitOrder": jsonReply(http.StatusOK, `{"code":1,"msg":"submitted","data":{"order_no":"R1"}}`),
	})
	h.login(t, "tok-1")

	resp, err := h.client.SubmitRecharge(context.Background(), dto.RechargeRequest{
		CompanyAccountID: 5,
		Amount:           "100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Msg != "submitted" {
		t.Errorf("expected response passed through, got %+v", resp)
	}

	calls := h.platform.callsTo("/api/Recharge/submitOrder")
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	call := calls[0]
	if call.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", call.Method)
	}
	if ct := call.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		t.Errorf("expected multipart body, got %q", ct)
	}
	if got := call.Form["recharge_id"]; len(got) != 1 || got[0] != "5" {
		t.Errorf("expected recharge_id=5, got %v", got)
	}
	if got := call.Form["money"]; len(got) != 1 || got[0] != "100" {
		t.Errorf("expected money=100, got %v", got)
	}
	if _, ok := call.Form["image"]; ok {
		t.Error("expected no image field")
	}
	if _, ok := call.Files["image"]; ok {
		t.Error("expected no image file")
	}
	if call.Header.Get(transport.TokenHeader) != "tok-1" {
		t.Errorf("expected session token header, got %q", call.Header.Get(transport.TokenHeader))
	}
}

func TestSubmitRechargeWithScreenshot(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Recharge/submitOrder": jsonReply(http.StatusOK, okEmpty),
	})
	h.login(t, "tok-1")

	_, err := h.client.SubmitRecharge(context.Background(), dto.RechargeRequest{
		CompanyAccountID: 5,
		Amount:           "88.50",
		Screenshot:       "/uploads/proof.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	call := h.platform.callsTo("/api/Recharge/submitOrder")[0]
	if got := call.Form["image"]; len(got) != 1 || got[0] != "/uploads/proof.png" {
		t.Errorf("expected image field, got %v", got)
	}
}

func TestValidationFailsBeforeNetwork(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){})
	h.login(t, "tok-1")
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{
			name: "recharge amount",
			call: func() error {
				_, err := h.client.SubmitRecharge(ctx, dto.RechargeRequest{CompanyAccountID: 5, Amount: "abc"})
				return err
			},
			field: "money",
		},
		{
			name: "recharge account",
			call: func() error {
				_, err := h.client.SubmitRecharge(ctx, dto.RechargeRequest{Amount: "100"})
				return err
			},
			field: "recharge_id",
		},
		{
			name: "check-in phone",
			call: func() error {
				_, err := h.client.CheckIn(ctx, dto.CheckInRequest{Mobile: "12345", Password: "secret12"})
				return err
			},
			field: "mobile",
		},
		{
			name: "static income must be whole",
			call: func() error {
				_, err := h.client.SubmitWithdraw(ctx, dto.WithdrawRequest{
					PaymentAccountID: 1,
					Amount:           "150.5",
					PayPassword:      "123456",
					BalanceType:      dto.BalanceStaticIncome,
				})
				return err
			},
			field: "money",
		},
		{
			name: "withdraw above limit",
			call: func() error {
				_, err := h.client.SubmitWithdraw(ctx, dto.WithdrawRequest{PaymentAccountID: 1, Amount: "50000.01", PayPassword: "123456"})
				return err
			},
			field: "money",
		},
		{
			name: "real name checksum",
			call: func() error {
				_, err := h.client.SubmitRealName(ctx, dto.RealNameRequest{
					RealName:    "张三",
					IDCard:      "110105194912310021",
					IDCardFront: "/a.png",
					IDCardBack:  "/b.png",
				})
				return err
			},
			field: "id_card",
		},
		{
			name: "bank card luhn",
			call: func() error {
				_, err := h.client.AddPaymentAccount(ctx, dto.PaymentAccountRequest{
					Type:        dto.PaymentBankCard,
					BankName:    "ICBC",
					AccountName: "张三",
					AccountNo:   "6222021234567890127",
				})
				return err
			},
			field: "account_no",
		},
		{
			name: "transfer to self",
			call: func() error {
				_, err := h.client.Transfer(ctx, dto.TransferRequest{ToMobile: "13800000000", Amount: "1", PayPassword: "123456"})
				return err
			},
			field: "to_mobile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.Message == "" {
				t.Error("expected a message")
			}
		})
	}

	if n := len(h.platform.calls()); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestRealNameStatusRequiresLogin(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Account/realNameStatus": jsonReply(http.StatusOK, `{"code":1,"data":{"status":1}}`),
	})

	_, err := h.client.RealNameStatus(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if !strings.Contains(err.Error(), "please log in") {
		t.Errorf("expected log-in message, got %q", err.Error())
	}
	if n := len(h.platform.calls()); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}

func TestExplicitTokenWinsOverSession(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Account/realNameStatus": jsonReply(http.StatusOK, `{"code":1,"data":{"status":"2","real_name":"张三"}}`),
	})
	h.login(t, "session-token")

	resp, err := h.client.RealNameStatus(context.Background(), WithToken("explicit-token"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Data.Status != dto.RealNamePending {
		t.Errorf("expected pending, got %d", resp.Data.Status)
	}
	call := h.platform.calls()[0]
	if got := call.Header.Get(transport.TokenHeader); got != "explicit-token" {
		t.Errorf("expected explicit token, got %q", got)
	}
	if _, ok := call.Header[http.CanonicalHeaderKey(transport.LegacyTokenHeader)]; !ok {
		t.Error("expected legacy header to be present")
	}
}

func TestApplicationErrorReturnsResponse(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/SignIn/do": jsonReply(http.StatusOK, `{"code":0,"msg":"already signed in today","data":null}`),
	})
	h.login(t, "tok-1")

	resp, err := h.client.SignIn(context.Background())
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != 0 || appErr.Msg != "already signed in today" || appErr.Endpoint != "signIn.do" {
		t.Errorf("unexpected error %+v", appErr)
	}
	if resp == nil || resp.Msg != "already signed in today" {
		t.Errorf("expected the response alongside the error, got %+v", resp)
	}
	if UserMessage(err) != "already signed in today" {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}
	if len(h.platform.callsTo("/api/Account/profile")) != 0 {
		t.Error("expected no profile refresh after a failed sign-in")
	}
}

func TestMissingCodeOnlyAcceptedForLegacyEndpoints(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Cms/page":        jsonReply(http.StatusOK, `{"data":{"title":"About us","content":"<p>hi</p>"}}`),
		"/api/Help/categories": jsonReply(http.StatusOK, `{"data":[{"id":"3","name":"Wallet"}]}`),
		"/api/Account/profile": jsonReply(http.StatusOK, `{"data":{"id":1}}`),
	})
	h.login(t, "tok-1")
	ctx := context.Background()

	page, err := h.client.Page(ctx, dto.PageAbout)
	if err != nil {
		t.Fatalf("expected legacy page to succeed, got %v", err)
	}
	if page.Data.Title != "About us" {
		t.Errorf("unexpected page %+v", page.Data)
	}
	if q := h.platform.callsTo("/api/Cms/page")[0].Query["type"]; q != "about" {
		t.Errorf("expected type=about, got %q", q)
	}

	cats, err := h.client.HelpCategories(ctx)
	if err != nil || len(cats.Data) != 1 || cats.Data[0].ID != 3 {
		t.Fatalf("unexpected categories %+v, %v", cats, err)
	}

	_, err = h.client.Profile(ctx)
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != -1 {
		t.Fatalf("expected AppError with missing code, got %v", err)
	}
}

func TestRejectedTokenClearsSession(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Account/profile": jsonReply(http.StatusOK, `{"code":401,"msg":"Please login first","data":null}`),
	})
	h.login(t, "stale")

	_, err := h.client.Profile(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if h.session.LoggedIn(context.Background()) {
		t.Error("expected session to be cleared")
	}
}

func TestHTTPAndTransportErrorsPropagate(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Shop/products": jsonReply(http.StatusBadRequest, `{"msg":"bad request"}`),
	})
	_, err := h.client.Products(context.Background(), dto.ProductQuery{Keyword: "vase"})
	var httpErr *transport.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "bad request") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if UserMessage(err) != "bad request" {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}

	dead := NewClient(transport.New(transport.Options{BaseURL: "http://127.0.0.1:1/api"}), nil, config.Target{})
	_, err = dead.Artists(context.Background(), common.BaseParams{})
	var netErr *transport.TransportError
	if !errors.As(err, &netErr) || !netErr.PossibleCORS {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !strings.Contains(UserMessage(err), "network") {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}
}

func TestQueryEndpointsEncodeParameters(t *testing.T) {
	h := newHarness(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/Collection/items": jsonReply(http.StatusOK, `{"code":1,"data":{"current_page":2,"per_page":10,"total":11,"data":[{"id":9,"title":"Jade","price":"12.50"}]}}`),
	})
	q := dto.CollectionQuery{ArtistID: 4, Keyword: " jade ", Sort: "price_desc"}
	q.Page, q.Limit = 2, 10

	resp, err := h.client.CollectionItems(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Price.StringFixed(2) != "12.50" {
		t.Errorf("unexpected items %+v", resp.Data.Items)
	}
	call := h.platform.calls()[0]
	want := map[string]string{"page": "2", "limit": "10", "artist_id": "4", "keyword": "jade", "sort": "price_desc"}
	for k, v := range want {
		if call.Query[k] != v {
			t.Errorf("expected %s=%s, got %q", k, v, call.Query[k])
		}
	}
	if call.Header.Get(transport.TokenHeader) != "" {
		t.Error("expected no token header for an anonymous call")
	}
}
