// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/mockapi"
	"github.com/toeirei/assetdesk/internal/model"
	"github.com/toeirei/assetdesk/internal/session"
)

type fixture struct {
	fake   *mockapi.Server
	store  *session.MemoryStore
	client *api.Client
	now    time.Time
}

// newFixture starts a fake API and a client whose clock the test controls.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{fake: mockapi.New(), now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	srv := httptest.NewServer(f.fake)
	t.Cleanup(srv.Close)

	f.store = session.NewMemoryStore(session.WithClock(func() time.Time { return f.now }))
	f.client = api.New(srv.URL+"/", f.store, api.WithHTTPClient(srv.Client()), api.WithUserAgent("assetdesk-test"))
	return f
}

func (f *fixture) loggedIn(t *testing.T) *fixture {
	t.Helper()
	if err := f.store.Set(f.fake.IssueToken(), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	return f
}

func TestCreateThenList_RoundTrip(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	ctx := context.Background()

	in := model.AssetInput{Name: "Laptop-01", StatusID: "s1", LocationID: "l1"}
	if err := f.client.CreateAsset(ctx, in); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	assets, err := f.client.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	a := assets[0]
	if a.ID == "" || a.Name != "Laptop-01" || a.StatusID != "s1" || a.LocationID != "l1" {
		t.Fatalf("unexpected asset %+v", a)
	}

	d, err := f.client.GetAsset(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if d.Status.Name != "Active" || d.Location.Name != "Warehouse A" {
		t.Fatalf("unexpected detail %+v", d)
	}
	if d.Input() != in {
		t.Fatalf("detail does not round-trip to input: %+v", d.Input())
	}
}

func TestListAssets_PreservesOrderAndPages(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	names := []string{"Projector", "Chair", "Whiteboard"}
	for _, n := range names {
		f.fake.SeedAsset(n, "s2", "l2")
	}
	for i := 0; i < 9; i++ {
		f.fake.SeedAsset("Filler", "s1", "l1")
	}

	assets, err := f.client.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != api.PageSize {
		t.Fatalf("expected only the first page (%d), got %d", api.PageSize, len(assets))
	}
	for i, n := range names {
		if assets[i].Name != n {
			t.Fatalf("order not preserved at %d: %q", i, assets[i].Name)
		}
	}

	page, err := f.client.AssetPage(context.Background())
	if err != nil {
		t.Fatalf("AssetPage: %v", err)
	}
	if page.Count != 12 || page.PageCount != 2 || page.Page != api.FirstPage || len(page.Results) != 10 {
		t.Fatalf("unexpected page metadata %+v", page)
	}
}

func TestNoCredential_FailsWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := model.AssetInput{Name: "Laptop-01", StatusID: "s1", LocationID: "l1"}

	calls := map[string]func() error{
		"create": func() error { return f.client.CreateAsset(ctx, in) },
		"update": func() error { return f.client.UpdateAsset(ctx, "a1", in) },
		"delete": func() error { return f.client.DeleteAsset(ctx, "a1") },
		"list":   func() error { _, err := f.client.ListAssets(ctx); return err },
		"detail": func() error { _, err := f.client.GetAsset(ctx, "a1"); return err },
		"status": func() error { _, err := f.client.ListStatuses(ctx); return err },
		"agg":    func() error { _, err := f.client.AggregateByLocation(ctx); return err },
		"logout": func() error { return f.client.Logout(ctx) },
	}
	for name, fn := range calls {
		if err := fn(); !errors.Is(err, api.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
	if n := f.fake.Requests(); n != 0 {
		t.Fatalf("expected no requests, fake saw %d", n)
	}
	if f.client.Authenticated() {
		t.Fatalf("expected Authenticated() false")
	}
}

func TestInvalidInput_NoRequest(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	err := f.client.CreateAsset(context.Background(), model.AssetInput{Name: "Laptop-01"})
	if !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var ie *api.InputError
	if !errors.As(err, &ie) || len(ie.Fields) != 2 {
		t.Fatalf("expected two missing fields, got %v", err)
	}
	if err := f.client.DeleteAsset(context.Background(), ""); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
	if f.fake.Requests() != 0 {
		t.Fatalf("expected no requests for invalid input, got %d", f.fake.Requests())
	}
}

type read struct {
	name string
	path string
	call func(context.Context, *api.Client) error
}

var reads = []read{
	{"ListAssets", "/asset/", func(ctx context.Context, c *api.Client) error {
		got, err := c.ListAssets(ctx)
		return degradedSlice(got, err)
	}},
	{"AssetPage", "/asset/", func(ctx context.Context, c *api.Client) error {
		page, err := c.AssetPage(ctx)
		if err != nil && page.Results != nil {
			return errors.New("failed AssetPage returned results")
		}
		return err
	}},
	{"ListStatuses", "/status/", func(ctx context.Context, c *api.Client) error {
		got, err := c.ListStatuses(ctx)
		return degradedSlice(got, err)
	}},
	{"ListLocations", "/location/", func(ctx context.Context, c *api.Client) error {
		got, err := c.ListLocations(ctx)
		return degradedSlice(got, err)
	}},
	{"AggregateByStatus", "/home/agg-asset-by-status/", func(ctx context.Context, c *api.Client) error {
		got, err := c.AggregateByStatus(ctx)
		return degradedSlice(got, err)
	}},
	{"AggregateByLocation", "/home/agg-asset-by-location/", func(ctx context.Context, c *api.Client) error {
		got, err := c.AggregateByLocation(ctx)
		return degradedSlice(got, err)
	}},
	{"GetAsset", "/asset/x1", func(ctx context.Context, c *api.Client) error {
		detail, err := c.GetAsset(ctx, "x1")
		if d, ok := api.OrAbsent(detail, err); err != nil && (ok || d.ID != "") {
			return errors.New("failed GetAsset must degrade to absent")
		}
		return err
	}},
}

// degradedSlice passes err through and checks that a failed read still
// degrades to an empty, non-nil slice.
func degradedSlice[T any](got []T, err error) error {
	if err == nil {
		return nil
	}
	if d := api.OrEmpty(got, err); d == nil || len(d) != 0 {
		return errors.New("failed read must degrade to an empty slice")
	}
	return err
}

func TestReadFailures_AreExplicitAndDegradable(t *testing.T) {
	ctx := context.Background()

	for _, r := range reads {
		t.Run(r.name+"/status", func(t *testing.T) {
			f := newFixture(t).loggedIn(t)
			f.fake.FailNext(r.path, http.StatusInternalServerError)
			err := r.call(ctx, f.client)
			var se *api.StatusError
			if !errors.As(err, &se) || se.Code != http.StatusInternalServerError || se.Path != r.path {
				t.Fatalf("expected StatusError 500 for %s, got %v", r.path, err)
			}
		})

		t.Run(r.name+"/malformed", func(t *testing.T) {
			f := newFixture(t).loggedIn(t)
			f.fake.SetMalformed(r.path, true)
			if err := r.call(ctx, f.client); !errors.Is(err, api.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})

		t.Run(r.name+"/transport", func(t *testing.T) {
			srv := httptest.NewServer(mockapi.New())
			srv.Close()
			store := session.NewMemoryStore()
			if err := store.Set("token", 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			client := api.New(srv.URL, store)

			err := r.call(ctx, client)
			var ue *url.Error
			if !errors.As(err, &ue) {
				t.Fatalf("expected a transport error, got %v", err)
			}
			if errors.Is(err, api.ErrMalformedResponse) || errors.Is(err, api.ErrUnauthenticated) {
				t.Fatalf("transport error misclassified: %v", err)
			}
		})
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	if _, err := f.client.GetAsset(context.Background(), "missing"); !api.HasStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestWithTimeout_DoesNotMutateSharedClient(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer slow.Close()

	shared := &http.Client{}
	store := session.NewMemoryStore()
	if err := store.Set("token", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	client := api.New(slow.URL, store, api.WithHTTPClient(shared), api.WithTimeout(20*time.Millisecond))

	if shared.Timeout != 0 {
		t.Fatalf("shared client was modified, timeout = %s", shared.Timeout)
	}
	if _, err := client.ListStatuses(context.Background()); err == nil {
		t.Fatalf("expected the request to time out")
	}
}

func TestWriteFailure_ReturnsStatusError(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	f.fake.FailNext("/asset/", http.StatusBadGateway)
	err := f.client.CreateAsset(context.Background(), model.AssetInput{Name: "n", StatusID: "s1", LocationID: "l1"})
	if !api.HasStatus(err, http.StatusBadGateway) {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
	if len(f.fake.Assets()) != 0 {
		t.Fatalf("failed create must not add a row")
	}
}

func TestAggregates_TaggedWithKind(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	f.fake.SeedAsset("Desk", "s1", "l3")

	byLoc, err := f.client.AggregateByLocation(context.Background())
	if err != nil {
		t.Fatalf("AggregateByLocation: %v", err)
	}
	if len(byLoc) != 3 || byLoc[2].Group.Name != "Branch Office" || byLoc[2].Count != 1 {
		t.Fatalf("unexpected aggregates %+v", byLoc)
	}
	for _, a := range byLoc {
		if a.Kind != model.GroupLocation {
			t.Fatalf("expected location kind, got %q", a.Kind)
		}
	}
}

func TestLogin_PersistsUntilExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, ok := f.store.Get(); !ok {
		t.Fatalf("expected token to be stored")
	}
	if _, err := f.client.ListStatuses(ctx); err != nil {
		t.Fatalf("authenticated call failed: %v", err)
	}

	f.now = f.now.Add(session.DefaultTTL)
	if f.client.Authenticated() {
		t.Fatalf("expected credential to expire after the default ttl")
	}
	if _, err := f.client.ListStatuses(ctx); !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after expiry, got %v", err)
	}
}

func TestLogin_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail, Password: "wrong"})
	if !errors.Is(err, api.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail}); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing password, got %v", err)
	}

	f.fake.FailNext("/auth/login", http.StatusInternalServerError)
	err = f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword})
	if errors.Is(err, api.ErrInvalidCredentials) || !api.HasStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected a plain StatusError for 500, got %v", err)
	}

	f.fake.SetMalformed("/auth/login", true)
	err = f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword})
	if !errors.Is(err, api.ErrInvalidCredentials) {
		t.Fatalf("expected tokenless 2xx to be invalid credentials, got %v", err)
	}
	if f.client.Authenticated() {
		t.Fatalf("no credential should be stored after failed logins")
	}
}

func TestLogout_ClearsCredentialAndHeader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.client.Login(ctx, model.Credentials{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.client.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if f.fake.LastAuthorization() == "" {
		t.Fatalf("logout request must carry the bearer header")
	}

	before := f.fake.Requests()
	if _, err := f.client.ListAssets(ctx); !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
	if f.fake.Requests() != before {
		t.Fatalf("no request should reach the server after logout")
	}
}

func TestLogout_ServerErrors(t *testing.T) {
	f := newFixture(t).loggedIn(t)
	ctx := context.Background()

	f.fake.FailNext("/auth/logout", http.StatusInternalServerError)
	if err := f.client.Logout(ctx); !api.HasStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected 500, got %v", err)
	}
	if !f.client.Authenticated() {
		t.Fatalf("credential must survive a failed logout")
	}

	f.fake.FailNext("/auth/logout", http.StatusUnauthorized)
	if err := f.client.Logout(ctx); err != nil {
		t.Fatalf("401 on logout should count as logged out, got %v", err)
	}
	if f.client.Authenticated() {
		t.Fatalf("credential must be cleared after a 401 logout")
	}
}

func TestDegradeHelpers(t *testing.T) {
	if got := api.OrEmpty([]int{1, 2}, nil); len(got) != 2 {
		t.Fatalf("OrEmpty must pass values through, got %v", got)
	}
	if got := api.OrEmpty[int](nil, nil); got == nil {
		t.Fatalf("OrEmpty must never return nil")
	}
	if v, ok := api.OrAbsent(5, errors.New("boom")); ok || v != 0 {
		t.Fatalf("OrAbsent must drop value on error")
	}
}
