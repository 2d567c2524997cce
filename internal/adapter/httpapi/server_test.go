package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/storefront-service/internal/adapter/cache"
	"github.com/example/storefront-service/internal/adapter/telegram"
	"github.com/example/storefront-service/internal/domain"
	"github.com/example/storefront-service/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubmitter struct {
	err error
	got []domain.Submission
}

func (s *stubSubmitter) Submit(_ context.Context, sub domain.Submission) error {
	if s.err != nil {
		return s.err
	}
	s.got = append(s.got, sub)
	return nil
}

func newTestServer(submitter domain.OrderSubmitter) *Server {
	catalog := cache.NewMemoryCatalog()
	phones := &domain.Category{ID: 2, Name: "Telefonlar", IsActive: true}
	bags := &domain.Category{ID: 3, Name: "Sumkalar", IsActive: true}
	catalog.Replace([]domain.Product{
		{ID: 1, Name: "Olma telefon", Description: "flagman", Price: 10000, Currency: "UZS", Category: phones, IsActive: true},
		{ID: 2, Name: "Teri sumka", Description: "qo'lda tikilgan", Price: 25000, Currency: "UZS", Category: bags, IsActive: true},
	}, []domain.Category{*phones, *bags, {ID: 9, Name: "Arxiv", IsActive: false}})

	m := metrics.NewStoreMetrics(prometheus.NewRegistry())
	return NewServer(catalog, submitter, telegram.NopBridge{}, m, zap.NewNop())
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

func do(t *testing.T, s *Server, method, path, sessionID string, body any) (*httptest.ResponseRecorder, envelope, string) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env, w.Header().Get(sessionHeader)
}

func TestCartFlowOverHTTP(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	w, env, sid := do(t, s, http.MethodPost, "/api/cart/items", "", map[string]int64{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	require.NotEmpty(t, sid)

	// same product again increments
	_, env, _ = do(t, s, http.MethodPost, "/api/cart/items", sid, map[string]int64{"product_id": 1})
	var snap domain.CartSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)

	_, env, _ = do(t, s, http.MethodPatch, "/api/cart/items/1", sid, map[string]int{"quantity": 3})
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, int64(30000), snap.TotalAmount)
	assert.Equal(t, 3, snap.ItemCount)

	_, env, _ = do(t, s, http.MethodDelete, "/api/cart/items/1", sid, nil)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Empty(t, snap.Items)
}

func TestAddUnknownProduct(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	w, env, _ := do(t, s, http.MethodPost, "/api/cart/items", "", map[string]int64{"product_id": 404})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "product not found", env.Message)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	_, _, first := do(t, s, http.MethodPost, "/api/cart/items", "", map[string]int64{"product_id": 1})

	_, env, second := do(t, s, http.MethodGet, "/api/cart", "", nil)
	require.NotEqual(t, first, second)
	var snap domain.CartSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Empty(t, snap.Items)
}

func TestFilterAndListing(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	_, env, sid := do(t, s, http.MethodGet, "/api/products", "", nil)
	var listing productListing
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Equal(t, 2, listing.Count)

	cat := int64(2)
	_, env, _ = do(t, s, http.MethodPut, "/api/filter", sid, filterRequest{Category: &cat, SearchText: "olma"})
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, int64(1), listing.Products[0].ID)

	// absent category means "all"
	_, env, _ = do(t, s, http.MethodPut, "/api/filter", sid, filterRequest{SearchText: ""})
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Equal(t, 2, listing.Count)
}

func TestCategoriesListingSkipsInactive(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	_, env, _ := do(t, s, http.MethodGet, "/api/categories", "", nil)
	var categories []domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.True(t, c.IsActive)
	}
}

func TestOrderSubmissionFlow(t *testing.T) {
	submitter := &stubSubmitter{}
	s := newTestServer(submitter)

	_, _, sid := do(t, s, http.MethodPost, "/api/cart/items", "", map[string]int64{"product_id": 2})

	// submitting without an open form is rejected
	w, _, _ := do(t, s, http.MethodPost, "/api/order", sid, domain.OrderDraft{Phone: "+998901234567", Address: "Tashkent"})
	assert.Equal(t, http.StatusConflict, w.Code)

	do(t, s, http.MethodPost, "/api/order/open", sid, nil)

	// validation failure keeps the form open and the cart intact
	w, env, _ := do(t, s, http.MethodPost, "/api/order", sid, domain.OrderDraft{Address: "Tashkent"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Message, "phone")
	assert.Empty(t, submitter.got)

	_, env, _ = do(t, s, http.MethodGet, "/api/cart", sid, nil)
	var snap domain.CartSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Len(t, snap.Items, 1)

	// corrected draft goes through; cart is cleared afterwards
	w, env, _ = do(t, s, http.MethodPost, "/api/order", sid, domain.OrderDraft{Phone: "+998901234567", Address: "Tashkent"})
	require.Equal(t, http.StatusCreated, w.Code)
	var sub domain.Submission
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	assert.Equal(t, int64(25000), sub.Total)
	assert.Equal(t, domain.OrderStatusPending, sub.Status)
	require.Len(t, submitter.got, 1)

	_, env, _ = do(t, s, http.MethodGet, "/api/cart", sid, nil)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Empty(t, snap.Items)
}

func TestOrderSubmitEmptyCart(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	_, _, sid := do(t, s, http.MethodPost, "/api/order/open", "", nil)
	w, env, _ := do(t, s, http.MethodPost, "/api/order", sid, domain.OrderDraft{Phone: "+998901234567", Address: "Tashkent"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestOrderSubmitCollaboratorFailure(t *testing.T) {
	s := newTestServer(&stubSubmitter{err: errors.New("broker down")})

	_, _, sid := do(t, s, http.MethodPost, "/api/cart/items", "", map[string]int64{"product_id": 1})
	do(t, s, http.MethodPost, "/api/order/open", sid, nil)

	w, _, _ := do(t, s, http.MethodPost, "/api/order", sid, domain.OrderDraft{Phone: "+998901234567", Address: "Tashkent"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// cart survives a failed handoff
	_, env, _ := do(t, s, http.MethodGet, "/api/cart", sid, nil)
	var snap domain.CartSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Len(t, snap.Items, 1)
}

func TestOrderCancel(t *testing.T) {
	s := newTestServer(&stubSubmitter{})

	_, _, sid := do(t, s, http.MethodPost, "/api/order/open", "", nil)
	_, env, _ := do(t, s, http.MethodPost, "/api/order/cancel", sid, nil)
	var flow flowResponse
	require.NoError(t, json.Unmarshal(env.Data, &flow))
	assert.Equal(t, "idle", flow.State)
}
