package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/example/storefront-service/internal/domain"
	"github.com/example/storefront-service/internal/metrics"
	"github.com/example/storefront-service/internal/usecase"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-ID"

// Server — презентационный фасад: маршруты транслируют действия
// пользователя в хранилища сессии и отдают новое производное состояние.
type Server struct {
	Router    *mux.Router
	sessions  *Sessions
	catalog   domain.CatalogCache
	submitter domain.OrderSubmitter
	haptics   domain.HapticBridge
	metrics   *metrics.StoreMetrics
	log       *zap.Logger
}

func NewServer(catalog domain.CatalogCache, submitter domain.OrderSubmitter, haptics domain.HapticBridge, m *metrics.StoreMetrics, log *zap.Logger) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		sessions:  NewSessions(),
		catalog:   catalog,
		submitter: submitter,
		haptics:   haptics,
		metrics:   m,
		log:       log,
	}
	s.Router.HandleFunc("/api/categories", s.handleCategories).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/products", s.handleProducts).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/filter", s.handleFilter).Methods(http.MethodPut)
	s.Router.HandleFunc("/api/cart", s.handleCart).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/cart/items", s.handleAddItem).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/cart/items/{id}", s.handleChangeQuantity).Methods(http.MethodPatch)
	s.Router.HandleFunc("/api/cart/items/{id}", s.handleRemoveItem).Methods(http.MethodDelete)
	s.Router.HandleFunc("/api/order/open", s.handleOrderOpen).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/order/cancel", s.handleOrderCancel).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/order", s.handleOrderSubmit).Methods(http.MethodPost)
	s.Router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return s
}

// apiResponse — конверт ответа в формате источника каталога.
type apiResponse struct {
	Data       any                `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	sess := s.sessions.Fetch(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sess.ID)
	return sess
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Data: data, Success: true, Message: "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	all := s.catalog.Categories()
	active := make([]domain.Category, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			active = append(active, c)
		}
	}
	s.writeData(w, http.StatusOK, active)
}

type productListing struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	uc := usecase.BrowseCatalog{Catalog: s.catalog, Filter: sess.Filter}
	visible := uc.Execute()
	s.writeData(w, http.StatusOK, productListing{Products: visible, Count: len(visible)})
}

type filterRequest struct {
	Category   *int64 `json:"category"`
	SearchText string `json:"search_text"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sel := domain.AllCategories()
	if req.Category != nil {
		sel = domain.OneCategory(*req.Category)
	}
	uc := usecase.ApplyFilter{Filter: sess.Filter, Haptics: s.haptics}
	uc.Execute(sel, req.SearchText)
	s.writeData(w, http.StatusOK, productListingFor(s.catalog, sess))
}

func productListingFor(catalog domain.CatalogCache, sess *Session) productListing {
	visible := usecase.BrowseCatalog{Catalog: catalog, Filter: sess.Filter}.Execute()
	return productListing{Products: visible, Count: len(visible)}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeData(w, http.StatusOK, sess.Cart.Snapshot())
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	uc := usecase.AddToCart{Catalog: s.catalog, Cart: sess.Cart, Haptics: s.haptics}
	snap, err := uc.Execute(req.ProductID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	s.metrics.CartMutations.WithLabelValues("add").Inc()
	s.writeData(w, http.StatusOK, snap)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	uc := usecase.ChangeQuantity{Cart: sess.Cart, Haptics: s.haptics}
	snap := uc.Execute(productID, req.Quantity)
	s.metrics.CartMutations.WithLabelValues("update").Inc()
	s.writeData(w, http.StatusOK, snap)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	uc := usecase.RemoveFromCart{Cart: sess.Cart, Haptics: s.haptics}
	snap := uc.Execute(productID)
	s.metrics.CartMutations.WithLabelValues("remove").Inc()
	s.writeData(w, http.StatusOK, snap)
}

type flowResponse struct {
	State string `json:"state"`
}

func (s *Server) handleOrderOpen(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Flow.Open()
	s.writeData(w, http.StatusOK, flowResponse{State: string(sess.Flow.State())})
}

func (s *Server) handleOrderCancel(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Flow.Cancel()
	s.writeData(w, http.StatusOK, flowResponse{State: string(sess.Flow.State())})
}

func (s *Server) handleOrderSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var draft domain.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess.Flow.SetDraft(draft)
	draft, err := sess.Flow.Begin()
	if err != nil {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}

	uc := usecase.SubmitOrder{Submitter: s.submitter, Haptics: s.haptics}
	sub, err := uc.Execute(r.Context(), draft, sess.Cart.Snapshot())
	if err != nil {
		sess.Flow.Fail()
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			s.metrics.Submissions.WithLabelValues("invalid").Inc()
			s.writeError(w, http.StatusUnprocessableEntity, verr.Error())
		case errors.Is(err, domain.ErrEmptyCart):
			s.metrics.Submissions.WithLabelValues("invalid").Inc()
			s.writeError(w, http.StatusConflict, err.Error())
		default:
			s.metrics.Submissions.WithLabelValues("failed").Inc()
			s.log.Error("order submission failed", zap.Error(err))
			s.writeError(w, http.StatusBadGateway, "order submission failed")
		}
		return
	}

	// сброс после успеха — контракт вызывающей стороны, не хранилища
	sess.Cart.Clear()
	sess.Flow.Complete()
	s.metrics.CartMutations.WithLabelValues("clear").Inc()
	s.metrics.Submissions.WithLabelValues("ok").Inc()
	s.log.Info("order submitted",
		zap.String("submission_id", sub.ID),
		zap.Int64("total", sub.Total),
		zap.Int("items", len(sub.Items)))
	s.writeData(w, http.StatusCreated, sub)
}
