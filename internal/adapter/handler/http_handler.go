package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type HTTPHandler struct {
	inventory *service.Inventory
	checkout  *service.CheckoutService
	orders    port.OrderJournal
	logger    *zap.Logger
}

type CustomerJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type PurchaseHTTPRequest struct {
	RequestID string       `json:"request_id"`
	BookID    string       `json:"book_id"`
	Quantity  int          `json:"quantity"`
	Customer  CustomerJSON `json:"customer"`
}

type PurchaseHTTPResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	OrderID string  `json:"order_id,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

type BookJSON struct {
	Kind     domain.Kind `json:"kind"`
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	Year     int         `json:"year"`
	Price    float64     `json:"price"`
	Stock    *int        `json:"stock,omitempty"`
	FileType string      `json:"file_type,omitempty"`
}

type OrderJSON struct {
	ID        string             `json:"id"`
	RequestID string             `json:"request_id,omitempty"`
	BookID    string             `json:"book_id"`
	Kind      domain.Kind        `json:"kind"`
	Quantity  int                `json:"quantity"`
	Amount    float64            `json:"amount"`
	Customer  CustomerJSON       `json:"customer"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(inventory *service.Inventory, checkout *service.CheckoutService, orders port.OrderJournal, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{inventory: inventory, checkout: checkout, orders: orders, logger: logger}
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/purchase", h.Purchase)
		r.Get("/books", h.ListBooks)
		r.Post("/books", h.AddBook)
		r.Delete("/books/outdated", h.RemoveOutdated)
		r.Get("/books/{id}", h.GetBook)
		r.Get("/orders/{id}", h.GetOrder)
	})
	return r
}

func (h *HTTPHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.BookID == "" {
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	order, err := h.checkout.Checkout(r.Context(), service.CheckoutRequest{
		RequestID: req.RequestID,
		BookID:    req.BookID,
		Quantity:  req.Quantity,
		Customer: domain.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Address: req.Customer.Address,
		},
	})
	if err != nil {
		status, message := purchaseFailure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("purchase failed", zap.String("book_id", req.BookID), zap.Error(err))
		}
		writeJSON(w, status, PurchaseHTTPResponse{
			Success: false,
			Message: message,
		})
		return
	}

	writeJSON(w, http.StatusOK, PurchaseHTTPResponse{
		Success: true,
		Message: "purchase successful",
		OrderID: order.ID,
		Amount:  order.Amount,
	})
}

// purchaseFailure maps a checkout error to a status code and a client-safe message.
func purchaseFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateRequest):
		return http.StatusConflict, "duplicate request"
	case errors.Is(err, service.ErrBookNotFound):
		return http.StatusNotFound, "book not found"
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusGone, "not enough stock"
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotForSale):
		return http.StatusUnprocessableEntity, "book is not for sale"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books := h.inventory.List(r.Context())
	out := make([]BookJSON, 0, len(books))
	for _, b := range books {
		out = append(out, toBookJSON(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.inventory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "book not found"})
		return
	}
	writeJSON(w, http.StatusOK, toBookJSON(book))
}

// GetOrder reads back a journaled order. Journaling is asynchronous, so an
// order placed a moment ago may still answer 404.
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrOrderNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}
	if err != nil {
		h.logger.Error("order lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, OrderJSON{
		ID:        order.ID,
		RequestID: order.RequestID,
		BookID:    order.BookID,
		Kind:      order.Kind,
		Quantity:  order.Quantity,
		Amount:    order.Amount,
		Customer: CustomerJSON{
			Name:    order.Customer.Name,
			Email:   order.Customer.Email,
			Address: order.Customer.Address,
		},
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})
}

func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req BookJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	book, err := fromBookJSON(req)
	if err == nil {
		err = h.inventory.Add(r.Context(), book)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, toBookJSON(book))
}

func (h *HTTPHandler) RemoveOutdated(w http.ResponseWriter, r *http.Request) {
	maxAge, err := strconv.Atoi(r.URL.Query().Get("max_age"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "max_age must be an integer"})
		return
	}
	currentYear, err := strconv.Atoi(r.URL.Query().Get("current_year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "current_year must be an integer"})
		return
	}

	removed := h.inventory.RemoveOlderThan(r.Context(), maxAge, currentYear)
	out := make([]BookJSON, 0, len(removed))
	for _, b := range removed {
		out = append(out, toBookJSON(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toBookJSON(b domain.Book) BookJSON {
	info := b.Info()
	out := BookJSON{
		Kind:   b.Kind(),
		ID:     info.ID,
		Title:  info.Title,
		Author: info.Author,
		Year:   info.Year,
		Price:  info.Price,
	}
	switch v := b.(type) {
	case *domain.PaperBook:
		stock := v.Stock
		out.Stock = &stock
	case *domain.EBook:
		out.FileType = v.FileType
	}
	return out
}

func fromBookJSON(in BookJSON) (domain.Book, error) {
	details := domain.Details{
		ID:     in.ID,
		Title:  in.Title,
		Author: in.Author,
		Year:   in.Year,
		Price:  in.Price,
	}
	switch in.Kind {
	case domain.KindPaper:
		stock := 0
		if in.Stock != nil {
			stock = *in.Stock
		}
		return domain.NewPaperBook(details, stock)
	case domain.KindEBook:
		return domain.NewEBook(details, in.FileType)
	case domain.KindDemo:
		return domain.NewDemoBook(details)
	default:
		return nil, errors.New("kind must be one of paper, ebook, demo")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
