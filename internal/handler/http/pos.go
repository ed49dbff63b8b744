package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/handler/http/response"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
)

// POSHandler defines the terminal API
type POSHandler interface {
	// Shift
	ShiftStatus(w http.ResponseWriter, r *http.Request)
	OpenShift(w http.ResponseWriter, r *http.Request)
	CloseShift(w http.ResponseWriter, r *http.Request)
	ShiftHistory(w http.ResponseWriter, r *http.Request)

	// Catalog
	Catalog(w http.ResponseWriter, r *http.Request)
	ReloadCatalog(w http.ResponseWriter, r *http.Request)

	// Cart
	Cart(w http.ResponseWriter, r *http.Request)
	AddItem(w http.ResponseWriter, r *http.Request)
	ChangeQuantity(w http.ResponseWriter, r *http.Request)
	RemoveItem(w http.ResponseWriter, r *http.Request)
	ClearCart(w http.ResponseWriter, r *http.Request)

	// Checkout
	Confirm(w http.ResponseWriter, r *http.Request)
	Execute(w http.ResponseWriter, r *http.Request)
	CancelCheckout(w http.ResponseWriter, r *http.Request)
	ChangeDue(w http.ResponseWriter, r *http.Request)
	Print(w http.ResponseWriter, r *http.Request)

	// SSE
	Events(w http.ResponseWriter, r *http.Request)
}

type posHandlerImpl struct {
	posService pos.Service
	jwtService jwt.Service
	hub        *sse.Hub
	terminalID string
}

func NewPOSHandler(posService pos.Service, jwtService jwt.Service, hub *sse.Hub, terminalID string) POSHandler {
	return &posHandlerImpl{
		posService: posService,
		jwtService: jwtService,
		hub:        hub,
		terminalID: terminalID,
	}
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func getIDParam(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: key, Message: key + " must be a positive integer"}}
	}
	return id, nil
}

// decodeJSON reads an optional JSON body; an empty body leaves dst zero.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *posHandlerImpl) cashierName(r *http.Request) string {
	session, err := h.jwtService.SessionFromContext(r.Context())
	if err != nil || session.Name == "" {
		return receipt.DefaultCashier
	}
	return session.Name
}

// ShiftStatus reports whether the terminal has an open shift
func (h *posHandlerImpl) ShiftStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.posService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// OpenShift starts a shift with the counted starting cash
func (h *posHandlerImpl) OpenShift(w http.ResponseWriter, r *http.Request) {
	var req shift.OpenShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	startingCash, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	opened, err := h.posService.OpenShift(r.Context(), startingCash)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift opened", opened)
}

// CloseShift reconciles the drawer and closes the shift
func (h *posHandlerImpl) CloseShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CloseShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	endingCash, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.posService.CloseShift(r.Context(), endingCash, req.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift closed", result)
}

// ShiftHistory returns one page of the shift report
func (h *posHandlerImpl) ShiftHistory(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)

	result, err := h.posService.History(r.Context(), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.CurrentPage,
		LastPage:   result.LastPage,
		TotalItems: int64(result.Total),
		From:       result.From,
		To:         result.To,
	})
}

// Catalog returns the cached catalog filtered by category and search
func (h *posHandlerImpl) Catalog(w http.ResponseWriter, r *http.Request) {
	filter := product.Filter{
		Category: product.Category(r.URL.Query().Get("category")),
		Search:   r.URL.Query().Get("search"),
	}

	response.Success(w, h.posService.Catalog(filter))
}

type reloadResponse struct {
	Products     []product.Product   `json:"products"`
	OpenBookings []pos.BookingOption `json:"open_bookings"`
	Adjustments  []cart.Adjustment   `json:"adjustments,omitempty"`
	Warnings     map[string]string   `json:"warnings,omitempty"`
}

// ReloadCatalog refetches products and open bookings
func (h *posHandlerImpl) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	result, err := h.posService.LoadCatalog(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	catalog := h.posService.Catalog(product.Filter{})
	response.Success(w, reloadResponse{
		Products:     catalog.Products,
		OpenBookings: catalog.OpenBookings,
		Adjustments:  result.Adjustments,
		Warnings:     result.Warnings(),
	})
}

// Cart returns the current cart
func (h *posHandlerImpl) Cart(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.posService.Cart())
}

// AddItem adds one unit of a product
func (h *posHandlerImpl) AddItem(w http.ResponseWriter, r *http.Request) {
	var req pos.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.posService.AddItem(req.ProductID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ChangeQuantity moves a line's quantity by delta
func (h *posHandlerImpl) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDParam(r, "productID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req pos.ChangeQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.posService.ChangeQuantity(productID, req.Delta)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// RemoveItem drops a cart line
func (h *posHandlerImpl) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDParam(r, "productID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.posService.RemoveItem(productID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ClearCart empties the cart
func (h *posHandlerImpl) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.posService.ClearCart()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Confirm validates the payment choice and returns the draft to review
func (h *posHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req pos.ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	draft, err := h.posService.Confirm(order.PaymentMethod(req.PaymentMethod), req.BookingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, draft)
}

type executeResponse struct {
	Receipt  receipt.Receipt `json:"receipt"`
	Printout string          `json:"printout"`
}

// Execute submits the confirmed draft
func (h *posHandlerImpl) Execute(w http.ResponseWriter, r *http.Request) {
	var req pos.ExecuteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	cashGiven, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.posService.Execute(r.Context(), req.DraftID, pos.ExecuteInput{
		CashGiven:   cashGiven,
		CashierName: h.cashierName(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction successful", executeResponse{
		Receipt:  result,
		Printout: h.posService.Render(result).Text,
	})
}

// CancelCheckout discards the pending draft
func (h *posHandlerImpl) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.posService.CancelCheckout(); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checkout cancelled", nil)
}

type changeResponse struct {
	Total     decimal.Decimal `json:"total"`
	CashGiven decimal.Decimal `json:"cash_given"`
	Change    decimal.Decimal `json:"change"`
	Payable   bool            `json:"payable"`
}

// ChangeDue previews the change for the cash given
func (h *posHandlerImpl) ChangeDue(w http.ResponseWriter, r *http.Request) {
	cashGiven, verr := validator.ParseAmount("cash_given", validator.Amount(r.URL.Query().Get("cash_given")))
	if verr != nil {
		response.HandleError(w, validator.ValidationErrors{*verr})
		return
	}

	change := h.posService.ChangeDue(cashGiven)
	response.Success(w, changeResponse{
		Total:     h.posService.Cart().Total,
		CashGiven: cashGiven,
		Change:    change,
		Payable:   !change.IsNegative(),
	})
}

type printResponse struct {
	Receipt receipt.Receipt `json:"receipt"`
	Text    string          `json:"text"`
}

// Print returns the last receipt as JSON, plain text or ESC/POS bytes
func (h *posHandlerImpl) Print(w http.ResponseWriter, r *http.Request) {
	stored, printout, err := h.posService.LastReceipt()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "text":
		response.Text(w, printout.Text)
	case "escpos":
		response.Binary(w, fmt.Sprintf("receipt-%s.bin", stored.InvoiceCode), printer.EscPos(printout.Text, printout.OpenDrawer))
	default:
		response.Success(w, printResponse{Receipt: stored, Text: printout.Text})
	}
}

// Events streams POS notifications for this terminal
func (h *posHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(h.terminalID)
	defer cleanup()
	slog.Debug("Event stream opened", "terminal_id", h.terminalID, "subscribers", h.hub.SubscriberCount(h.terminalID))

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"terminal_id\":%q}\n\n", h.terminalID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
