package http

import (
	"net/http"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/handler/http/response"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
)

// maxProofSize bounds the multipart body of a settlement.
const maxProofSize = 5 << 20

type BookingHandler interface {
	Settle(w http.ResponseWriter, r *http.Request)
	Receipt(w http.ResponseWriter, r *http.Request)
}

type bookingHandlerImpl struct {
	posService pos.Service
	jwtService jwt.Service
}

func NewBookingHandler(posService pos.Service, jwtService jwt.Service) BookingHandler {
	return &bookingHandlerImpl{
		posService: posService,
		jwtService: jwtService,
	}
}

// Settle pays a booking and its open-bill orders
func (h *bookingHandlerImpl) Settle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := getIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProofSize)
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := booking.SettleRequest{PaymentMethod: r.FormValue("payment_method")}
	file, header, err := r.FormFile("proof_image")
	if err == nil {
		defer file.Close()
		req.Proof = file
		req.ProofFilename = header.Filename
	}

	if err := h.posService.SettleBooking(r.Context(), bookingID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Booking settled", nil)
}

// Receipt renders the settlement receipt of a booking
func (h *bookingHandlerImpl) Receipt(w http.ResponseWriter, r *http.Request) {
	bookingID, err := getIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cashier := ""
	if session, err := h.jwtService.SessionFromContext(r.Context()); err == nil {
		cashier = session.Name
	}

	printout, err := h.posService.BookingReceipt(r.Context(), bookingID, cashier)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "escpos":
		response.Binary(w, "booking-receipt.bin", printer.EscPos(printout.Text, false))
	case "json":
		response.Success(w, printout)
	default:
		response.Text(w, printout.Text)
	}
}
