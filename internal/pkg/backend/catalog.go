package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
)

// ActiveProducts lists products that can be sold.
func (c *Client) ActiveProducts(ctx context.Context) ([]product.Product, error) {
	var raw json.RawMessage
	query := url.Values{"active_only": {"true"}}
	if err := c.get(ctx, "/products", query, &raw); err != nil {
		return nil, err
	}
	products, err := decodeList[product.Product](raw)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "invalid product list", Err: err}
	}
	return products, nil
}

// OpenBookings lists the day's bookings that are still booked, i.e. eligible
// for open bill.
func (c *Client) OpenBookings(ctx context.Context, day time.Time) ([]booking.Booking, error) {
	var raw json.RawMessage
	query := url.Values{
		"date":   {day.Format("2006-01-02")},
		"status": {string(booking.StatusBooked)},
	}
	if err := c.get(ctx, "/bookings", query, &raw); err != nil {
		return nil, err
	}
	bookings, err := decodeList[booking.Booking](raw)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "invalid booking list", Err: err}
	}
	return bookings, nil
}

// GetBooking returns a booking with its linked orders.
func (c *Client) GetBooking(ctx context.Context, id int64) (booking.Booking, error) {
	var b booking.Booking
	if err := c.get(ctx, "/bookings/"+strconv.FormatInt(id, 10), nil, &b); err != nil {
		return booking.Booking{}, err
	}
	return b, nil
}

// SettleBooking marks a booking and its open-bill orders as paid.
func (c *Client) SettleBooking(ctx context.Context, id int64, req booking.SettleRequest) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("payment_method", req.PaymentMethod); err != nil {
		return err
	}
	if req.Proof != nil {
		name := req.ProofFilename
		if name == "" {
			name = "proof.jpg"
		}
		part, err := form.CreateFormFile("proof_image", name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, req.Proof); err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/bookings/"+strconv.FormatInt(id, 10)+"/settle", nil, &buf)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	return c.do(httpReq, nil)
}
