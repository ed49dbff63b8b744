package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
)

type statusBody struct {
	Status shift.Status     `json:"status"`
	Data   *shift.CashShift `json:"data"`
}

// CashSessionStatus returns the terminal's current shift status.
func (c *Client) CashSessionStatus(ctx context.Context) (shift.StatusResponse, error) {
	var body statusBody
	if err := c.get(ctx, "/cash-session/status", nil, &body); err != nil {
		return shift.StatusResponse{}, err
	}
	if body.Status != shift.StatusOpen {
		body.Status = shift.StatusClosed
	}
	return shift.StatusResponse{Status: body.Status, Shift: body.Data}, nil
}

type openBody struct {
	StartingCash decimal.Decimal `json:"starting_cash"`
}

// OpenCashSession opens a shift with the counted starting cash.
func (c *Client) OpenCashSession(ctx context.Context, startingCash decimal.Decimal) (shift.CashShift, error) {
	var body struct {
		Data *shift.CashShift `json:"data"`
	}
	if err := c.postJSON(ctx, "/cash-session/open", openBody{StartingCash: startingCash}, nil, &body); err != nil {
		return shift.CashShift{}, err
	}
	if body.Data != nil {
		return *body.Data, nil
	}
	return shift.CashShift{
		Status:       shift.StatusOpen,
		OpenedAt:     time.Now(),
		StartingCash: startingCash,
	}, nil
}

type closeBody struct {
	EndingCashActual decimal.Decimal `json:"ending_cash_actual"`
	Note             *string         `json:"note,omitempty"`
}

// CloseCashSession closes the open shift and returns the backend summary.
func (c *Client) CloseCashSession(ctx context.Context, endingCashActual decimal.Decimal, note *string) (shift.ClosingSummary, error) {
	var body struct {
		Summary shift.ClosingSummary `json:"summary"`
	}
	payload := closeBody{EndingCashActual: endingCashActual, Note: note}
	if err := c.postJSON(ctx, "/cash-session/close", payload, nil, &body); err != nil {
		return shift.ClosingSummary{}, err
	}
	return body.Summary, nil
}

// CashSessionHistory returns one page of the shift report.
func (c *Client) CashSessionHistory(ctx context.Context, page int) (shift.Page, error) {
	if page < 1 {
		page = 1
	}
	var body shift.Page
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, "/cash-session/history", query, &body); err != nil {
		return shift.Page{}, err
	}
	if body.Data == nil {
		body.Data = []shift.CashShift{}
	}
	return body, nil
}
