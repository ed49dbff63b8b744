package pos

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
)

// Status asks the backend whether the terminal has an open shift. A failed
// check leaves the known state untouched.
func (s *POSServiceImpl) Status(ctx context.Context) (shift.StatusResponse, error) {
	resp, err := s.backend.CashSessionStatus(ctx)
	if err != nil {
		slog.Warn("Cash session status check failed", "terminal_id", s.terminalID, "error", err)
		return shift.StatusResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.Status == shift.StatusOpen {
		current := shift.CashShift{Status: shift.StatusOpen}
		if resp.Shift != nil {
			current = *resp.Shift
			current.Status = shift.StatusOpen
		}
		s.shift = &current
		resp.Shift = &current
		return resp, nil
	}

	if s.shift != nil && s.busy == opNone {
		slog.Info("Shift was closed elsewhere", "terminal_id", s.terminalID, "shift_id", s.shift.ID)
		s.shift = nil
		s.resetSessionLocked()
	}
	return shift.StatusResponse{Status: shift.StatusClosed}, nil
}

// Restore picks up a shift left open by a previous run of the terminal.
func (s *POSServiceImpl) Restore(ctx context.Context) error {
	resp, err := s.Status(ctx)
	if err != nil {
		return err
	}
	if resp.Status != shift.StatusOpen {
		return nil
	}
	slog.Info("Resuming open shift", "terminal_id", s.terminalID, "shift_id", resp.Shift.ID)
	_, err = s.LoadCatalog(ctx)
	return err
}

// OpenShift opens a shift with the counted starting cash and loads the
// catalog. A catalog failure does not undo the open shift.
func (s *POSServiceImpl) OpenShift(ctx context.Context, startingCash decimal.Decimal) (shift.CashShift, error) {
	s.mu.Lock()
	if s.shift != nil && s.shift.Status == shift.StatusOpen {
		s.mu.Unlock()
		return shift.CashShift{}, shift.ErrShiftAlreadyOpen
	}
	if err := s.beginLocked(opShift); err != nil {
		s.mu.Unlock()
		return shift.CashShift{}, err
	}
	s.mu.Unlock()

	opened, err := s.backend.OpenCashSession(ctx, startingCash)
	if err != nil {
		s.end()
		slog.Warn("Failed to open shift", "terminal_id", s.terminalID, "error", err)
		return shift.CashShift{}, err
	}
	opened.Status = shift.StatusOpen
	if opened.StartingCash.IsZero() {
		opened.StartingCash = startingCash
	}
	if opened.OpenedAt.IsZero() {
		opened.OpenedAt = s.now()
	}

	s.mu.Lock()
	s.shift = &opened
	s.resetSessionLocked()
	s.busy = opNone
	s.mu.Unlock()

	slog.Info("Shift opened", "terminal_id", s.terminalID, "shift_id", opened.ID, "starting_cash", startingCash.String())
	s.publish(sse.EventShiftOpened, opened)

	if _, err := s.LoadCatalog(ctx); err != nil {
		slog.Warn("Catalog load after shift open failed", "terminal_id", s.terminalID, "error", err)
	}

	return opened, nil
}

// CloseShift closes the open shift. The summary's derived figures are
// recomputed from its inputs so that the reconciliation always adds up.
func (s *POSServiceImpl) CloseShift(ctx context.Context, endingCashActual decimal.Decimal, note *string) (pos.CloseResult, error) {
	s.mu.Lock()
	if s.shift == nil || s.shift.Status != shift.StatusOpen {
		s.mu.Unlock()
		return pos.CloseResult{}, shift.ErrShiftClosed
	}
	if err := s.beginLocked(opShift); err != nil {
		s.mu.Unlock()
		return pos.CloseResult{}, err
	}
	current := *s.shift
	s.mu.Unlock()

	summary, err := s.backend.CloseCashSession(ctx, endingCashActual, note)
	if err != nil {
		s.end()
		slog.Warn("Failed to close shift", "terminal_id", s.terminalID, "shift_id", current.ID, "error", err)
		return pos.CloseResult{}, err
	}

	if summary.ModalAwal.IsZero() && summary.PenjualanTunai.IsZero() && summary.FisikUang.IsZero() {
		summary = current.Summary(endingCashActual)
	}
	summary = summary.Normalize()
	current.Close(summary, note, s.now())

	s.mu.Lock()
	s.shift = nil
	s.resetSessionLocked()
	s.busy = opNone
	s.mu.Unlock()

	slog.Info("Shift closed",
		"terminal_id", s.terminalID,
		"shift_id", current.ID,
		"expected_cash", summary.SeharusnyaAda.String(),
		"difference", summary.Selisih.String(),
	)
	s.publish(sse.EventShiftClosed, summary)

	return pos.CloseResult{
		Summary: summary,
		Shift:   current,
		Report:  printer.RenderClosing(summary, current, s.layout),
	}, nil
}

// History returns one page of the shift report.
func (s *POSServiceImpl) History(ctx context.Context, page int) (shift.Page, error) {
	return s.backend.CashSessionHistory(ctx, page)
}
