package shift

import "errors"

var (
	ErrShiftClosed      = errors.New("cash shift is closed")
	ErrShiftAlreadyOpen = errors.New("cash shift is already open")
	ErrShiftBusy        = errors.New("shift cannot change while a checkout is in progress")
)
