package service

import "errors"

// 业务错误集合，handler 层用 errors.Is 映射到 HTTP 状态码
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("not authorized")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrAlreadyProcessed = errors.New("request has already been processed")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrDuplicatePayment = errors.New("payment already recorded")
	ErrNotApproved      = errors.New("payment request not approved")
	ErrLastAdmin        = errors.New("cannot remove the last admin")
	ErrUserExists       = errors.New("username or email already exists")
)
