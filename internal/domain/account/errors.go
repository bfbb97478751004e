package account

import "errors"

var (
	// ErrInsufficientBalance 残高不足エラー
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount 無効な金額エラー
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTally 無効な勝敗数エラー
	ErrInvalidTally = errors.New("invalid tally")
	// ErrAccountNotFound アカウントが見つからないエラー
	ErrAccountNotFound = errors.New("account not found")
)
