package apperrors

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("not found")
	ErrInvalidConfiguration    = errors.New("invalid configuration")
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
	ErrAlreadyOwned            = errors.New("already owned")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrCorruptSnapshot         = errors.New("corrupt snapshot")
	ErrNoSnapshot              = errors.New("no snapshot")
)
