package expenses

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)
