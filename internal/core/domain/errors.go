package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrProductExists = errors.New("product already exists with this name and category")
var ErrInvalidPrice = errors.New("price must be greater than 0")
var ErrInvalidStock = errors.New("stock quantity cannot be negative")
var ErrInsufficientStock = errors.New("insufficient stock quantity")
var ErrUserNotFound = errors.New("user not found")
var ErrUserDisabled = errors.New("user account is disabled")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
