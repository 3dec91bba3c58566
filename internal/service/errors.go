package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired = errors.New("token is expired")

	ErrUnknownPack             = errors.New("unknown credit pack")
	ErrWebhookSignatureInvalid = errors.New("webhook signature verification failed")
)
