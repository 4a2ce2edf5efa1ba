package rate_limiter

import "orders/pkg/logger"

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rate_limiter_test

type Limiter interface {
	Allow(key string) bool
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
