package auth

import "orders/pkg/logger"

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=auth_test

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
