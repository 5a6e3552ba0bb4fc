package service

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или деактивирована
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("service.repository: failed to scan row")
)
