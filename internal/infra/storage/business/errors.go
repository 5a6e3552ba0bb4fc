package business

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или деактивирован
	ErrBusinessNotFound = errors.New("business.repository: business not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("business.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("business.repository: failed to scan row")
)
