package closure

import "github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
