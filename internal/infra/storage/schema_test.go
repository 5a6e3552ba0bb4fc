// Сверка SQL-миграции с колонками, которые читают репозитории.
// Ловит рассинхронизацию вида "репозиторий выбирает колонку, которой
// нет в CREATE TABLE" без живой базы
package storage

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Колонки из SELECT-списков репозиториев (см. *Columns в каждом пакете)
var repositoryColumns = map[string][]string{
	"businesses": {
		"id", "name", "slug", "phone", "email", "address", "timezone",
		"auto_confirm", "cancel_window_hours", "min_lead_time_minutes",
		"email_notifications", "is_active", "created_at", "updated_at",
	},
	"services": {
		"id", "business_id", "name", "duration_minutes", "price",
		"buffer_minutes", "is_active", "created_at", "updated_at",
	},
	"working_hours": {
		"id", "business_id", "day_of_week", "start_time", "end_time",
		"created_at", "updated_at",
	},
	"closures": {
		"id", "business_id", "type", "date", "start_time", "end_time",
		"note", "created_at", "updated_at",
	},
	"bookings": {
		"id", "business_id", "service_id", "customer_name", "customer_phone",
		"customer_email", "start_at", "end_at", "status", "note",
		"manage_token_hash", "cancellation_reason", "cancelled_at",
		"reminder_sent_at", "created_at", "updated_at",
	},
}

func TestMigrationCoversRepositoryColumns(t *testing.T) {
	raw, err := os.ReadFile("../../../migrations/001_init.up.sql")
	require.NoError(t, err)

	tableRe := regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\n\);`)
	tables := map[string]string{}
	for _, m := range tableRe.FindAllStringSubmatch(string(raw), -1) {
		tables[m[1]] = m[2]
	}

	for table, columns := range repositoryColumns {
		body, ok := tables[table]
		require.True(t, ok, "таблица %s отсутствует в миграции", table)
		for _, column := range columns {
			assert.Regexp(t, `(?m)^\s+`+column+`\s`, body, "колонка %s.%s", table, column)
		}
	}
}
