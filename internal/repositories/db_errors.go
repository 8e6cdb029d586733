package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"belediyeBack/internal/models"
)

const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedParent = 1452
)

// uniqueIndexFields maps unique index names from the migrations to the JSON
// field reported back to the client.
var uniqueIndexFields = map[string]string{
	"uq_users_phone":            "phone",
	"uq_users_email":            "email",
	"uq_neighborhoods_name":     "name",
	"uq_taxi_drivers_plate":     "plate",
	"uq_pharmacy_duties_day":    "duty_date",
	"uq_transport_routes_code":  "code",
	"uq_place_categories_name":  "name",
	"uq_complaints_tracking":    "tracking_code",
	"uq_device_tokens_token":    "token",
	"uq_sessions_refresh_token": "refresh_token",
}

// mapError translates driver errors into the models sentinels so the HTTP
// layer can choose a status without knowing about MySQL.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNoRecord
	}

	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	switch mysqlErr.Number {
	case mysqlDuplicateEntry:
		return &models.DuplicateError{Field: duplicateField(mysqlErr.Message)}
	case mysqlRowIsReferenced:
		return models.ErrReferenced
	case mysqlNoReferencedParent:
		return models.ErrMissingReference
	}
	return err
}

// duplicateField extracts the index from "Duplicate entry 'x' for key 'table.index'".
func duplicateField(message string) string {
	idx := strings.LastIndex(message, "for key '")
	if idx < 0 {
		return "unknown"
	}
	key := strings.TrimSuffix(message[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	if field, ok := uniqueIndexFields[key]; ok {
		return field
	}
	return key
}
