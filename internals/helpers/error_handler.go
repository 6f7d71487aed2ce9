package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorHandler dipasang di fiber.Config agar semua error keluar dengan bentuk ErrorResponse.
func ErrorHandler(zl *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return JsonValidationError(c, ve.Err)
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				zl.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return JsonError(c, fe.Code, fe.Message)
		}
		if IsNotFound(err) {
			return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
		}
		zl.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

// IsUniqueViolation mengenali pelanggaran unique dari Postgres (23505) maupun GORM/SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ValidationError dibungkus agar helper yang mengembalikan error tetap berakhir 422.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func ValidationFailed(err error) error {
	return &ValidationError{Err: err}
}
