package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError turns an error left on the gin context into a status and body.
// Domain errors are matched first; anything else is treated as a storage error.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, rewards.ErrEmptyPortfolio):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "no cards configured"}
	case errors.Is(err, catalog.ErrUnknownCard):
		return http.StatusBadRequest, ErrorResponse{Error: "unknown card", Details: err.Error()}
	case service.IsValidation(err):
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: err.Error()}
	}
	return MapDBError(err)
}

func MapDBError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		case "22P02": // invalid_text_representation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "malformed value",
				Details: pgErr.Message,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
