package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reservas-api/internal/application/dto"
	"github.com/jhoicas/reservas-api/internal/domain"
)

// respondError traduce la taxonomía de errores de dominio a estados HTTP.
// Solo esta capa conoce el mapeo; los casos de uso devuelven errores de
// dominio sin saber de HTTP. Errores inesperados se registran con contexto y
// salen como 500 genérico sin filtrar internals.
func respondError(c *fiber.Ctx, err error) error {
	var conflictErr *domain.TimeSlotConflictError
	if errors.As(err, &conflictErr) {
		resp := dto.ErrorResponse{Code: "TIME_SLOT_NOT_AVAILABLE", Message: conflictErr.Error()}
		for _, cf := range conflictErr.Conflicts {
			resp.Conflicts = append(resp.Conflicts, dto.ConflictDetail{
				BookingID: cf.BookingID,
				StartTime: cf.StartTime,
				EndTime:   cf.EndTime,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "USER_NOT_FOUND", err)
	case errors.Is(err, domain.ErrRoomNotFound):
		return respond(c, fiber.StatusNotFound, "ROOM_NOT_FOUND", err)
	case errors.Is(err, domain.ErrBookingNotFound):
		return respond(c, fiber.StatusNotFound, "BOOKING_NOT_FOUND", err)
	case errors.Is(err, domain.ErrRoleNotFound):
		return respond(c, fiber.StatusNotFound, "ROLE_NOT_FOUND", err)
	case errors.Is(err, domain.ErrTimeSlotNotAvailable):
		return respond(c, fiber.StatusBadRequest, "TIME_SLOT_NOT_AVAILABLE", err)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusBadRequest, "EMAIL_EXISTS", err)
	case errors.Is(err, domain.ErrInvalidUserData):
		return respond(c, fiber.StatusBadRequest, "INVALID_USER", err)
	case errors.Is(err, domain.ErrInvalidRoomData):
		return respond(c, fiber.StatusBadRequest, "INVALID_ROOM", err)
	case errors.Is(err, domain.ErrInvalidBookingData):
		return respond(c, fiber.StatusBadRequest, "INVALID_BOOKING", err)
	case errors.Is(err, domain.ErrInvalidRoleData):
		return respond(c, fiber.StatusBadRequest, "INVALID_ROLE", err)
	case errors.Is(err, domain.ErrUnauthorized):
		// Mensaje genérico: no se revela si falló el email o el password.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
