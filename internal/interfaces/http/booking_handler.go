package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-api/internal/application/booking"
	"github.com/jhoicas/reservas-api/internal/application/dto"
)

// BookingHandler maneja las peticiones HTTP para reservas (protegido).
type BookingHandler struct {
	uc *booking.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse  "datos inválidos u horario ocupado"
// @Failure      404   {object}  dto.ErrorResponse  "sala o usuario inexistente"
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RoomID == "" || in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "roomId, date, startTime y endTime son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar reserva (revalida disponibilidad)
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reserva"
// @Param        body  body  dto.UpdateBookingRequest  true  "Datos de la reserva"
// @Success      200   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [put]
func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reserva (dueño o canDeleteAnyBooking)
// @Tags         bookings
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reserva"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener reserva por ID
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.BookingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar reservas (orden estable: fecha, hora de inicio, id)
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        roomId  query  string  false  "Filtrar por sala"
// @Param        userId  query  string  false  "Filtrar por usuario"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200     {array}  dto.BookingResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(booking.ListFilter{
		RoomID: c.Query("roomId"),
		UserID: c.Query("userId"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
