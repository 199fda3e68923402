package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-api/internal/application/usecase"
)

// AdminHandler expone operaciones administrativas.
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ResetData godoc
// @Summary      Restablecer datos de demostración
// @Description  Borra todas las reservas y vuelve a sembrar roles, usuarios y salas base.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/reset [post]
func (h *AdminHandler) ResetData(c *fiber.Ctx) error {
	if err := h.uc.ResetData(c.Context(), GetActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "datos restablecidos"})
}
