package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
)

// DashboardHandler maneja el endpoint de resumen del panel.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen devuelve los agregados de la colección completa de albaranes.
// GET /api/dashboard
//
// Respuesta: DashboardResumenDTO (total_albaranes, total_importe,
// clientes_activos, productos_movidos, por_mes[]).
// No admite parámetros; los agregados se calculan sobre toda la colección.
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	resumen, err := h.uc.Resumen(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(resumen)
}
