package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/albaran-pro/internal/application/dto"
	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/listquery"
)

// AlbaranHandler maneja las peticiones HTTP de albaranes.
type AlbaranHandler struct {
	uc    *usecase.AlbaranUseCase
	pdfUC *usecase.PDFUseCase
}

// NewAlbaranHandler construye el handler.
func NewAlbaranHandler(uc *usecase.AlbaranUseCase, pdfUC *usecase.PDFUseCase) *AlbaranHandler {
	return &AlbaranHandler{uc: uc, pdfUC: pdfUC}
}

// List GET /api/albaranes?q=&cliente=&importe_min=&ordenar_por=&direccion=
func (h *AlbaranHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), parseQuery(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/albaranes/:id
func (h *AlbaranHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(a)
}

// Create POST /api/albaranes
func (h *AlbaranHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlbaranRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// Update PUT /api/albaranes/:id
func (h *AlbaranHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAlbaranRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(a)
}

// Delete DELETE /api/albaranes/:id
func (h *AlbaranHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV GET /api/albaranes/export.csv
// Exporta el listado que resulta de la misma consulta que List; los filtros
// activos del listado se respetan en el fichero.
func (h *AlbaranHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.uc.ExportCSV(c.Context(), parseQuery(c))
	if err != nil {
		return responderError(c, err)
	}
	nombre := fmt.Sprintf("albaranes_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", nombre))
	return c.SendString(csv)
}

// GeneratePDF GET /api/albaranes/:id/pdf
func (h *AlbaranHandler) GeneratePDF(c *fiber.Ctx) error {
	pdf, err := h.pdfUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=albaran_%s.pdf", c.Params("id")))
	return c.Send(pdf)
}

// parseQuery traduce los query params a la consulta del motor de listado.
// Valores desconocidos (orden, dirección, importes no numéricos) degradan al
// comportamiento por defecto en lugar de fallar.
func parseQuery(c *fiber.Ctx) listquery.Query {
	return listquery.Query{
		Texto:      c.Query("q"),
		FechaDesde: c.Query("fecha_desde"),
		FechaHasta: c.Query("fecha_hasta"),
		Cliente:    c.Query("cliente"),
		Proveedor:  c.Query("proveedor"),
		Producto:   c.Query("producto"),
		ImporteMin: c.Query("importe_min"),
		ImporteMax: c.Query("importe_max"),
		OrdenarPor: listquery.CampoOrden(c.Query("ordenar_por")),
		Direccion:  listquery.Direccion(c.Query("direccion")),
	}
}

// responderError mapea errores de dominio a respuestas HTTP.
func responderError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: ve.Error(), Fields: ve.Campos,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "albarán no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "el almacén de datos no responde"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
