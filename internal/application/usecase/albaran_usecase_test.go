package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/albaran-pro/internal/application/dto"
	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/listquery"
	"github.com/tu-usuario/albaran-pro/internal/infrastructure/memory"
)

func peticionCompleta() dto.CreateAlbaranRequest {
	return dto.CreateAlbaranRequest{
		NumeroAlbaran:      "ALB-2024-001",
		FechaEmision:       "2024-11-25",
		ProveedorNombre:    "Mi Empresa S.L.",
		ProveedorCIF:       "B12345678",
		ProveedorDireccion: "Calle Industria 1, Madrid",
		ClienteNombre:      "Cliente Ejemplo S.A.",
		ClienteCIF:         "A98765432",
		ClienteDireccion:   "Av. Comercial 22, Barcelona",
		Lineas: []dto.LineaEditRequest{
			{Codigo: "PROD-001", Descripcion: "Servicio de Consultoría", Cantidad: "10", Unidad: "horas", PrecioUnitario: "50"},
		},
		Observaciones: "Entrega parcial",
	}
}

// Flujo completo contra el almacén en memoria: crear, listar, editar, borrar.
func TestAlbaranUseCase_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAlbaranUseCase(memory.NewStore())

	creado, err := uc.Create(ctx, peticionCompleta())
	require.NoError(t, err)
	require.NotEmpty(t, creado.ID)
	assert.True(t, creado.ImporteTotal.Equal(decimal.NewFromInt(500)),
		"el importe total se recalcula en servidor a partir de las líneas")

	listado, err := uc.List(ctx, listquery.Query{})
	require.NoError(t, err)
	require.Equal(t, 1, listado.Total)
	assert.Equal(t, creado.ID, listado.Items[0].ID)

	obs := "Entregar en recepción"
	actualizado, err := uc.Update(ctx, creado.ID, dto.UpdateAlbaranRequest{Observaciones: &obs})
	require.NoError(t, err)
	assert.Equal(t, obs, actualizado.Observaciones)
	assert.Equal(t, "ALB-2024-001", actualizado.NumeroAlbaran, "los campos ausentes no se tocan")

	require.NoError(t, uc.Delete(ctx, creado.ID))
	listado, err = uc.List(ctx, listquery.Query{})
	require.NoError(t, err)
	assert.Zero(t, listado.Total)
}

func TestAlbaranUseCase_CreateInvalido_NoPersiste(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewAlbaranUseCase(store)

	in := peticionCompleta()
	in.ClienteNombre = ""

	_, err := uc.Create(ctx, in)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"cliente_nombre"}, ve.Campos)

	listado, err := uc.List(ctx, listquery.Query{})
	require.NoError(t, err)
	assert.Zero(t, listado.Total, "una validación fallida no escribe nada")
}

// Reemplazar las líneas en una edición parcial recalcula el total.
func TestAlbaranUseCase_UpdateLineas_RecalculaTotal(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAlbaranUseCase(memory.NewStore())

	creado, err := uc.Create(ctx, peticionCompleta())
	require.NoError(t, err)

	lineas := []dto.LineaEditRequest{
		{Codigo: "HW-001", Descripcion: "Monitor 27 pulgadas", Cantidad: "2", Unidad: "unidades", PrecioUnitario: "200"},
		{Codigo: "HW-002", Descripcion: "Teclado Mecánico", Cantidad: "2", Unidad: "unidades", PrecioUnitario: "80"},
	}
	actualizado, err := uc.Update(ctx, creado.ID, dto.UpdateAlbaranRequest{Lineas: &lineas})
	require.NoError(t, err)

	require.Len(t, actualizado.Lineas, 2)
	assert.True(t, actualizado.ImporteTotal.Equal(decimal.NewFromInt(560)))
}

func TestAlbaranUseCase_GetByID_NoEncontrado(t *testing.T) {
	uc := usecase.NewAlbaranUseCase(memory.NewStore())
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlbaranUseCase_ExportCSV_RespetaElFiltro(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAlbaranUseCase(memory.NewStore())

	_, err := uc.Create(ctx, peticionCompleta())
	require.NoError(t, err)
	otra := peticionCompleta()
	otra.NumeroAlbaran = "ALB-2024-002"
	otra.ClienteNombre = "Tech Solutions Ltd."
	_, err = uc.Create(ctx, otra)
	require.NoError(t, err)

	csv, err := uc.ExportCSV(ctx, listquery.Query{Texto: "tech"})
	require.NoError(t, err)
	assert.Contains(t, csv, "ALB-2024-002")
	assert.NotContains(t, csv, "ALB-2024-001")
}
