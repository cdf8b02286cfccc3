package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/albaran-pro/internal/application/dto"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel de control a partir de la
// colección completa: total facturado, albaranes emitidos, clientes activos,
// productos movidos y evolución de facturación por mes.
type DashboardUseCase struct {
	repo repository.AlbaranRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AlbaranRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Resumen calcula las métricas en un único recorrido de la colección.
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.DashboardResumenDTO, error) {
	albaranes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes para el panel: %w", err)
	}

	totalImporte := decimal.Zero
	clientes := make(map[string]struct{})
	porMes := make(map[string]decimal.Decimal)
	productos := 0

	for _, a := range albaranes {
		totalImporte = totalImporte.Add(a.ImporteTotal)
		clientes[a.ClienteNombre] = struct{}{}
		productos += len(a.Lineas)
		if len(a.FechaEmision) >= 7 {
			mes := a.FechaEmision[:7] // YYYY-MM
			porMes[mes] = porMes[mes].Add(a.ImporteTotal)
		}
	}

	meses := make([]dto.FacturacionMesDTO, 0, len(porMes))
	for mes, importe := range porMes {
		meses = append(meses, dto.FacturacionMesDTO{Mes: mes, Importe: importe})
	}
	sort.Slice(meses, func(i, j int) bool { return meses[i].Mes < meses[j].Mes })

	return &dto.DashboardResumenDTO{
		TotalAlbaranes:   len(albaranes),
		TotalImporte:     totalImporte,
		ClientesActivos:  len(clientes),
		ProductosMovidos: productos,
		PorMes:           meses,
	}, nil
}
