package dto

import "github.com/shopspring/decimal"

// DashboardResumenDTO métricas del panel de control: contadores globales y la
// evolución de facturación por mes.
type DashboardResumenDTO struct {
	TotalAlbaranes   int                 `json:"total_albaranes"`
	TotalImporte     decimal.Decimal     `json:"total_importe"`
	ClientesActivos  int                 `json:"clientes_activos"`
	ProductosMovidos int                 `json:"productos_movidos"`
	PorMes           []FacturacionMesDTO `json:"facturacion_por_mes"`
}

// FacturacionMesDTO importe total facturado en un mes (YYYY-MM).
type FacturacionMesDTO struct {
	Mes     string          `json:"mes"`
	Importe decimal.Decimal `json:"importe"`
}
