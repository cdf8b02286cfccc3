package memory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// SeedAlbaranes devuelve los albaranes de demostración con los que arranca el
// modo degradado, para que la interfaz tenga datos con los que trabajar.
func SeedAlbaranes() []*entity.Albaran {
	return []*entity.Albaran{
		{
			ID:                 "demo-albaran-1",
			NumeroAlbaran:      "ALB-2024-001",
			FechaEmision:       "2024-11-25",
			ProveedorNombre:    "Mi Empresa S.L.",
			ProveedorCIF:       "B12345678",
			ProveedorDireccion: "Calle Industria 1, Madrid",
			ClienteNombre:      "Cliente Ejemplo S.A.",
			ClienteCIF:         "A98765432",
			ClienteDireccion:   "Av. Comercial 22, Barcelona",
			Lineas: []entity.LineaAlbaran{
				{
					Codigo:         "PROD-001",
					Descripcion:    "Servicio de Consultoría",
					Cantidad:       decimal.NewFromInt(10),
					Unidad:         "horas",
					PrecioUnitario: decimal.NewFromInt(50),
					ImporteLinea:   decimal.NewFromInt(500),
				},
			},
			ImporteTotal:  decimal.NewFromInt(500),
			Observaciones: "Entrega parcial",
		},
		{
			ID:                 "demo-albaran-2",
			NumeroAlbaran:      "ALB-2024-002",
			FechaEmision:       "2024-11-26",
			ProveedorNombre:    "Mi Empresa S.L.",
			ProveedorCIF:       "B12345678",
			ProveedorDireccion: "Calle Industria 1, Madrid",
			ClienteNombre:      "Tech Solutions Ltd.",
			ClienteCIF:         "B87654321",
			ClienteDireccion:   "Parque Tecnológico 5, Valencia",
			Lineas: []entity.LineaAlbaran{
				{
					Codigo:         "HW-001",
					Descripcion:    "Monitor 27 pulgadas",
					Cantidad:       decimal.NewFromInt(2),
					Unidad:         "unidades",
					PrecioUnitario: decimal.NewFromInt(200),
					ImporteLinea:   decimal.NewFromInt(400),
				},
				{
					Codigo:         "HW-002",
					Descripcion:    "Teclado Mecánico",
					Cantidad:       decimal.NewFromInt(2),
					Unidad:         "unidades",
					PrecioUnitario: decimal.NewFromInt(80),
					ImporteLinea:   decimal.NewFromInt(160),
				},
			},
			ImporteTotal:  decimal.NewFromInt(560),
			Firma:         "Juan Pérez",
			Observaciones: "Entregar en recepción",
		},
	}
}
