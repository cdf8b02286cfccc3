package airtable_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/infrastructure/airtable"
)

func nuevoStore(t *testing.T, handler http.HandlerFunc) *airtable.Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return airtable.NewStore(airtable.Config{
		Token:     "tok-test",
		BaseID:    "appTEST",
		TableName: "albaranes",
		BaseURL:   srv.URL,
	})
}

func TestStore_List_DecodificaRegistrosYLineas(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok-test", r.Header.Get("Authorization"))
		assert.Equal(t, "fecha_emision", r.URL.Query().Get("sort[0][field]"))
		assert.Equal(t, "desc", r.URL.Query().Get("sort[0][direction]"))

		_, _ = io.WriteString(w, `{"records":[{"id":"rec001","fields":{
			"numero_albaran":"ALB-2024-001",
			"fecha_emision":"2024-11-25",
			"cliente_nombre":"Cliente Ejemplo S.A.",
			"proveedor_nombre":"Mi Empresa S.L.",
			"productos":"[{\"codigo\":\"PROD-001\",\"descripcion\":\"Servicio de Consultoría\",\"cantidad\":10,\"unidad\":\"horas\",\"precio_unitario\":50,\"importe_linea\":500}]",
			"importe_total":500
		}}]}`)
	})

	lista, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 1)

	a := lista[0]
	assert.Equal(t, "rec001", a.ID)
	assert.Equal(t, "ALB-2024-001", a.NumeroAlbaran)
	assert.True(t, a.ImporteTotal.Equal(decimal.NewFromInt(500)))
	require.Len(t, a.Lineas, 1, "las líneas embebidas en productos se decodifican")
	assert.Equal(t, "PROD-001", a.Lineas[0].Codigo)
	assert.True(t, a.Lineas[0].Cantidad.Equal(decimal.NewFromInt(10)))
}

// El listado sigue la paginación por offset hasta agotarla.
func TestStore_List_Paginacion(t *testing.T) {
	llamadas := 0
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		if r.URL.Query().Get("offset") == "" {
			_, _ = io.WriteString(w, `{"records":[{"id":"rec1","fields":{"numero_albaran":"ALB-1"}}],"offset":"pag2"}`)
			return
		}
		assert.Equal(t, "pag2", r.URL.Query().Get("offset"))
		_, _ = io.WriteString(w, `{"records":[{"id":"rec2","fields":{"numero_albaran":"ALB-2"}}]}`)
	})

	lista, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, llamadas)
	require.Len(t, lista, 2)
	assert.Equal(t, "rec2", lista[1].ID)
}

// Un campo productos corrupto no tumba el listado: el albarán queda sin líneas.
func TestStore_List_ProductosCorruptos(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"records":[{"id":"rec1","fields":{"numero_albaran":"ALB-1","productos":"no-es-json"}}]}`)
	})

	lista, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Empty(t, lista[0].Lineas)
}

func TestStore_Create_AdoptaElIDDelRegistro(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Records []struct {
				Fields map[string]any `json:"fields"`
			} `json:"records"`
			Typecast bool `json:"typecast"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.True(t, body.Typecast)
		assert.Equal(t, "ALB-2024-010", body.Records[0].Fields["numero_albaran"])
		assert.JSONEq(t, `[]`, body.Records[0].Fields["productos"].(string),
			"las líneas van serializadas como JSON embebido")

		_, _ = io.WriteString(w, `{"records":[{"id":"recNEW"}]}`)
	})

	a := &entity.Albaran{ID: "id-provisional", NumeroAlbaran: "ALB-2024-010"}
	require.NoError(t, store.Create(context.Background(), a))
	assert.Equal(t, "recNEW", a.ID, "el ID del almacén sustituye al provisional")
}

// Una actualización parcial solo envía los campos presentes en el patch.
func TestStore_Update_SoloCamposDelPatch(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var body struct {
			Records []struct {
				ID     string         `json:"id"`
				Fields map[string]any `json:"fields"`
			} `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.Equal(t, "rec001", body.Records[0].ID)
		assert.Equal(t, map[string]any{"observaciones": "Revisado"}, body.Records[0].Fields)

		_, _ = io.WriteString(w, `{"records":[{"id":"rec001"}]}`)
	})

	obs := "Revisado"
	err := store.Update(context.Background(), "rec001", entity.AlbaranPatch{Observaciones: &obs})
	require.NoError(t, err)
}

func TestStore_Delete_NoEncontrado(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	err := store.Delete(context.Background(), "recX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un fallo del backend se reporta como almacén no disponible (reintentable);
// el llamador conserva su último estado conocido.
func TestStore_ErrorDelBackend(t *testing.T) {
	store := nuevoStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"error":"INTERNAL"}`)
	})

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
