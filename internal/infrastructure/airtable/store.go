// Package airtable implementa el puerto de persistencia sobre la API REST de
// Airtable. Cada albarán es un registro; las líneas viajan serializadas como
// JSON dentro del campo de texto "productos", de modo que el núcleo solo ve
// valores estructurados.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

var _ repository.AlbaranRepository = (*Store)(nil)

const defaultBaseURL = "https://api.airtable.com/v0"

// Config credenciales y destino de la base Airtable.
type Config struct {
	Token     string
	BaseID    string
	TableName string
	BaseURL   string // vacío = API pública de Airtable; se sobreescribe en tests
}

// Configured indica si hay credenciales suficientes para usar el backend.
func (c Config) Configured() bool {
	return c.Token != "" && c.BaseID != "" && c.TableName != ""
}

// Store cliente del backend Airtable.
type Store struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewStore construye el cliente.
func NewStore(cfg Config) *Store {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Store{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ── Formato de registro Airtable ──────────────────────────────────────────────

type record struct {
	ID     string  `json:"id,omitempty"`
	Fields *fields `json:"fields"`
}

// fields campos del registro. Punteros con omitempty para que las
// actualizaciones parciales solo envíen lo modificado.
type fields struct {
	NumeroAlbaran      *string          `json:"numero_albaran,omitempty"`
	FechaEmision       *string          `json:"fecha_emision,omitempty"`
	ProveedorNombre    *string          `json:"proveedor_nombre,omitempty"`
	ProveedorCIF       *string          `json:"proveedor_cif_nif,omitempty"`
	ProveedorDireccion *string          `json:"proveedor_direccion,omitempty"`
	ClienteNombre      *string          `json:"cliente_nombre,omitempty"`
	ClienteCIF         *string          `json:"cliente_cif_nif,omitempty"`
	ClienteDireccion   *string          `json:"cliente_direccion,omitempty"`
	Productos          *string          `json:"productos,omitempty"` // JSON embebido con las líneas
	ImporteTotal       *decimal.Decimal `json:"importe_total,omitempty"`
	Firma              *string          `json:"firma,omitempty"`
	Observaciones      *string          `json:"observaciones,omitempty"`
}

type recordPage struct {
	Records []struct {
		ID     string `json:"id"`
		Fields fields `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

type writeRequest struct {
	Records  []record `json:"records"`
	Typecast bool     `json:"typecast"`
}

type writeResponse struct {
	Records []struct {
		ID string `json:"id"`
	} `json:"records"`
}

// ── Operaciones del puerto ────────────────────────────────────────────────────

// List descarga todos los registros, paginando, con orden servidor por
// fecha_emision descendente.
func (s *Store) List(ctx context.Context) ([]*entity.Albaran, error) {
	var out []*entity.Albaran
	offset := ""
	for {
		q := url.Values{}
		q.Set("sort[0][field]", "fecha_emision")
		q.Set("sort[0][direction]", "desc")
		if offset != "" {
			q.Set("offset", offset)
		}
		var page recordPage
		if err := s.do(ctx, http.MethodGet, s.tableURL()+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		for _, r := range page.Records {
			out = append(out, toAlbaran(r.ID, r.Fields))
		}
		if page.Offset == "" {
			return out, nil
		}
		offset = page.Offset
	}
}

// Create da de alta el registro. Airtable asigna el ID definitivo del
// documento, que sustituye al preasignado por el formulario.
func (s *Store) Create(ctx context.Context, albaran *entity.Albaran) error {
	body := writeRequest{
		Records:  []record{{Fields: toFields(albaran)}},
		Typecast: true,
	}
	var resp writeResponse
	if err := s.do(ctx, http.MethodPost, s.tableURL(), body, &resp); err != nil {
		return err
	}
	if len(resp.Records) == 0 {
		return fmt.Errorf("airtable no devolvió el registro creado: %w", domain.ErrStoreUnavailable)
	}
	albaran.ID = resp.Records[0].ID
	return nil
}

// Update envía solo los campos presentes en el patch.
func (s *Store) Update(ctx context.Context, id string, patch entity.AlbaranPatch) error {
	body := writeRequest{
		Records:  []record{{ID: id, Fields: patchToFields(patch)}},
		Typecast: true,
	}
	return s.do(ctx, http.MethodPatch, s.tableURL(), body, nil)
}

// Delete elimina el registro.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, s.tableURL()+"/"+url.PathEscape(id), nil, nil)
}

// ── Cliente HTTP ──────────────────────────────────────────────────────────────

func (s *Store) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(s.cfg.BaseID), url.PathEscape(s.cfg.TableName))
}

func (s *Store) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar petición airtable: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("construir petición airtable: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar a airtable: %v: %w", err, domain.ErrStoreUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("registro airtable: %w", domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detalle, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("airtable respondió %d: %s: %w", resp.StatusCode, detalle, domain.ErrStoreUnavailable)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta airtable: %w", err)
	}
	return nil
}

// ── Conversión registro ⇄ entidad ────────────────────────────────────────────

func toAlbaran(id string, f fields) *entity.Albaran {
	a := &entity.Albaran{ID: id, ImporteTotal: decimal.Zero}
	asignar := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	asignar(&a.NumeroAlbaran, f.NumeroAlbaran)
	asignar(&a.FechaEmision, f.FechaEmision)
	asignar(&a.ProveedorNombre, f.ProveedorNombre)
	asignar(&a.ProveedorCIF, f.ProveedorCIF)
	asignar(&a.ProveedorDireccion, f.ProveedorDireccion)
	asignar(&a.ClienteNombre, f.ClienteNombre)
	asignar(&a.ClienteCIF, f.ClienteCIF)
	asignar(&a.ClienteDireccion, f.ClienteDireccion)
	asignar(&a.Firma, f.Firma)
	asignar(&a.Observaciones, f.Observaciones)
	if f.ImporteTotal != nil {
		a.ImporteTotal = *f.ImporteTotal
	}
	if f.Productos != nil && *f.Productos != "" {
		// Un campo productos corrupto no tumba el listado: se trata como vacío.
		var lineas []entity.LineaAlbaran
		if err := json.Unmarshal([]byte(*f.Productos), &lineas); err == nil {
			a.Lineas = lineas
		}
	}
	return a
}

func toFields(a *entity.Albaran) *fields {
	productos := encodeLineas(a.Lineas)
	total := a.ImporteTotal
	return &fields{
		NumeroAlbaran:      &a.NumeroAlbaran,
		FechaEmision:       &a.FechaEmision,
		ProveedorNombre:    &a.ProveedorNombre,
		ProveedorCIF:       &a.ProveedorCIF,
		ProveedorDireccion: &a.ProveedorDireccion,
		ClienteNombre:      &a.ClienteNombre,
		ClienteCIF:         &a.ClienteCIF,
		ClienteDireccion:   &a.ClienteDireccion,
		Productos:          &productos,
		ImporteTotal:       &total,
		Firma:              &a.Firma,
		Observaciones:      &a.Observaciones,
	}
}

func patchToFields(p entity.AlbaranPatch) *fields {
	f := &fields{
		NumeroAlbaran:      p.NumeroAlbaran,
		FechaEmision:       p.FechaEmision,
		ProveedorNombre:    p.ProveedorNombre,
		ProveedorCIF:       p.ProveedorCIF,
		ProveedorDireccion: p.ProveedorDireccion,
		ClienteNombre:      p.ClienteNombre,
		ClienteCIF:         p.ClienteCIF,
		ClienteDireccion:   p.ClienteDireccion,
		ImporteTotal:       p.ImporteTotal,
		Firma:              p.Firma,
		Observaciones:      p.Observaciones,
	}
	if p.Lineas != nil {
		productos := encodeLineas(*p.Lineas)
		f.Productos = &productos
	}
	return f
}

func encodeLineas(lineas []entity.LineaAlbaran) string {
	if lineas == nil {
		lineas = []entity.LineaAlbaran{}
	}
	payload, err := json.Marshal(lineas)
	if err != nil {
		return "[]"
	}
	return string(payload)
}
