// Package memory implementa el sustituto en memoria del puerto de persistencia.
// Se usa como reserva cuando no hay backend configurado o alcanzable en el
// arranque: la aplicación sigue siendo utilizable en modo degradado, sin
// persistencia entre sesiones.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

var _ repository.AlbaranRepository = (*Store)(nil)

// Store almacén en memoria de albaranes. Guarda copias propias y devuelve
// copias, de modo que los llamadores nunca comparten memoria con el almacén.
type Store struct {
	mu        sync.RWMutex
	albaranes map[string]*entity.Albaran
}

// NewStore construye el almacén, opcionalmente sembrado con albaranes de
// ejemplo para el modo degradado.
func NewStore(seed ...*entity.Albaran) *Store {
	s := &Store{albaranes: make(map[string]*entity.Albaran, len(seed))}
	for _, a := range seed {
		s.albaranes[a.ID] = a.Clone()
	}
	return s
}

// List devuelve todos los albaranes ordenados por fecha_emision descendente,
// el mismo orden base que entrega el backend remoto.
func (s *Store) List(_ context.Context) ([]*entity.Albaran, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Albaran, 0, len(s.albaranes))
	for _, a := range s.albaranes {
		out = append(out, a.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FechaEmision != out[j].FechaEmision {
			return out[i].FechaEmision > out[j].FechaEmision
		}
		return out[i].ID < out[j].ID // desempate estable entre ejecuciones
	})
	return out, nil
}

// Create persiste un albarán nuevo. Si el ID va vacío, el almacén lo asigna.
func (s *Store) Create(_ context.Context, albaran *entity.Albaran) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if albaran.ID == "" {
		albaran.ID = uuid.New().String()
	}
	if _, existe := s.albaranes[albaran.ID]; existe {
		return fmt.Errorf("albarán %s ya existe: %w", albaran.ID, domain.ErrConflict)
	}
	s.albaranes[albaran.ID] = albaran.Clone()
	return nil
}

// Update aplica una actualización parcial sobre el albarán indicado.
func (s *Store) Update(_ context.Context, id string, patch entity.AlbaranPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.albaranes[id]
	if !ok {
		return fmt.Errorf("albarán %s: %w", id, domain.ErrNotFound)
	}
	patch.Apply(a)
	return nil
}

// Delete elimina el albarán indicado.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.albaranes[id]; !ok {
		return fmt.Errorf("albarán %s: %w", id, domain.ErrNotFound)
	}
	delete(s.albaranes, id)
	return nil
}
