package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const cleanupInterval = 10 * time.Minute

var _ repository.CacheStore = (*Memory)(nil)

// Memory caché TTL en proceso respaldado por patrickmn/go-cache. Seguro para
// lecturas, escrituras y borrados concurrentes; cada entrada vence con su
// propio TTL.
type Memory struct {
	c *gocache.Cache
}

// NewMemory construye el backend en memoria. No hay TTL por defecto: cada
// Set trae el suyo.
func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Get devuelve el valor vigente para key, o found=false si no hay o venció.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

// Set guarda value bajo key con el TTL dado, sobrescribiendo lo que hubiera.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.Set(key, value, ttl)
	return nil
}

// Delete elimina la entrada; no-op si no existe.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
