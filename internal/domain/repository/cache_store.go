package repository

import (
	"context"
	"time"
)

// CacheStore define el puerto hacia el caché TTL clave/valor donde se guardan
// representaciones de listado ya serializadas. Es una vista derivada y
// descartable: el almacén relacional es la única fuente de verdad, así que
// vaciar el caché nunca compromete correctitud.
//
// Get nunca bloquea en un miss: devuelve found=false. Set sobrescribe la
// entrada existente y la hace ilegible una vez vencido el TTL. Delete es
// no-op si la clave no existe. Las tres operaciones son atómicas por clave y
// seguras para uso concurrente.
type CacheStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
