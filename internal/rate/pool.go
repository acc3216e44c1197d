package rate

import (
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Pool agrupa los limiters por ámbito: uno global para toda la API y uno
// más estricto para login. Con Redis configurado los contadores se comparten
// entre réplicas; sin Redis cada proceso cuenta por su lado.
type Pool struct {
	Global Limiter
	Login  Limiter
}

type Limits struct {
	GlobalMax    int
	GlobalWindow time.Duration
	LoginMax     int
	LoginWindow  time.Duration
}

func NewRedisPool(client *rdb.Client, prefix string, l Limits) *Pool {
	return &Pool{
		Global: NewRedisLimiter(client, prefix, l.GlobalMax, l.GlobalWindow),
		Login:  NewRedisLimiter(client, prefix+"login:", l.LoginMax, l.LoginWindow),
	}
}

func NewMemoryPool(l Limits) *Pool {
	return &Pool{
		Global: NewMemoryLimiter(l.GlobalMax, l.GlobalWindow),
		Login:  NewMemoryLimiter(l.LoginMax, l.LoginWindow),
	}
}
