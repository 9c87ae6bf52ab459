package cache

import (
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Open connects to url, or starts an embedded in-memory Redis when url is
// empty. The returned close func shuts both down.
func Open(url string) (*redis.Client, func(), error) {
	if url == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", mr.Addr()).Msg("REDIS_URL not set, using embedded in-memory redis")
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		return rdb, func() {
			_ = rdb.Close()
			mr.Close()
		}, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opt)
	return rdb, func() { _ = rdb.Close() }, nil
}
