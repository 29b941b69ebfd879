package config

import (
	"EatBefore/cmd/database/migrate"
	"EatBefore/internal/utils"
	"EatBefore/pkg/kv"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ConnectStore opens the key-value store selected by store.driver.
func ConnectStore(ctx context.Context, cfg *utils.Config, log zerolog.Logger) (kv.Store, error) {
	switch cfg.Store.Driver {
	case utils.StoreDriverBolt:
		store, err := kv.NewBoltStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("path", cfg.Store.Path).Msg("store opened")
		return store, nil

	case utils.StoreDriverPostgres:
		db, err := ConnectDB(cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		if err := migration.Migrate(db); err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("host", cfg.Store.Postgres.Host).Msg("store opened")
		return kv.NewGormStore(db), nil

	case utils.StoreDriverS3:
		s3 := cfg.Store.S3
		store, err := kv.NewS3Store(ctx, kv.S3Config{
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Prefix:    s3.Prefix,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
		}, log)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("bucket", s3.Bucket).Msg("store opened")
		return store, nil

	case utils.StoreDriverMemory:
		log.Warn().Msg("using in-memory store, nothing survives a restart")
		return kv.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
