package data

import (
	"wellrng/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewResultRepo,
	NewCheckpointRepo,
	NewResultPublisher,
	NewJobQueue,
	NewRunIDGenerator,
)

// Data 外部存储句柄，db 与 redis 均可能为 nil
type Data struct {
	db    *gorm.DB
	redis *redis.Client
}

// Redis 返回 Redis 客户端，未配置时为 nil
func (d *Data) Redis() *redis.Client {
	if d == nil {
		return nil
	}
	return d.redis
}

// NewData .
func NewData(c *conf.Data, l log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(log.With(l, "module", "data"))

	// 初始化数据库（可选）
	var db *gorm.DB
	if src := c.GetDatabase().GetSource(); src != "" {
		var err error
		db, err = gorm.Open(postgres.Open(src), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, nil, err
		}
		if err := migrate(db, helper); err != nil {
			return nil, nil, err
		}
		helper.Info("database connected, results table migrated")
	} else {
		helper.Warn("database source not configured, results kept in memory")
	}

	// 初始化 Redis（可选）
	var rdb *redis.Client
	if c.GetRedis().GetAddr() != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         c.GetRedis().GetAddr(),
			Password:     c.GetRedis().GetPassword(),
			DB:           int(c.GetRedis().GetDb()),
			ReadTimeout:  c.GetRedis().GetReadTimeout(),
			WriteTimeout: c.GetRedis().GetWriteTimeout(),
		})
		helper.Info("redis client initialized")
	}

	cleanup := func() {
		// 关闭数据库连接
		if db != nil {
			closeDB(db, helper)
		}

		// 关闭 Redis 连接
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				helper.Errorf("failed to close redis: %v", err)
				return
			}
			helper.Info("redis connection closed")
		}
	}

	return &Data{
		db:    db,
		redis: rdb,
	}, cleanup, nil
}

// migrate 建表，失败时关闭连接池
func migrate(db *gorm.DB, helper *log.Helper) error {
	if err := db.AutoMigrate(&resultPO{}); err != nil {
		helper.Errorf("auto migrate failed: %v", err)
		closeDB(db, helper)
		return err
	}
	return nil
}

func closeDB(db *gorm.DB, helper *log.Helper) {
	sqlDB, err := db.DB()
	if err != nil {
		helper.Errorf("failed to obtain sql.DB from gorm: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		helper.Errorf("failed to close database: %v", err)
		return
	}
	helper.Info("database connection closed")
}
