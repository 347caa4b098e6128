package repository

import (
	"context"
	"fmt"

	"gasp-api/internal/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the Store selected by cfg.Store.Driver. The returned func
// releases the backend's resources and must be called on shutdown.
func Open(ctx context.Context, cfg config.Config) (Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, &StoreError{Op: "connect", Err: err}
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.StoreDriverDynamoDB:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.DynamoDB.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.DynamoDB.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, nil, &StoreError{Op: "load aws config", Err: err}
		}
		return NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDB.Table), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("repository: unknown store driver %q", cfg.Store.Driver)
	}
}
