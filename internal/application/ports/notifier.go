package ports

import "context"

type Notifier interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
