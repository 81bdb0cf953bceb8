package asynqserver

import (
	"github.com/hibiken/asynq"

	"github.com/barangay-connect/backend/internal/cache"
	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/queue/processor"
	"github.com/barangay-connect/backend/internal/queue/task"
	"github.com/barangay-connect/backend/internal/worker"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendOTPSMSTaskName, processor.NewSendOTPSMSProcessor(workers))
	mux.Handle(task.SendOTPEmailTaskName, processor.NewSendOTPEmailProcessor(workers))
	queues := map[string]int{
		task.SendOTPSMSQueueName:   2,
		task.SendOTPEmailQueueName: 1,
	}
	return mux, queues
}
