package infra

import (
	"log"

	"github.com/tnqbao/gau-document-service/config"
	"github.com/tnqbao/gau-document-service/infra/produce"
)

// Infra holds the external clients the service depends on. Only the client
// for the configured storage backend is initialized; RabbitMQ is optional
// and its absence just disables event publishing. There is no singleton:
// the instance is threaded explicitly into the repository and controller.
type Infra struct {
	Logger   *LoggerClient
	Minio    *MinioClient
	S3       *S3Client
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce
}

func InitInfra(cfg *config.Config) *Infra {
	env := cfg.EnvConfig

	logger := InitLoggerClient(env)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	infra := &Infra{Logger: logger}

	switch env.Storage.Backend {
	case "minio":
		infra.Minio = InitMinioClient(env)
	case "s3":
		infra.S3 = InitS3Client(env)
	case "redis":
		infra.Redis = InitRedisClient(env)
	case "memory":
		// no external client needed
	default:
		panic("Unknown storage backend: " + env.Storage.Backend)
	}

	// Event publishing is optional - skipped entirely when no broker is configured
	if env.RabbitMQ.Host != "" {
		rabbitMQ, err := InitRabbitMQClient(env)
		if err != nil {
			log.Printf("Warning: Failed to initialize RabbitMQ client: %v (event publishing disabled)", err)
		} else {
			infra.RabbitMQ = rabbitMQ
			infra.Produce = produce.InitProduce(rabbitMQ.Channel, env.RabbitMQ.Exchange)
		}
	}

	return infra
}
