package testcontainers

import "time"

const (
	MongoImage          = "mongo:8.2.3"
	MongoPort           = "27017"
	MongoNetworkAlias   = "mongo-catalog"
	MongoStartupTimeout = time.Minute

	MongoUsernameEnv = "MONGO_INITDB_ROOT_USERNAME"
	MongoPasswordEnv = "MONGO_INITDB_ROOT_PASSWORD" //nolint:gosec
	MongoDatabaseEnv = "MONGO_INITDB_DATABASE"

	ProjectLabel = "com.biomarket.project"
)
