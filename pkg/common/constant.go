package common

const (
	EnvKeyGoEnv    string = "GO_ENV"
	EnvKeyLogDir   string = "LOG_DIR"
	EnvKeyLogLevel string = "LOG_LEVEL"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDBType         string = "DB_TYPE"
	EnvKeyDBPath         string = "DB_PATH"
	EnvKeyDBHost         string = "DB_HOST"
	EnvKeyDBPort         string = "DB_PORT"
	EnvKeyDBUser         string = "DB_USER"
	EnvKeyDBPassword     string = "DB_PASSWORD"
	EnvKeyDBName         string = "DB_NAME"
	EnvKeyDBSSLMode      string = "DB_SSLMODE"
	EnvKeyDBMaxOpenConns string = "DB_MAX_OPEN_CONNS"
	EnvKeyDBMaxIdleConns string = "DB_MAX_IDLE_CONNS"

	EnvKeyServerPort     string = "SERVER_PORT"
	EnvKeyGrpcPort       string = "GRPC_PORT"
	EnvKeyRequestTimeout string = "REQUEST_TIMEOUT_SECONDS"

	EnvKeyIngestRate  string = "INGEST_RATE"
	EnvKeyIngestBurst string = "INGEST_BURST"

	EnvKeySnapshotBatchSize    string = "SNAPSHOT_BATCH_SIZE"
	EnvKeyAckDelayMinSeconds   string = "ACK_DELAY_MIN_SECONDS"
	EnvKeyAckDelayMaxSeconds   string = "ACK_DELAY_MAX_SECONDS"
	EnvKeyAlertDebounceSeconds string = "ALERT_DEBOUNCE_SECONDS"
	EnvKeySnapshotSeed         string = "SNAPSHOT_SEED"

	EnvKeyRedisAddr     string = "REDIS_ADDR"
	EnvKeyRedisPassword string = "REDIS_PASSWORD"
	EnvKeyRedisDB       string = "REDIS_DB"

	EnvKeyMQTTBroker    string = "MQTT_BROKER"
	EnvKeyMQTTClientID  string = "MQTT_CLIENT_ID"
	EnvKeyMQTTTopicRoot string = "MQTT_TOPIC_ROOT"

	LoggerNameIOTCore        string = "iot_core"
	LoggerNameRepository     string = "repository"
	LoggerNameSnapshotEngine string = "snapshot_engine"
	LoggerNameRestfulServer  string = "restful_server"
	LoggerNameGrpcServer     string = "grpc_server"
	LoggerNameMQTTBridge     string = "mqtt_bridge"
	LoggerNameCache          string = "cache"
	LoggerNameDB             string = "db"

	LoggerFieldIOTCategory string = "category"
	LoggerFieldUserID      string = "user_id"
	LoggerFieldDeviceID    string = "device_id"

	LoggerCategoryUser         string = "user"
	LoggerCategoryDevice       string = "device"
	LoggerCategoryRelationship string = "relationship"
	LoggerCategoryProfile      string = "profile"
	LoggerCategorySnapshot     string = "snapshot"
)
