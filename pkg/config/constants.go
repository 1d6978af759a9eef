package config

const (
	// EnvPrefix namespaces every configuration variable.
	EnvPrefix = "bridge"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BRIDGE_DB_DSN"
	EnvDBHost = "BRIDGE_DB_HOST"
	EnvDBUser = "BRIDGE_DB_USER"
	EnvDBName = "BRIDGE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
