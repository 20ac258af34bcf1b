package config

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsProductionLike returns true for staging and production
func (c *ServerConfig) IsProductionLike() bool {
	return c.Environment == EnvStaging || c.Environment == EnvProduction
}
