package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteBaseURLRequired        = runtimeconfig.ErrSiteBaseURLRequired
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrPlannerPostLimitInvalid    = runtimeconfig.ErrPlannerPostLimitInvalid
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	ContentConfig   = runtimeconfig.ContentConfig
	ParserConfig    = runtimeconfig.ParserConfig
	PlannerConfig   = runtimeconfig.PlannerConfig
	CacheConfig     = runtimeconfig.CacheConfig
	StorageConfig   = runtimeconfig.StorageConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
	CommandsConfig  = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
