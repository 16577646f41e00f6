package config

const (
	defaultDataDir         = "~/.local/share/prediction-web"
	defaultLogDir          = "~/.local/share/prediction-web/logs"
	defaultAPIBind         = "127.0.0.1:8099"
	defaultClaimTTLMinutes = 30
	defaultScoreMin        = 0
	defaultScoreMax        = 110
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Review: Review{
			ClaimTTLMinutes: defaultClaimTTLMinutes,
			StrictOwnership: true,
			Outcomes:        []string{"0", "1"},
			ScoreMin:        defaultScoreMin,
			ScoreMax:        defaultScoreMax,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
