package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	JWTRefreshTokenExpiry   int     `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	AllowUserCreation       bool    `envconfig:"ALLOW_USER_CREATION" default:"true"`
	WebhookUrl              string  `envconfig:"WEBHOOK_URL"`
	DefaultCurrency         string  `envconfig:"DEFAULT_CURRENCY" default:"ARS"`
	ScheduleIntervalDays    int     `envconfig:"SCHEDULE_INTERVAL_DAYS" default:"30"` // 30 = monthly
	TopDebtorsLimit         int     `envconfig:"TOP_DEBTORS_LIMIT" default:"10"`
	OverdueSweepInterval    int     `envconfig:"OVERDUE_SWEEP_INTERVAL" default:"86400"` // in seconds, default daily
}
