package config

type (
	InternalConfig struct {
		App          App
		AuthProvider AuthProvider
		Minio        MinioInternal
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		Minio      Minio
		RabbitMQ   RabbitMQ
		Logger     Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		Address         string
		Timezone        string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
		// AdminAllowlistEmails is the bounded operator override: principals
		// with these addresses and no claim role resolve to admin. It is an
		// explicit config value, never a pattern match.
		AdminAllowlistEmails []string

		UploadMaxRequestsPerMinute int
		UploadBlockTimeInMinute    int
	}

	AuthProvider struct {
		BaseURL    string
		ServiceKey string
	}

	MinioInternal struct {
		BucketName             string
		PresignedURLExpMinutes int
		UploadMaxSizeInMB      int64
	}

	PostgresDB struct {
		Host     string
		Port     string
		DBName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
