package configs

type Configs struct {
	// App configuration
	AppName               string  `mapstructure:"app_name"`
	AppEnv                string  `mapstructure:"app_env"`
	AppLogLevel           string  `mapstructure:"app_log_level"`
	AppMetricSamplingRate float64 `mapstructure:"app_metric_sampling_rate"`
	AppPort               int     `mapstructure:"app_port"`
	AppVersion            string  `mapstructure:"app_version"`

	// MySQL configuration
	MysqlDbName         string `mapstructure:"mysql_db_name"`
	MysqlMasterHost     string `mapstructure:"mysql_master_host"`
	MysqlMasterPassword string `mapstructure:"mysql_master_password"`
	MysqlMasterPort     int    `mapstructure:"mysql_master_port"`
	MysqlMasterUsername string `mapstructure:"mysql_master_username"`
	MysqlSlaveHost      string `mapstructure:"mysql_slave_host"`
	MysqlSlavePassword  string `mapstructure:"mysql_slave_password"`
	MysqlSlavePort      int    `mapstructure:"mysql_slave_port"`
	MysqlSlaveUsername  string `mapstructure:"mysql_slave_username"`

	// Model artifact configuration
	ModelDir                   string `mapstructure:"model_dir"`
	ClassificationArtifactFile string `mapstructure:"classification_artifact_file"`
	RegressionArtifactFile     string `mapstructure:"regression_artifact_file"`

	// History configuration
	HistoryMaxPageSize     int `mapstructure:"history_max_page_size"`
	HistoryDefaultPageSize int `mapstructure:"history_default_page_size"`
}
