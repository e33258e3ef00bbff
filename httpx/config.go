package httpx

// ErrorLoggingConfig controls which handler errors are logged
type ErrorLoggingConfig struct {
	// Enable error logging (default false)
	Enable bool `mapstructure:"enable" json:"enable"`

	// IgnoreHTTPStatus 不记录的 HTTP 状态码，例如 []int{404, 422}
	IgnoreHTTPStatus []int `mapstructure:"ignore_http_status" json:"ignore_http_status"`

	// FullErrorChain logs the whole wrapped chain (default true)
	FullErrorChain bool `mapstructure:"full_error_chain" json:"full_error_chain"`

	// LogLevel error / warn / info (default error)
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// DefaultErrorLoggingConfig 默认不记录
func DefaultErrorLoggingConfig() ErrorLoggingConfig {
	return ErrorLoggingConfig{
		Enable:           false,
		IgnoreHTTPStatus: []int{},
		FullErrorChain:   true,
		LogLevel:         "error",
	}
}
