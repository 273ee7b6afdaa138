package metigan

import "github.com/spf13/viper"

// Configuration keys read by NewFromViper.
const (
	ConfigAPIKey     = "api-key"
	ConfigBaseURL    = "base-url"
	ConfigTimeout    = "timeout"
	ConfigRetryCount = "retry-count"
	ConfigRetryDelay = "retry-delay"
	ConfigDebug      = "debug"
	ConfigRateLimit  = "rate-limit"
	ConfigRateBurst  = "rate-burst"
)

// NewFromViper creates a client from the settings in v. Missing keys take
// their default values. opts are applied after the settings from v.
func NewFromViper(v *viper.Viper, opts ...Option) (*Client, error) {
	v.SetDefault(ConfigBaseURL, defaultBaseURL)
	v.SetDefault(ConfigTimeout, defaultTimeout)
	v.SetDefault(ConfigRetryCount, defaultRetryCount)
	v.SetDefault(ConfigRetryDelay, defaultRetryDelay)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigRateLimit, 0)
	v.SetDefault(ConfigRateBurst, 1)

	fromConfig := []Option{
		WithBaseURL(v.GetString(ConfigBaseURL)),
		WithTimeout(v.GetDuration(ConfigTimeout)),
		WithRetryCount(v.GetInt(ConfigRetryCount)),
		WithRetryDelay(v.GetDuration(ConfigRetryDelay)),
		WithDebug(v.GetBool(ConfigDebug)),
		WithRateLimit(v.GetFloat64(ConfigRateLimit), v.GetInt(ConfigRateBurst)),
	}
	return New(v.GetString(ConfigAPIKey), append(fromConfig, opts...)...)
}
