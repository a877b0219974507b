package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"

	DefaultDBPath = "wanderbot.db"

	DefaultGeminiModel      = "gemini-2.0-flash"
	DefaultGeminiImageModel = "gemini-2.0-flash-exp-image-generation"
	DefaultGeminiTimeout    = 2 * time.Minute

	DefaultFailureCooldown = 10 * time.Minute
	DefaultTriggerLock     = 60 * time.Second
	DefaultRetentionDays   = 365

	DefaultPhotosTimeout = 10 * time.Second
	DefaultQueryTemplate = "{landmark} {country} landscape"

	DefaultOutputMode         = "image"
	DefaultBackgroundFetch    = "auto"
	DefaultBackgroundTimeout  = 15 * time.Second
	DefaultBackgroundMaxBytes = 4 << 20 // inline images up to 4 MiB, link beyond
	DefaultSettleDelay        = 2 * time.Second

	DefaultBasemapTimeout = 15 * time.Second

	DefaultAbnormalSleepThreshold = 3
	DefaultNightStartHour         = 0
	DefaultNightEndHour           = 5
	DefaultSunriseTimeout         = 10 * time.Second

	DefaultCacheTTL     = 30 * 24 * time.Hour
	DefaultCacheTimeout = 30 * time.Second
)

// DefaultTravelTemplate is the outbound trip announcement. The {landmark} and
// {country} placeholders are replaced with localized destination names.
const DefaultTravelTemplate = "A new journey begins! Today you wake up at {landmark}, {country}. 🌅"

const DefaultAIImagePrompt = "A breathtaking wide-angle travel photograph of {landmark} in {country} at sunrise, golden light, no people, no text."

// Default schedules for maintenance tasks (cron format with seconds field).
var defaultTasks = map[string]TaskConfig{
	"cache_reset":    {Enabled: true, Schedule: "0 0 0 * * *"},
	"monthly_report": {Enabled: true, Schedule: "0 30 9 * * *"},
	"log_retention":  {Enabled: true, Schedule: "0 0 4 * * *"},
}

func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"logger.level": DefaultLogLevel,
		"logger.json":  true,

		"database.path": DefaultDBPath,

		"gemini.model":       DefaultGeminiModel,
		"gemini.image_model": DefaultGeminiImageModel,
		"gemini.timeout":     DefaultGeminiTimeout,

		"travel.dynamic_enabled":           false,
		"travel.failure_cooldown":          DefaultFailureCooldown,
		"travel.trigger_lock":              DefaultTriggerLock,
		"travel.retention_days":            DefaultRetentionDays,
		"travel.ai_image_enabled":          false,
		"travel.ai_image_prompt":           DefaultAIImagePrompt,
		"travel.monthly_summary_enabled":   true,
		"travel.monthly_summary_all_users": true,

		"photos.query_template": DefaultQueryTemplate,
		"photos.timeout":        DefaultPhotosTimeout,

		"render.output_mode":          DefaultOutputMode,
		"render.background_fetch":     DefaultBackgroundFetch,
		"render.background_timeout":   DefaultBackgroundTimeout,
		"render.background_max_bytes": DefaultBackgroundMaxBytes,
		"render.settle_delay":         DefaultSettleDelay,

		"map.highlight":       true,
		"map.basemap_overlay": false,
		"map.basemap_timeout": DefaultBasemapTimeout,

		"behavior.auto_detect":              false,
		"behavior.silent_record":            false,
		"behavior.silent_auto_travel":       false,
		"behavior.abnormal_sleep_threshold": DefaultAbnormalSleepThreshold,
		"behavior.night_start_hour":         DefaultNightStartHour,
		"behavior.night_end_hour":           DefaultNightEndHour,
		"behavior.avatar_filter":            false,
		"behavior.default_latitude":         39.9,
		"behavior.default_longitude":        116.4,
		"behavior.sunrise_timeout":          DefaultSunriseTimeout,

		"cache.enabled": false,
		"cache.ttl":     DefaultCacheTTL,
		"cache.timeout": DefaultCacheTimeout,

		"messages.travel_template": DefaultTravelTemplate,
		"messages.welcome":         "👋 I'm ready! Use /travel and I'll find out where you woke up today.",
		"messages.not_authorized":  "🚫 This command is restricted to the administrator.",
		"messages.general_error":   "❌ Something went wrong. Please try again later.",
		"messages.no_trips":        "🧳 No trips recorded yet. Use /travel to start your journey.",
		"messages.bg_set":          "🖼️ Shared background image updated.",
		"messages.bg_reset":        "🧹 Shared background image removed.",
		"messages.bg_none":         "No shared background image is set.",
	}
	for name, task := range defaultTasks {
		defaults["scheduler.tasks."+name+".enabled"] = task.Enabled
		defaults["scheduler.tasks."+name+".schedule"] = task.Schedule
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
