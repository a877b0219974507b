// Package config provides configuration loading, defaults, and validation
// for the Wanderbot application. Values come from defaults, an optional
// config.yaml, and BOT_-prefixed environment variables, in that order.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config is the root configuration for all application components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Travel    TravelConfig    `mapstructure:"travel"`
	Photos    PhotosConfig    `mapstructure:"photos"`
	Render    RenderConfig    `mapstructure:"render"`
	Map       MapConfig       `mapstructure:"map"`
	Behavior  BehaviorConfig  `mapstructure:"behavior"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot transport settings. BotInfo is populated at
// startup from GetMe and is not read from configuration.
type TelegramConfig struct {
	Token       string `mapstructure:"token"    validate:"required"`
	AdminUserID int64  `mapstructure:"admin_id" validate:"required,gt=0"`

	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// GeminiConfig holds the Gemini API settings shared by the chat-completion
// and image-generation clients.
type GeminiConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	ImageModel string        `mapstructure:"image_model"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"min=1s,max=10m"`
}

// TravelConfig controls destination resolution and trip recording.
type TravelConfig struct {
	DynamicEnabled  bool          `mapstructure:"dynamic_enabled"`
	CustomContext   string        `mapstructure:"custom_context"`
	FailureCooldown time.Duration `mapstructure:"failure_cooldown"`
	TriggerLock     time.Duration `mapstructure:"trigger_lock"     validate:"min=0"`
	RetentionDays   int           `mapstructure:"retention_days"   validate:"min=1"`

	AIImageEnabled bool   `mapstructure:"ai_image_enabled"`
	AIImagePrompt  string `mapstructure:"ai_image_prompt"`

	MonthlySummaryEnabled  bool `mapstructure:"monthly_summary_enabled"`
	MonthlySummaryAllUsers bool `mapstructure:"monthly_summary_all_users"`

	// Deprecated: accepted for backward compatibility, has no effect.
	LegacyTriggerWord string `mapstructure:"legacy_trigger_word"`
}

// PhotosConfig holds stock-photo provider settings. Either key may be empty;
// photo replacement is skipped when both are.
type PhotosConfig struct {
	UnsplashKey   string        `mapstructure:"unsplash_key"`
	PexelsKey     string        `mapstructure:"pexels_key"`
	QueryTemplate string        `mapstructure:"query_template"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"min=1s,max=1m"`
}

// RenderConfig controls card rendering and background-image handling.
type RenderConfig struct {
	OutputMode         string        `mapstructure:"output_mode"          validate:"oneof=text image"`
	BackgroundFetch    string        `mapstructure:"background_fetch"     validate:"oneof=auto always never"`
	BackgroundTimeout  time.Duration `mapstructure:"background_timeout"   validate:"min=1s,max=2m"`
	BackgroundMaxBytes int64         `mapstructure:"background_max_bytes" validate:"min=0"`
	SettleDelay        time.Duration `mapstructure:"settle_delay"         validate:"min=0,max=30s"`

	// Deprecated: accepted for backward compatibility, has no effect.
	LegacyQuality int `mapstructure:"legacy_quality"`
}

// MapConfig controls world-map card behavior.
type MapConfig struct {
	Highlight      bool          `mapstructure:"highlight"`
	BasemapOverlay bool          `mapstructure:"basemap_overlay"`
	BasemapToken   string        `mapstructure:"basemap_token"`
	BasemapTimeout time.Duration `mapstructure:"basemap_timeout" validate:"min=1s,max=1m"`
}

// BehaviorConfig controls the message-observation middleware: counters,
// night-owl detection, and the experimental sleep-pattern auto trigger.
type BehaviorConfig struct {
	AutoDetect       bool    `mapstructure:"auto_detect"`
	AutoDetectChats  []int64 `mapstructure:"auto_detect_chats"`
	SilentRecord     bool    `mapstructure:"silent_record"`
	SilentAutoTravel bool    `mapstructure:"silent_auto_travel"`

	AbnormalSleepThreshold int `mapstructure:"abnormal_sleep_threshold" validate:"min=1"`

	NightStartHour int  `mapstructure:"night_start_hour" validate:"min=0,max=23"`
	NightEndHour   int  `mapstructure:"night_end_hour"   validate:"min=0,max=23"`
	AvatarFilter   bool `mapstructure:"avatar_filter"`

	DefaultLatitude  float64       `mapstructure:"default_latitude"  validate:"min=-90,max=90"`
	DefaultLongitude float64       `mapstructure:"default_longitude" validate:"min=-180,max=180"`
	SunriseTimeout   time.Duration `mapstructure:"sunrise_timeout"   validate:"min=1s,max=1m"`
}

// CacheConfig controls durable uploads of rendered card images.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	UploadURL string        `mapstructure:"upload_url" validate:"omitempty,url"`
	TTL       time.Duration `mapstructure:"ttl"        validate:"min=0"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"min=1s,max=1m"`
}

// TaskConfig describes a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds user-facing message templates.
type MessagesConfig struct {
	TravelTemplate string `mapstructure:"travel_template" validate:"required"`
	Welcome        string `mapstructure:"welcome"`
	NotAuthorized  string `mapstructure:"not_authorized"`
	GeneralError   string `mapstructure:"general_error"`
	NoTrips        string `mapstructure:"no_trips"`
	BgSet          string `mapstructure:"bg_set"`
	BgReset        string `mapstructure:"bg_reset"`
	BgNone         string `mapstructure:"bg_none"`
}

// IsAdmin reports whether the given user is the configured administrator.
func (c *Config) IsAdmin(userID int64) bool {
	return userID == c.Telegram.AdminUserID
}
