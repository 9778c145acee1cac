package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/frain-dev/partrotate/util"
)

var cfgSingleton atomic.Value

const (
	DevelopmentEnvironment string = "development"

	// DefaultTimezone is the zone partition boundaries are computed in
	// when the configuration does not name one.
	DefaultTimezone string = "Europe/London"
)

// ErrInconsistentWindow rejects configurations where a partition could be
// retired before it ever becomes the active range.
var ErrInconsistentWindow = errors.New("retain_days must exceed lead_days plus step_count*interval_days")

type NotificationProvider string

const (
	TelegramNotificationProvider NotificationProvider = "telegram"
	SlackNotificationProvider    NotificationProvider = "slack"
	EmailNotificationProvider    NotificationProvider = "email"
	NoopNotificationProvider     NotificationProvider = "noop"
)

type DatabaseConfiguration struct {
	Host             string   `json:"host" envconfig:"PARTROTATE_DB_HOST"`
	Port             uint32   `json:"port" envconfig:"PARTROTATE_DB_PORT"`
	User             string   `json:"user" envconfig:"PARTROTATE_DB_USER"`
	Password         string   `json:"password" envconfig:"PARTROTATE_DB_PASSWORD"`
	Databases        []string `json:"databases"`
	Tables           []string `json:"tables"`
	OpTimeoutSeconds uint64   `json:"op_timeout_seconds" envconfig:"PARTROTATE_DB_OP_TIMEOUT_SECONDS"`
	MaxWorkers       int      `json:"max_workers" envconfig:"PARTROTATE_MAX_WORKERS"`
}

// WindowConfiguration is the rolling maintenance window. For offset i in
// [0, step_count) a run creates the partition bounded at
// now + lead_days + i*interval_days and retires the one whose contents
// just aged past retain_days.
type WindowConfiguration struct {
	LeadDays     int `json:"lead_days" envconfig:"PARTROTATE_LEAD_DAYS"`
	RetainDays   int `json:"retain_days" envconfig:"PARTROTATE_RETAIN_DAYS"`
	StepCount    int `json:"step_count" envconfig:"PARTROTATE_STEP_COUNT"`
	IntervalDays int `json:"interval_days" envconfig:"PARTROTATE_INTERVAL_DAYS"`
}

type TelegramConfiguration struct {
	BotToken string `json:"bot_token" envconfig:"PARTROTATE_TELEGRAM_BOT_TOKEN"`
	ChatID   string `json:"chat_id" envconfig:"PARTROTATE_TELEGRAM_CHAT_ID"`
}

type SlackConfiguration struct {
	WebhookURL string `json:"webhook_url" envconfig:"PARTROTATE_SLACK_WEBHOOK_URL"`
}

type SMTPConfiguration struct {
	URL      string `json:"url" envconfig:"PARTROTATE_SMTP_URL"`
	Port     uint32 `json:"port" envconfig:"PARTROTATE_SMTP_PORT"`
	Username string `json:"username" envconfig:"PARTROTATE_SMTP_USERNAME"`
	Password string `json:"password" envconfig:"PARTROTATE_SMTP_PASSWORD"`
	From     string `json:"from" envconfig:"PARTROTATE_SMTP_FROM"`
	To       string `json:"to" envconfig:"PARTROTATE_SMTP_TO"`
}

type NotificationConfiguration struct {
	Type     NotificationProvider  `json:"type" envconfig:"PARTROTATE_NOTIFICATION_PROVIDER"`
	Telegram TelegramConfiguration `json:"telegram"`
	Slack    SlackConfiguration    `json:"slack"`
}

type LoggerConfiguration struct {
	Level string `json:"level" envconfig:"PARTROTATE_LOG_LEVEL"`
}

type Configuration struct {
	Database     DatabaseConfiguration     `json:"database"`
	Window       WindowConfiguration       `json:"window"`
	Notification NotificationConfiguration `json:"notification"`
	SMTP         SMTPConfiguration         `json:"smtp"`
	Logger       LoggerConfiguration       `json:"logger"`
	Timezone     string                    `json:"timezone" envconfig:"PARTROTATE_TIMEZONE"`
	Topic        string                    `json:"topic" envconfig:"PARTROTATE_TOPIC"`
	Environment  string                    `json:"env" envconfig:"PARTROTATE_ENV"`
}

func LoadConfig(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}

	defer f.Close()

	c := new(Configuration)

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return err
	}

	// Environment variables take precedence over the file.
	if err := envconfig.Process("", c); err != nil {
		return err
	}

	setDefaults(c)

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %v", c.Timezone, err)
	}

	if err := ensureWindow(c.Window); err != nil {
		return err
	}

	if err := ensureDatabase(c.Database); err != nil {
		return err
	}

	if err := ensureNotification(c); err != nil {
		return err
	}

	cfgSingleton.Store(c)
	return nil
}

func setDefaults(c *Configuration) {
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}

	if c.Database.OpTimeoutSeconds == 0 {
		c.Database.OpTimeoutSeconds = 30
	}

	if c.Database.MaxWorkers == 0 {
		c.Database.MaxWorkers = 4
	}

	if c.Window.IntervalDays == 0 {
		c.Window.IntervalDays = 1
	}

	if c.Notification.Type == "" {
		c.Notification.Type = NoopNotificationProvider
	}

	if util.IsStringEmpty(c.Timezone) {
		c.Timezone = DefaultTimezone
	}

	if util.IsStringEmpty(c.Logger.Level) {
		c.Logger.Level = "info"
	}

	// if it's still empty, set it to development
	if util.IsStringEmpty(c.Environment) {
		c.Environment = DevelopmentEnvironment
	}
}

func ensureWindow(w WindowConfiguration) error {
	if w.LeadDays < 0 || w.RetainDays < 0 {
		return errors.New("lead_days and retain_days cannot be negative")
	}

	if w.StepCount < 1 {
		return errors.New("step_count must be at least 1")
	}

	if w.IntervalDays < 1 {
		return errors.New("interval_days must be at least 1")
	}

	if w.RetainDays <= w.LeadDays+w.StepCount*w.IntervalDays {
		return ErrInconsistentWindow
	}

	return nil
}

func ensureDatabase(d DatabaseConfiguration) error {
	if util.IsStringEmpty(d.Host) {
		return errors.New("database host is required")
	}

	if len(d.Databases) == 0 {
		return errors.New("at least one database is required")
	}

	if len(d.Tables) == 0 {
		return errors.New("at least one table is required")
	}

	return nil
}

func ensureNotification(c *Configuration) error {
	switch c.Notification.Type {
	case TelegramNotificationProvider:
		if util.IsStringEmpty(c.Notification.Telegram.BotToken) || util.IsStringEmpty(c.Notification.Telegram.ChatID) {
			return errors.New("bot_token and chat_id are required for telegram notifications")
		}
	case SlackNotificationProvider:
		if util.IsStringEmpty(c.Notification.Slack.WebhookURL) {
			return errors.New("webhook_url is required for slack notifications")
		}
	case EmailNotificationProvider:
		if util.IsStringEmpty(c.SMTP.URL) || util.IsStringEmpty(c.SMTP.To) {
			return errors.New("smtp url and recipient are required for email notifications")
		}
	case NoopNotificationProvider:
	default:
		return fmt.Errorf("unknown notification provider - '%s'", c.Notification.Type)
	}

	return nil
}

// Get fetches the application configuration. LoadConfig must have been called
// previously for this to work.
// Use this when you need to get access to the config object at runtime
func Get() (Configuration, error) {
	c, ok := cfgSingleton.Load().(*Configuration)
	if !ok {
		return Configuration{}, errors.New("call Load before this function")
	}

	return *c, nil
}
