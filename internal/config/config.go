package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or text
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`   // publish ranked stream after each run
	TTL      string `mapstructure:"ttl"`       // duration string, e.g., "48h"
	TopN     int    `mapstructure:"top_n"`     // items published per day
	KeyScope string `mapstructure:"key_scope"` // key prefix, e.g., "pulse"
}

// RedditConfig controls the social source.
type RedditConfig struct {
	BaseURL     string   `mapstructure:"base_url"`
	UserAgent   string   `mapstructure:"user_agent"`
	Subreddits  []string `mapstructure:"subreddits"`
	LimitPerSub int      `mapstructure:"limit_per_sub"`
	TimeFilter  string   `mapstructure:"time_filter"` // hour, day, week...
	RatePerSec  float64  `mapstructure:"rate_per_sec"`
	Timeout     string   `mapstructure:"timeout"`
}

// NewsConfig controls the RSS news source.
type NewsConfig struct {
	Feeds       map[string]string `mapstructure:"feeds"` // source name -> feed URL
	Timeout     string            `mapstructure:"timeout"`
	PetKeywords []string          `mapstructure:"pet_keywords"`
	MaxSummary  int               `mapstructure:"max_summary"`
}

// DataSources groups available collectors.
type DataSources struct {
	Reddit RedditConfig `mapstructure:"reddit"`
	News   NewsConfig   `mapstructure:"news"`
}

// RelevanceConfig holds the origin policy and vocabulary location.
type RelevanceConfig struct {
	VocabularyFile    string   `mapstructure:"vocabulary_file"`
	HomeOrigins       []string `mapstructure:"home_origins"`
	AdjacentOrigins   []string `mapstructure:"adjacent_origins"`
	AdjacentThreshold float64  `mapstructure:"adjacent_threshold"`
	DefaultThreshold  float64  `mapstructure:"default_threshold"`
}

// RankingConfig tunes the trending ranker.
type RankingConfig struct {
	MajorSources []string `mapstructure:"major_sources"`
}

// PipelineConfig controls a pipeline run.
type PipelineConfig struct {
	DataDir       string  `mapstructure:"data_dir"`
	NewsThreshold float64 `mapstructure:"news_threshold"`
	MinTotalItems int     `mapstructure:"min_total_items"`
	MinSources    int     `mapstructure:"min_sources"`
	TopN          int     `mapstructure:"top_n"`
	Schedule      string  `mapstructure:"schedule"` // cron expression
	Timezone      string  `mapstructure:"timezone"`
	MetricsFile   string  `mapstructure:"metrics_file"`
}

// OpenAIConfig configures the optional digest summarizer.
type OpenAIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

// SummaryConfig controls digest summary selection.
type SummaryConfig struct {
	Origins     []string `mapstructure:"origins"`
	PetKeywords []string `mapstructure:"pet_keywords"`
	MaxItems    int      `mapstructure:"max_items"`
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sources   DataSources     `mapstructure:"sources"`
	Relevance RelevanceConfig `mapstructure:"relevance"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Summary   SummaryConfig   `mapstructure:"summary"`
}

// DefaultNewsKeywords decide whether a feed entry is pet-related.
var DefaultNewsKeywords = []string{
	"dog", "dogs", "puppy", "puppies", "canine",
	"cat", "cats", "kitten", "kittens", "feline",
	"pet", "pets", "animal", "animals",
	"veterinary", "vet", "veterinarian",
	"rescue", "shelter", "adoption",
	"paw", "tail", "fur", "breed",
	"collar", "leash",
}

// DefaultDigestKeywords select posts for the digest summary.
var DefaultDigestKeywords = []string{
	"dog", "dogs", "puppy", "puppies", "cat", "cats", "kitten", "kittens", "pet", "pets",
}

// FillDefaults applies default values if not provided. Thresholds where
// zero is a meaningful value are defaulted by SetDefaults instead.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "text"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Redis.TTL == "" {
		c.Redis.TTL = "48h"
	}
	if c.Redis.TopN == 0 {
		c.Redis.TopN = 50
	}
	if c.Redis.KeyScope == "" {
		c.Redis.KeyScope = "pulse"
	}

	r := &c.Sources.Reddit
	if r.BaseURL == "" {
		r.BaseURL = "https://www.reddit.com"
	}
	if r.UserAgent == "" {
		r.UserAgent = "pet-pulse/1.0 (daily pet digest)"
	}
	if len(r.Subreddits) == 0 {
		r.Subreddits = []string{
			"dogs", "puppy101", "DogTraining", "canada",
			"toronto", "vancouver", "montreal", "calgary", "ottawa", "Edmonton", "winnipeg",
			"halifax", "Quebec", "VictoriaBC", "Saskatoon", "Regina",
			"KingstonOntario", "londonontario", "Guelph", "Barrie", "kelowna",
			"waterloo", "windsorontario", "Hamilton", "Kitchener", "StJohnsNL",
		}
	}
	if r.LimitPerSub == 0 {
		r.LimitPerSub = 15
	}
	if r.TimeFilter == "" {
		r.TimeFilter = "day"
	}
	if r.RatePerSec == 0 {
		r.RatePerSec = 0.5
	}
	if r.Timeout == "" {
		r.Timeout = "15s"
	}

	n := &c.Sources.News
	if len(n.Feeds) == 0 {
		n.Feeds = map[string]string{
			"Global News":      "https://globalnews.ca/feed/",
			"Google News Dogs": "https://news.google.com/rss/search?q=dogs+canada&hl=en-CA&gl=CA&ceid=CA:en",
			"Google News Cats": "https://news.google.com/rss/search?q=cats+canada&hl=en-CA&gl=CA&ceid=CA:en",
			"Google News Pets": "https://news.google.com/rss/search?q=pets+canada&hl=en-CA&gl=CA&ceid=CA:en",
		}
	}
	if n.Timeout == "" {
		n.Timeout = "15s"
	}
	if len(n.PetKeywords) == 0 {
		n.PetKeywords = DefaultNewsKeywords
	}
	if n.MaxSummary == 0 {
		n.MaxSummary = 500
	}

	p := &c.Pipeline
	if p.DataDir == "" {
		p.DataDir = "./data"
	}
	if p.MinTotalItems == 0 {
		p.MinTotalItems = 10
	}
	if p.MinSources == 0 {
		p.MinSources = 1
	}
	if p.TopN == 0 {
		p.TopN = 50
	}
	if p.Schedule == "" {
		p.Schedule = "0 7 * * *"
	}
	if p.Timezone == "" {
		p.Timezone = "America/Toronto"
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "English"
	}

	if len(c.Summary.PetKeywords) == 0 {
		c.Summary.PetKeywords = DefaultDigestKeywords
	}
	if c.Summary.MaxItems == 0 {
		c.Summary.MaxItems = 10
	}
}
