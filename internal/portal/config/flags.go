package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the hosted REST backend
//	-k string   anonymous API key
//	-d string   SQLite DSN of the local cache
//	-e int      event refresh interval in seconds
//	-n int      announcement refresh interval in seconds
//	-p int      chat poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-e", "-n", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the hosted REST backend")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "anonymous API key")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "local cache SQLite DSN")
	eventInterval := fs.Int("e", int(cfg.EventRefreshInterval.Seconds()), "event refresh interval (in seconds)")
	annInterval := fs.Int("n", int(cfg.AnnouncementRefreshInterval.Seconds()), "announcement refresh interval (in seconds)")
	chatInterval := fs.Int("p", int(cfg.ChatPollInterval.Seconds()), "chat poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.EventRefreshInterval = time.Duration(*eventInterval) * time.Second
	cfg.AnnouncementRefreshInterval = time.Duration(*annInterval) * time.Second
	cfg.ChatPollInterval = time.Duration(*chatInterval) * time.Second
}
