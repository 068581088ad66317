package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-g string   gRPC health probe bind address
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-l int      reminder lookahead, minutes
//	-z string   scheduler time zone (IANA name)
//	-m string   SMTP host; empty logs reminders instead of mailing them
//
// Duration flags are whole numbers in the unit above.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-l", "-z", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port of the gRPC health probe")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "scheduler time zone")
	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	lookahead := fs.Int("l", int(config.ReminderLookahead.Minutes()), "reminder lookahead (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only explicitly passed duration flags win, so "90m" from JSON survives
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "l":
			config.ReminderLookahead = time.Duration(*lookahead) * time.Minute
		}
	})
}
