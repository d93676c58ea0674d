package config

import (
	"flag"
	"os"
	"time"

	"github.com/Alok0227/rallly/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   HMAC secret key for housekeeping tokens
//	-l int      demo poll lifetime, hours
//	-i int      inactivity window, days
//	-g int      tombstone grace period, days
//	-w string   cron expression for in-process sweeps ("" disables)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers (hours or days) and then
//     converted to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-l", "-i", "-g", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	demoLifetime := fs.Int("l", int(config.DemoLifetime.Hours()), "demo_lifetime (in hours)")
	inactivityWindow := fs.Int("i", int(config.InactivityWindow.Hours()/24), "inactivity_window (in days)")
	gracePeriod := fs.Int("g", int(config.GracePeriod.Hours()/24), "grace_period (in days)")

	fs.StringVar(&config.SweepSchedule, "w", config.SweepSchedule, "cron expression for scheduled sweeps")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DemoLifetime = time.Duration(*demoLifetime) * time.Hour
	config.InactivityWindow = time.Duration(*inactivityWindow) * 24 * time.Hour
	config.GracePeriod = time.Duration(*gracePeriod) * 24 * time.Hour
}
