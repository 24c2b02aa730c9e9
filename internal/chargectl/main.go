/*
macsmc-chargectl - Keeps the Apple SMC battery within a safe charge band
Copyright (C) 2024, The macsmc-chargectl authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package chargectl

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"
)

const logTag = "macsmc-chargectl"

var version = "No version provided"

var log = logrus.New()

type Args struct {
	Battery      string `arg:"--battery" help:"power-supply sysfs directory to control"`
	PollInterval int    `arg:"--poll-interval" help:"seconds between battery checks"`
	LogLevel     string `arg:"-l,--log-level" help:"Set the logging level (debug, info, warn, error)"`
}

var defaultArgs = Args{
	Battery:      defaultBatteryDir,
	PollInterval: 60,
	LogLevel:     "info",
}

func (Args) Version() string {
	return version
}

func procArgs(input []string) (Args, error) {
	args := defaultArgs

	parser, err := arg.NewParser(arg.Config{}, &args)
	if err != nil {
		return Args{}, err
	}
	err = parser.Parse(input)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if errors.Is(err, arg.ErrVersion) {
		fmt.Println(version)
		os.Exit(0)
	}
	return args, err
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		log.Warn("Unknown log level, defaulting to info")
	}
}

type plainFormatter struct{}

func (f *plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", strings.ToUpper(entry.Level.String()), entry.Message)), nil
}

// journalFormatter prefixes each line with a syslog priority so journald
// records the right severity when running as a systemd service.
type journalFormatter struct{}

func (f *journalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var priority int
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		priority = 3
	case logrus.WarnLevel:
		priority = 4
	case logrus.InfoLevel:
		priority = 6
	default:
		priority = 7
	}
	return []byte(fmt.Sprintf("<%d>%s: %s\n", priority, logTag, entry.Message)), nil
}

func Run(inputArgs []string, ver string) error {
	version = ver
	args, err := procArgs(inputArgs)
	if err != nil {
		return fmt.Errorf("failed to parse args: %v", err)
	}

	if os.Getenv("LOG_STYLE") == "SYSTEMD" {
		log.SetFormatter(new(journalFormatter))
	} else {
		log.SetFormatter(new(plainFormatter))
	}
	setLogLevel(args.LogLevel)

	log.Info("Running version: ", version)

	store := NewBatteryStore(args.Battery)

	behaviour, err := store.Behaviour()
	if err != nil {
		return err
	}
	log.Info("Starting up. Current charge behaviour is ", behaviour)

	if err := startService(store); err != nil {
		return err
	}

	pollInterval := time.Duration(args.PollInterval) * time.Second
	log.Debug("Setting poll interval to ", pollInterval)

	for {
		if err := tick(store); err != nil {
			return err
		}
		time.Sleep(pollInterval)
	}
}

// tick runs one read-decide-write cycle. Any failure talking to the power
// supply is returned as is, a controller that can't see the battery has no
// safe fallback so the process should die loudly instead of skipping ticks.
func tick(store *BatteryStore) error {
	capacity, err := store.Capacity()
	if err != nil {
		return err
	}
	behaviour, err := store.Behaviour()
	if err != nil {
		return err
	}

	next := calcBehaviour(capacity, behaviour)
	log.Debugf("Battery capacity %d, behaviour %s", capacity, behaviour)
	if next != behaviour {
		log.Infof("Setting new charge behaviour: %s. Old was %s. Battery at %d%%.", next, behaviour, capacity)
		return store.SetBehaviour(next)
	}
	return nil
}
