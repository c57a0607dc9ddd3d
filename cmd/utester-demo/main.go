package main

import (
	"fmt"
	"os"
	"strings"

	"utester/internal/cli"
	"utester/internal/config"
	"utester/internal/devops"
	"utester/internal/reporter"
	"utester/pkg/utester"
	"utester/pkg/utester/host"
	"utester/suites/calc"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func main() {
	global, command, err := cli.ParseCommandLine("utester-demo", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(global.Config)
	if err != nil {
		logrus.Fatal(err)
	}
	if global.Verbosity != logrus.InfoLevel {
		cfg.LogLevel = global.Verbosity
	}

	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)
	color.NoColor = !tty

	log := utester.Log
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors: tty,
	})

	server := host.NewLocal(log, os.Stdout)
	calc.Register(server, log)
	if _, err := utester.RegisterSuite(server, calc.PluginID, calc.Tests{}); err != nil {
		log.Fatal(err)
	}
	d := utester.Load(server, cfg)

	line := strings.Join(append([]string{d.Prefix()}, command...), " ")
	width := 80
	if tty {
		width = reporter.TermWidth(fd)
	}
	reporter.PrintSeparatorWithTitle(os.Stdout, line, width)

	var ci *devops.Printer
	var group *devops.Group
	if global.AzureDevops {
		ci = devops.NewPrinter(os.Stdout)
		group = ci.OpenGroup(line)
	}

	err = server.ExecuteCommand(line, server.Console(line))
	if group != nil {
		group.Close()
	}
	if err != nil {
		log.WithError(err).Errorf("'%s' failed", line)
		if ci != nil {
			ci.LogError("'%s' failed: %s", line, err)
		}
	}

	reporter.PrintSeparator(os.Stdout, width)
	totals := d.LastRun()
	status := reporter.RunStatus(totals, err)
	fmt.Println(status.StringColor())

	if ci != nil && err == nil {
		if totals.Failed() > 0 {
			ci.LogError("%d of %d testers failed", totals.Failed(), totals.Ran)
		}
		if totals.Skipped > 0 {
			ci.LogWarning("%d testers skipped", totals.Skipped)
		}
	}

	if status.IsBad() {
		os.Exit(1)
	}
}
