package main

import (
	"flag"
	"time"
)

type options struct {
	paths    []string
	json     bool
	watch    bool
	interval time.Duration
	version  bool
}

func parseFlags() *options {
	opts := &options{}
	flag.BoolVar(&opts.json, "json", false, "print machine-readable JSON instead of text")
	flag.BoolVar(&opts.watch, "watch", false, "re-read and re-print the given paths on an interval")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "re-read interval when -watch is set")
	flag.BoolVar(&opts.version, "version", false, "print the build version and exit")
	flag.Parse()
	opts.paths = flag.Args()
	return opts
}
