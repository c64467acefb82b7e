package tui

import "github.com/moyu-x/fileguard/pkg/watcher"

type reportMsg watcher.Report

type reportsClosedMsg struct{}
