package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode выбирает, показывать ли прогресс сборки каталога в TUI.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

// uiEnv переопределяет значение по умолчанию для --ui.
const uiEnv = "DDD_UI"

// readProgressMode разбирает значение --ui; пустое значение берётся из DDD_UI.
func readProgressMode(flag string) (progressMode, error) {
	value := strings.ToLower(strings.TrimSpace(flag))
	if value == "" {
		value = strings.ToLower(strings.TrimSpace(os.Getenv(uiEnv)))
	}
	switch value {
	case "", "auto":
		return progressAuto, nil
	case "on", "tui":
		return progressOn, nil
	case "off", "plain":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", flag)
}

// useProgressUI: при --quiet TUI не запускается никогда, в auto только на терминале.
func useProgressUI(mode progressMode, s *settings, out *os.File) bool {
	if s.quiet {
		return false
	}
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return isTerminal(out)
}
