package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Module - путь модуля, попадает в /version и в лог запуска.
const Module = "github.com/tndwolf/Wizards-Duel-sub000"

// Rules - ревизия правил симуляции. Меняется, когда старые журналы
// перестают воспроизводиться (порядок ходов, формулы урона, RNG).
const Rules = 1

// Protocol - версия websocket-протокола (pkg/api).
const Protocol = 1

// Заполняются через -ldflags "-X .../internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день ноль для номера сборки.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo - то, что отдаёт /version.
type VersionInfo struct {
	Module     string `json:"module"`
	Rules      int    `json:"rules"`
	Protocol   int    `json:"protocol"`
	GoVersion  string `json:"go,omitempty"`
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID - число дней от buildEpoch до BuildDate.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные. Коммит без ldflags берётся из vcs-информации бинарника.
func Info() VersionInfo {
	info := VersionInfo{
		Module:    Module,
		Rules:     Rules,
		Protocol:  Protocol,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.Commit = s.Value
				}
			}
		}
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для лога запуска.
func String() string {
	info := Info()
	head := fmt.Sprintf("Wizards Duel rules r%d proto %d", info.Rules, info.Protocol)

	if !info.Calculated {
		return fmt.Sprintf("%s, build unknown (%s)", head, info.Error)
	}
	return fmt.Sprintf(
		"%s, build %d (%s) commit[%s] branch[%s] ci[%s]",
		head,
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
