package command

import (
	"fmt"
	"strconv"
	"strings"
)

// PluginName prefixes every legacy command line.
const PluginName = "TrueTimer"

// Parse builds a command from a named-argument invocation. Missing time
// arguments default to zero.
func Parse(name string, args map[string]string) (Command, error) {
	switch name {
	case "startTimer":
		m, s, err := parseTime(args["min"], args["sec"])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Start, Minutes: m, Seconds: s}, nil
	case "changeTimer":
		m, s, err := parseTime(args["min"], args["sec"])
		if err != nil {
			return Command{}, err
		}
		dir, err := parseDirection(args["ope"])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Change, Minutes: m, Seconds: s, Direction: dir}, nil
	case "stopTimer":
		return Command{Kind: Stop}, nil
	case "pauseTimer":
		return Command{Kind: Pause}, nil
	case "restartTimer":
		return Command{Kind: Restart}, nil
	case "changeMode":
		switch args["mode"] {
		case "", "countDown", "カウントダウン":
			return Command{Kind: CountUp, CountUp: false}, nil
		case "countUp", "カウントアップ":
			return Command{Kind: CountUp, CountUp: true}, nil
		}
		return Command{}, fmt.Errorf("%w: mode %q", ErrInvalidArgument, args["mode"])
	case "changeTransparency":
		switch args["transparency"] {
		case "", "ON":
			return Command{Kind: Transparency, Transparency: TransparencyOn}, nil
		case "OFF":
			return Command{Kind: Transparency, Transparency: TransparencyOff}, nil
		case "auto", "元に戻す":
			return Command{Kind: Transparency, Transparency: TransparencyAuto}, nil
		}
		return Command{}, fmt.Errorf("%w: transparency %q", ErrInvalidArgument, args["transparency"])
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// ParseLegacy parses the positional form, e.g. "TrueTimer change 0 30 false".
//
// The old positional "change" restarted the timer at the given time instead of
// shifting it. Here it shifts, the same as changeTimer.
func ParseLegacy(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != PluginName {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	args := fields[1:]

	switch args[0] {
	case "start":
		m, s, err := parseTime(arg(args, 1), arg(args, 2))
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Start, Minutes: m, Seconds: s}, nil
	case "change":
		m, s, err := parseTime(arg(args, 1), arg(args, 2))
		if err != nil {
			return Command{}, err
		}
		dir := Increase
		if arg(args, 3) == "false" {
			dir = Decrease
		}
		return Command{Kind: Change, Minutes: m, Seconds: s, Direction: dir}, nil
	case "stop":
		return Command{Kind: Stop}, nil
	case "pause":
		return Command{Kind: Pause}, nil
	case "restart":
		return Command{Kind: Restart}, nil
	case "countUp":
		return Command{Kind: CountUp, CountUp: arg(args, 1) == "true"}, nil
	case "transparency":
		switch arg(args, 1) {
		case "true":
			return Command{Kind: Transparency, Transparency: TransparencyOn}, nil
		case "false":
			return Command{Kind: Transparency, Transparency: TransparencyOff}, nil
		case "default":
			return Command{Kind: Transparency, Transparency: TransparencyAuto}, nil
		}
		return Command{}, fmt.Errorf("%w: transparency %q", ErrInvalidArgument, arg(args, 1))
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parseTime(minutes, seconds string) (int, int, error) {
	m, err := parseInt(minutes)
	if err != nil || m > MaxTimeArg || m < -MaxTimeArg {
		return 0, 0, fmt.Errorf("%w: min %q", ErrInvalidArgument, minutes)
	}
	s, err := parseInt(seconds)
	if err != nil || s > MaxTimeArg || s < -MaxTimeArg {
		return 0, 0, fmt.Errorf("%w: sec %q", ErrInvalidArgument, seconds)
	}
	return abs(m), abs(s), nil
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseDirection(ope string) (Direction, error) {
	switch ope {
	case "", "increase", "増やす":
		return Increase, nil
	case "decrease", "減らす":
		return Decrease, nil
	}
	return Increase, fmt.Errorf("%w: ope %q", ErrInvalidArgument, ope)
}
