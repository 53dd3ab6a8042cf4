package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"liftctl/src/alarm"
	"liftctl/src/cabin"
	"liftctl/src/config"
	"liftctl/src/controller"
	"liftctl/src/door"
	"liftctl/src/gpio"
	"liftctl/src/pulse"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the geometry/speed configuration")
	pinsPath := flag.String("pins", "gpio_config.yaml", "path to the hardware pin map")
	flag.Parse()
	initLogger()

	geo, err := config.LoadGeometry(*configPath)
	if err != nil {
		slog.Error("Geometry config load failed", "err", err)
		os.Exit(1)
	}
	pins, err := config.LoadPinMap(*pinsPath)
	if err != nil {
		slog.Error("Pin map load failed", "err", err)
		os.Exit(1)
	}

	cab, err := cabin.New(geo)
	if err != nil {
		slog.Error("Cabin construction failed", "err", err)
		os.Exit(1)
	}
	dr, err := door.New(geo.LiftWidth, geo.DoorStepNorm)
	if err != nil {
		slog.Error("Door construction failed", "err", err)
		os.Exit(1)
	}

	dev, err := gpio.Open(pins)
	if err != nil {
		slog.Error("Hardware device open failed", "err", err)
		os.Exit(1)
	}
	defer dev.Close()
	slog.Info("Lift control starting", "floors", geo.NumFloors, "hardware", pins.Enable)

	alarms := alarm.New(func(ev alarm.Event) {
		fmt.Printf("ALARM [%s] %s\n", ev.Kind, ev.Message)
	}, config.AlarmCooldown)

	sched := pulse.NewLoopScheduler(16)
	ctrl := controller.New(cab, dr, dev, sched, alarms)

	commands := make(chan controller.Command)
	samples := make(chan gpio.Sample)
	go gpio.Poll(dev, samples)
	go readCommands(os.Stdin, commands)

	if err := controller.Run(ctrl, commands, samples, sched, nil); err != nil {
		slog.Error("Controller stopped on fault", "err", err)
		os.Exit(1)
	}
	slog.Info("Lift control shut down")
}

// initLogger sets up global logging with a compact time format and
// file:line source locations.
func initLogger() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}

// readCommands translates operator console lines into controller commands.
// Closing the channel on EOF or "quit" lets the control loop return.
func readCommands(r io.Reader, commands chan<- controller.Command) {
	defer close(commands)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "up":
			commands <- controller.Command{Kind: controller.CmdMoveUp}
		case "down":
			commands <- controller.Command{Kind: controller.CmdMoveDown}
		case "stop":
			commands <- controller.Command{Kind: controller.CmdStopMove}
		case "open":
			commands <- controller.Command{Kind: controller.CmdOpenDoor}
		case "close":
			commands <- controller.Command{Kind: controller.CmdCloseDoor}
		case "halt":
			commands <- controller.Command{Kind: controller.CmdStopDoor}
		case "slow":
			enabled := len(fields) > 1 && fields[1] == "on"
			commands <- controller.Command{Kind: controller.CmdSlow, Enabled: enabled}
		case "cab", "call":
			if len(fields) < 2 {
				slog.Warn("Button command needs an index", "line", fields[0])
				continue
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				slog.Warn("Bad button index", "value", fields[1])
				continue
			}
			kind := controller.CmdCabinButton
			if fields[0] == "call" {
				kind = controller.CmdFloorButton
			}
			commands <- controller.Command{Kind: kind, Index: idx}
		case "quit", "exit":
			return
		default:
			slog.Warn("Unknown console command", "line", fields[0])
		}
	}
}
