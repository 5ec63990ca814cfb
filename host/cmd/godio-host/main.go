package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"godio/config"
	"godio/dio"
	"godio/host/remote"
	"godio/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate")
	cfgPath = flag.String("config", "", "JSON pin table to apply on connect")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	ctrl := dio.NewController(remote.NewBank(port))

	if *cfgPath != "" {
		data, err := os.ReadFile(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pins, err := config.Load(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := ctrl.Init(pins); err != nil {
			fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Applied pin table from %s\n", *cfgPath)
	}

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if line == "help" {
			printHelp()
			continue
		}

		if err := runCommand(ctrl, strings.Fields(line)); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  dir <port> <pin> in|out     set one pin's direction
  set <port> <pin> high|low   drive one pin
  get <port> <pin>            read one pin
  portdir <port> in|out       set a whole port's direction
  portset <port> <value>      write a whole port (e.g. 0xA5)
  portget <port>              read a whole port
  quit                        exit`)
}

func runCommand(ctrl *dio.Controller, args []string) error {
	switch args[0] {
	case "dir":
		if len(args) != 4 {
			return fmt.Errorf("usage: dir <port> <pin> in|out")
		}
		port, pin, dir, err := parsePinArgs(args[1], args[2], args[3])
		if err != nil {
			return err
		}
		return ctrl.SetPinDirection(port, pin, dir)

	case "set":
		if len(args) != 4 {
			return fmt.Errorf("usage: set <port> <pin> high|low")
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		pin, err := parsePin(args[2])
		if err != nil {
			return err
		}
		level, err := parseLevel(args[3])
		if err != nil {
			return err
		}
		return ctrl.SetPinValue(port, pin, level)

	case "get":
		if len(args) != 3 {
			return fmt.Errorf("usage: get <port> <pin>")
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		pin, err := parsePin(args[2])
		if err != nil {
			return err
		}
		level, err := ctrl.PinValue(port, pin)
		if err != nil {
			return err
		}
		fmt.Printf("%v%d = %v\n", port, pin, level)
		return nil

	case "portdir":
		if len(args) != 3 {
			return fmt.Errorf("usage: portdir <port> in|out")
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		dir, err := parseDirection(args[2])
		if err != nil {
			return err
		}
		return ctrl.SetPortDirection(port, dir)

	case "portset":
		if len(args) != 3 {
			return fmt.Errorf("usage: portset <port> <value>")
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		value, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return fmt.Errorf("bad value %q", args[2])
		}
		return ctrl.SetPortValue(port, uint8(value))

	case "portget":
		if len(args) != 2 {
			return fmt.Errorf("usage: portget <port>")
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		value, err := ctrl.PortValue(port)
		if err != nil {
			return err
		}
		fmt.Printf("port %v = %#02x\n", port, value)
		return nil
	}

	return fmt.Errorf("unknown command %q (try 'help')", args[0])
}

func parsePinArgs(portArg, pinArg, dirArg string) (dio.Port, dio.Pin, dio.Direction, error) {
	port, err := parsePort(portArg)
	if err != nil {
		return 0, 0, 0, err
	}
	pin, err := parsePin(pinArg)
	if err != nil {
		return 0, 0, 0, err
	}
	dir, err := parseDirection(dirArg)
	if err != nil {
		return 0, 0, 0, err
	}
	return port, pin, dir, nil
}

func parsePort(s string) (dio.Port, error) {
	switch strings.ToUpper(s) {
	case "A":
		return dio.PortA, nil
	case "B":
		return dio.PortB, nil
	case "C":
		return dio.PortC, nil
	case "D":
		return dio.PortD, nil
	}
	return 0, fmt.Errorf("bad port %q (want A-D)", s)
}

func parsePin(s string) (dio.Pin, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n >= dio.NumPins {
		return 0, fmt.Errorf("bad pin %q (want 0-7)", s)
	}
	return dio.Pin(n), nil
}

func parseDirection(s string) (dio.Direction, error) {
	switch s {
	case "in":
		return dio.Input, nil
	case "out":
		return dio.Output, nil
	}
	return 0, fmt.Errorf("bad direction %q (want in or out)", s)
}

func parseLevel(s string) (dio.Level, error) {
	switch s {
	case "low":
		return dio.Low, nil
	case "high":
		return dio.High, nil
	}
	return 0, fmt.Errorf("bad level %q (want high or low)", s)
}
