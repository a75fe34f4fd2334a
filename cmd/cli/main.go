package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/browse"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/client"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/config"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/logger"
)

// ANSI
const (
	Reset    = "\033[0m"
	Bold     = "\033[1m"
	Dim      = "\033[2m"
	White    = "\033[97m"
	Black    = "\033[30m"
	Green    = "\033[32m"
	Yellow   = "\033[33m"
	Red      = "\033[31m"
	Cyan     = "\033[36m"
	BgGreen  = "\033[42m"
	BgYellow = "\033[43m"
	BgCyan   = "\033[46m"
	BgDkGray = "\033[100m"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewConsole(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh := &shell{
		out:    os.Stdout,
		api:    client.New(cfg.APIBaseURL),
		screen: browse.NewScreen(log.Named("browse")),
		log:    log,
	}
	defer sh.screen.Close()

	clearScreen()
	printBanner(cfg.APIBaseURL)
	shellLoop(ctx, sh)
}

func shellLoop(ctx context.Context, sh *shell) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(sh.prompt())

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "clear" || input == "cls" {
			clearScreen()
			continue
		}

		if quit := sh.handle(ctx, input); quit {
			fmt.Printf("\n%s%s  Bye %s\n\n", BgCyan, Black, Reset)
			return
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Println()
	}
}

func printBanner(baseURL string) {
	fmt.Println()
	fmt.Printf("  %s%s>> Event Browser%s\n", Bold, Cyan, Reset)
	fmt.Printf("  %s%s%s\n", Dim, baseURL, Reset)
	fmt.Printf("  %sType 'help' for commands, 'login <email> <password>' to start%s\n", Dim, Reset)
	fmt.Println()
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
