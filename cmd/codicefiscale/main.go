package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/cli"
	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("codicefiscale"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("codicefiscale %s\n", version)
	case "encode":
		cli.CmdEncode(os.Args[2:])
	case "validate":
		cli.CmdValidate(os.Args[2:])
	case "decode":
		cli.CmdDecode(os.Args[2:])
	case "omocodes":
		cli.CmdOmocodes(os.Args[2:])
	case "scan":
		cli.CmdScan(os.Args[2:])
	case "list":
		cli.CmdList(os.Args[2:])
	case "forget":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: codicefiscale forget <id>")
			os.Exit(1)
		}
		cli.CmdForget(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "codicefiscale: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	dataDir := cli.DataDir()
	firstRun := cli.IsFirstRun(dataDir)

	m := tui.New(version, dataDir, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
