// Command fatture-backup exports, imports or wipes the invoice data of the
// configured storage backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fatture/internal/cli"
	"fatture/internal/core"
	"fatture/internal/log"
)

func main() {
	exportPath := flag.String("export", "", "write a snapshot of all collections to this file")
	importPath := flag.String("import", "", "restore collections from a snapshot file")
	clear := flag.Bool("clear", false, "remove all stored data (irreversible)")
	flag.Parse()

	logger := cli.SetupLogger().WithComponent(log.ComponentBackup)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	modes := 0
	for _, set := range []bool{*exportPath != "", *importPath != "", *clear} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of -export, -import or -clear is required")
		flag.Usage()
		os.Exit(2)
	}

	st := cli.OpenStore(logger, cfg)
	defer st.Close()
	lg := cli.NewLedger(logger, st)
	ctx := context.Background()

	switch {
	case *exportPath != "":
		snap := lg.Export(ctx)
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			logger.Error("Snapshot encoding failed", log.FieldError, err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, data, 0644); err != nil {
			logger.Error("Snapshot write failed", log.FieldError, err, log.FieldPath, *exportPath)
			os.Exit(1)
		}
		fmt.Printf("exported %d invoices, %d customers to %s\n",
			len(snap.Invoices), len(snap.Customers), *exportPath)

	case *importPath != "":
		data, err := os.ReadFile(*importPath)
		if err != nil {
			logger.Error("Snapshot read failed", log.FieldError, err, log.FieldPath, *importPath)
			os.Exit(1)
		}
		var snap core.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Error("Snapshot decoding failed", log.FieldError, err)
			os.Exit(1)
		}
		if err := lg.Import(ctx, snap); err != nil {
			logger.Error("Import failed", log.FieldError, err)
			os.Exit(1)
		}
		fmt.Printf("imported %d invoices, %d customers from %s\n",
			len(snap.Invoices), len(snap.Customers), *importPath)

	case *clear:
		if err := lg.ClearAll(ctx); err != nil {
			logger.Error("Clear failed", log.FieldError, err)
			os.Exit(1)
		}
		fmt.Println("all data cleared")
	}
}
