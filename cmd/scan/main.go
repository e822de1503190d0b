/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"digital-stamp-go/internal/common"
	"digital-stamp-go/internal/config"
	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/scanner"

	"go.uber.org/zap"
)

func main() {
	uniqueFlag := flag.Bool("unique", false, "Reject barcodes already scanned in this session")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger(config.LogFormat())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	if *uniqueFlag {
		cfg.Scanner.RejectDuplicates = true
	}

	ctx, cancel := context.WithCancel(common.NewSessionContext(context.Background(), "scan"))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			zap.L().Info("Shutdown signal received, stopping scan")
			cancel()
		case <-ctx.Done():
		}
	}()

	log := scanner.NewLog(cfg.Scanner)
	fmt.Printf("Ready. Scan barcodes (type %s to start over, Ctrl+C or Ctrl+D to finish).\n", scanner.ClearCommand)

	err = log.Run(ctx, os.Stdin, scanner.Handlers{
		OnScan: func(line string, record models.ScanRecord, err error) {
			switch {
			case err == nil:
				fmt.Printf("Scanned: %s\n", record.Barcode)
			case errors.Is(err, scanner.ErrDuplicateScan):
				fmt.Printf("Already scanned: %s\n", line)
			case errors.Is(err, models.ErrValidation):
				if line != "" {
					fmt.Printf("Ignored: %v\n", err)
				}
			default:
				fmt.Printf("Error: %v\n", err)
			}
		},
		OnClear: func(cleared int) {
			fmt.Printf("Cleared %d scanned barcode(s).\n", cleared)
		},
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		zap.L().Error("Scanner input failed", zap.Error(err))
	}

	common.PrintScans(os.Stdout, log.List())
	common.PrintFooter(os.Stdout, fmt.Sprintf("%d barcode(s) scanned", log.Len()), common.DefaultWidth)
}
