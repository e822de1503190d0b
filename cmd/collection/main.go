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
	"flag"
	"fmt"
	"os"

	"digital-stamp-go/internal/common"
	"digital-stamp-go/internal/config"

	"go.uber.org/zap"
)

func main() {
	deleteFlag := flag.String("delete", "", "Id (or unique id prefix) of a stamp to delete")
	filterFlag := flag.String("filter", "", "Only list stamps whose label contains this text")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger(config.LogFormat())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := common.NewSessionContext(context.Background(), "collection")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *deleteFlag != "" {
		id, err := common.ResolveStampId(services.Session.List(), *deleteFlag)
		if err != nil {
			zap.L().Fatal("Invalid stamp id", zap.Error(err))
		}

		if !services.Stamps.DeleteStamp(ctx, id) {
			fmt.Printf("No stamp with id %s; nothing deleted.\n", *deleteFlag)
		} else {
			if err := services.SaveSession(ctx); err != nil {
				fmt.Printf("Warning: stamp deleted but not saved: %v\n", err)
			}
			fmt.Printf("Deleted stamp %s.\n", id)
		}
	}

	stamps := services.Stamps.ListStamps(*filterFlag)
	title := fmt.Sprintf("MY COLLECTION (%d)", len(stamps))
	if *filterFlag != "" {
		title = fmt.Sprintf("MY COLLECTION (%d matching %q)", len(stamps), *filterFlag)
	}

	common.PrintHeader(os.Stdout, title, common.WideWidth)
	common.PrintStamps(os.Stdout, stamps)
	common.PrintSeparator(os.Stdout, "=", common.WideWidth)
}
