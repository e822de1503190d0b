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

	"digital-stamp-go/internal/api"
	"digital-stamp-go/internal/common"
	"digital-stamp-go/internal/config"

	"go.uber.org/zap"
)

func main() {
	stampFlag := flag.String("stamp", "", "Id (or unique id prefix) of the stamp to use (required)")
	recipientFlag := flag.String("recipient", "", "Recipient name (required)")
	addressFlag := flag.String("address", "", "Recipient address (required)")
	removeAfterFlag := flag.Bool("remove-after", false, "Remove the stamp from the collection once sent")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger(config.LogFormat())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := common.NewSessionContext(context.Background(), "sendmail")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	stampId, err := common.ResolveStampId(services.Session.List(), *stampFlag)
	if err != nil {
		zap.L().Fatal("Invalid stamp id", zap.Error(err))
	}

	record, err := services.Stamps.SendMail(ctx, api.SendMailParams{
		StampId:     stampId,
		Recipient:   *recipientFlag,
		Address:     *addressFlag,
		RemoveAfter: *removeAfterFlag,
	})
	if err != nil {
		common.PrintHeader(os.Stdout, "MAIL NOT SENT", common.DefaultWidth)
		fmt.Printf("Error: %v\n", err)
		common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
		zap.L().Fatal("Send mail failed", zap.Error(err))
	}

	if err := services.SaveSession(ctx); err != nil {
		fmt.Printf("Warning: mail sent but not saved: %v\n", err)
	}

	common.PrintHeader(os.Stdout, "MAIL SENT", common.DefaultWidth)
	fmt.Printf("To:      %s\n", record.Recipient)
	fmt.Printf("Address: %s\n", record.Address)
	fmt.Printf("Stamp:   %s\n", record.StampId)
	fmt.Printf("Sent at: %s\n", record.SentAt.Local().Format("2006-01-02 15:04:05"))
	if *removeAfterFlag {
		fmt.Println("The stamp was removed from your collection.")
	}
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
}
