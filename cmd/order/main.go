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
	stampFlag := flag.String("stamp", "", "Id (or unique id prefix) of the stamp to order (required)")
	quantityFlag := flag.Int("quantity", 1, "Number of physical stamps, 1 to 1000")
	addressFlag := flag.String("address", "", "Shipping address (required)")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger(config.LogFormat())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := common.NewSessionContext(context.Background(), "order")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	stampId, err := common.ResolveStampId(services.Session.List(), *stampFlag)
	if err != nil {
		zap.L().Fatal("Invalid stamp id", zap.Error(err))
	}

	order, err := services.Stamps.PlaceOrder(ctx, api.PlaceOrderParams{
		StampId:         stampId,
		Quantity:        *quantityFlag,
		ShippingAddress: *addressFlag,
	})
	if err != nil {
		common.PrintHeader(os.Stdout, "ORDER FAILED", common.DefaultWidth)
		fmt.Printf("Error: %v\n", err)
		common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
		zap.L().Fatal("Order failed", zap.Error(err))
	}

	if err := services.SaveSession(ctx); err != nil {
		fmt.Printf("Warning: order placed but not saved: %v\n", err)
	}

	common.PrintHeader(os.Stdout, "ORDER PLACED", common.DefaultWidth)
	fmt.Printf("Order:    %s\n", order.OrderId)
	fmt.Printf("Stamp:    %s\n", order.StampId)
	fmt.Printf("Quantity: %d\n", order.Quantity)
	fmt.Printf("Total:    $%s\n", order.TotalCost.StringFixed(2))
	fmt.Printf("Ship to:  %s\n", order.ShippingAddress)
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
}
