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
	"strings"

	"digital-stamp-go/internal/api"
	"digital-stamp-go/internal/common"
	"digital-stamp-go/internal/config"
	"digital-stamp-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type createRequest struct {
	design  string
	label   string
	color   string
	value   string
	confirm bool
	out     string
}

func parseFlags() *createRequest {
	designFlag := flag.String("design", string(models.DesignClassic), "Stamp design: Classic, Wavy or Star")
	labelFlag := flag.String("label", "", "Stamp label, up to 20 characters (required)")
	colorFlag := flag.String("color", "blue", "Color name from the palette or #RRGGBB")
	valueFlag := flag.String("value", "", "Face value between 0.01 and 10.00 (required)")
	confirmFlag := flag.Bool("confirm", false, "Save the stamp to the collection (default: preview only)")
	outFlag := flag.String("out", "", "Optional path to write the rendered PNG")
	flag.Parse()

	return &createRequest{
		design:  *designFlag,
		label:   *labelFlag,
		color:   *colorFlag,
		value:   *valueFlag,
		confirm: *confirmFlag,
		out:     *outFlag,
	}
}

func buildParams(req *createRequest, palette common.Palette) (api.CreateStampParams, error) {
	design, err := models.ToDesign(req.design)
	if err != nil {
		return api.CreateStampParams{}, models.NewValidationError("design", "must be one of: Classic, Wavy, Star")
	}

	color, err := palette.Resolve(req.color)
	if err != nil {
		return api.CreateStampParams{}, err
	}

	value, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(req.value), "$"))
	if err != nil {
		return api.CreateStampParams{}, models.NewValidationError("value", fmt.Sprintf("%q is not a number", req.value))
	}

	return api.CreateStampParams{
		Design: design,
		Label:  req.label,
		Color:  color,
		Value:  value,
	}, nil
}

func printSummary(params api.CreateStampParams) {
	common.PrintHeader(os.Stdout, "STAMP DESIGN", common.DefaultWidth)
	fmt.Printf("Design: %s\n", params.Design)
	fmt.Printf("Label:  %s\n", strings.ToUpper(strings.TrimSpace(params.Label)))
	fmt.Printf("Color:  %s\n", params.Color)
	fmt.Printf("Value:  USPS $%s\n", params.Value.StringFixed(2))
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
}

func writePNG(path string, data []byte) {
	if path == "" {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		zap.L().Error("Failed to write PNG", zap.String("file", path), zap.Error(err))
		return
	}
	fmt.Printf("Image written to %s\n", path)
}

func fail(title string, err error) {
	common.PrintHeader(os.Stdout, title, common.DefaultWidth)
	fmt.Printf("Error: %v\n", err)
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
	zap.L().Fatal(title, zap.Error(err))
}

func main() {
	req := parseFlags()

	_, loggerCleanup := common.InitializeLogger(config.LogFormat())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := common.NewSessionContext(context.Background(), "create")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	params, err := buildParams(req, services.Palette)
	if err != nil {
		fail("INVALID STAMP", err)
	}

	if !req.confirm {
		data, err := services.Stamps.PreviewStamp(params)
		if err != nil {
			fail("INVALID STAMP", err)
		}
		printSummary(params)
		writePNG(req.out, data)
		fmt.Println("\nPreview only. Re-run with --confirm to add it to your collection.")
		return
	}

	stamp, err := services.Stamps.CreateStamp(ctx, params)
	if err != nil {
		fail("STAMP NOT CREATED", err)
	}

	if err := services.SaveSession(ctx); err != nil {
		fmt.Printf("Warning: stamp created but not saved: %v\n", err)
	}

	printSummary(params)
	if req.out != "" {
		data, err := services.Stamps.StampImage(ctx, stamp.Id)
		if err != nil {
			zap.L().Warn("Failed to read stamp image", zap.Error(err))
		} else {
			writePNG(req.out, data)
		}
	}
	fmt.Printf("\nStamp %s added to your collection.\n", stamp.Id)
	fmt.Printf("Image: %s\n", stamp.ImageRef)
}
