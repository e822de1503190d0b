package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Design string

// remember to add new designs to the validDesigns map
const (
	DesignClassic Design = "Classic"
	DesignWavy    Design = "Wavy"
	DesignStar    Design = "Star"
)

var validDesigns = map[Design]struct{}{
	DesignClassic: {},
	DesignWavy:    {},
	DesignStar:    {},
}

// ToDesign matches case-insensitively so CLI input like "wavy" works.
func ToDesign(s string) (Design, error) {
	for d := range validDesigns {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", errors.New("invalid stamp design")
}

func (d Design) Valid() bool {
	_, ok := validDesigns[d]
	return ok
}

// Designs returns the closed set in menu order.
func Designs() []Design {
	return []Design{DesignClassic, DesignWavy, DesignStar}
}

// Color is an RGB value serialised as #RRGGBB.
type Color struct {
	R, G, B uint8
}

var ColorBlue = Color{B: 0xff}

func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Stamp is a created design together with a reference to its rendered raster
type Stamp struct {
	Id        string          `json:"id"`
	Design    Design          `json:"design"`
	Label     string          `json:"label"`
	Color     Color           `json:"color"`
	Value     decimal.Decimal `json:"value"`
	ImageRef  string          `json:"imageRef"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// DisplayLabel is the label as printed on the stamp face.
func (s Stamp) DisplayLabel() string {
	return strings.ToUpper(s.Label)
}

// MailRecord is evidence that a stamp was spent on a virtual mail send
type MailRecord struct {
	StampId   string    `json:"stampId"`
	Recipient string    `json:"recipient"`
	Address   string    `json:"address"`
	SentAt    time.Time `json:"sentAt"`
}

// OrderRecord is evidence of a physical stamp order. TotalCost is fixed at
// placement time.
type OrderRecord struct {
	OrderId         string          `json:"orderId"`
	StampId         string          `json:"stampId"`
	Quantity        int             `json:"quantity"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	ShippingAddress string          `json:"shippingAddress"`
	PlacedAt        time.Time       `json:"placedAt"`
}

// State is the whole persisted document.
type State struct {
	Stamps      []Stamp       `json:"stamps"`
	MailHistory []MailRecord  `json:"mail_history"`
	Orders      []OrderRecord `json:"orders"`
}

// EmptyState returns the default document with non-nil collections so it
// serialises as three empty arrays.
func EmptyState() State {
	return State{
		Stamps:      []Stamp{},
		MailHistory: []MailRecord{},
		Orders:      []OrderRecord{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s State) Normalize() State {
	if s.Stamps == nil {
		s.Stamps = []Stamp{}
	}
	if s.MailHistory == nil {
		s.MailHistory = []MailRecord{}
	}
	if s.Orders == nil {
		s.Orders = []OrderRecord{}
	}
	return s
}

// ScanRecord is one barcode read from the scanner.
type ScanRecord struct {
	Barcode   string    `json:"barcode"`
	ScannedAt time.Time `json:"scannedAt"`
}
