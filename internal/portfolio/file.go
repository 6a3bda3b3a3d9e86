package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

// File reads holdings from a JSON file of [{symbol, amount, value_usd}].
type File struct {
	Path     string
	MinValue decimal.Decimal
}

// NewFile creates a file-backed source.
func NewFile(path string) *File {
	return &File{Path: path, MinValue: DefaultMinValue}
}

func (f *File) Name() string { return "file" }

func (f *File) FetchHoldings(_ context.Context) ([]model.Holding, error) {
	holdings, err := LoadHoldings(f.Path)
	if err != nil {
		return nil, err
	}
	for i := range holdings {
		holdings[i].Symbol = strings.ToUpper(holdings[i].Symbol)
	}
	return filterHoldings(holdings, f.MinValue), nil
}

// LoadHoldings reads holdings from a JSON file. A missing file yields no holdings.
func LoadHoldings(path string) ([]model.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var holdings []model.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return holdings, nil
}

// SaveHoldings writes holdings to a JSON file.
func SaveHoldings(path string, holdings []model.Holding) error {
	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
