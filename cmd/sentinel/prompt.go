package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"CryptoSentinel/internal/portfolio"
)

// promptSymbols asks for a comma separated symbol list.
func promptSymbols() (string, error) {
	var raw string
	prompt := &survey.Input{
		Message: "Enter the cryptocurrency symbols you want to analyze (e.g., BTC,ETH,SOL):",
		Help:    "Symbols are separated by commas or spaces",
	}
	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		if len(portfolio.ParseSymbols(str)) == 0 {
			return fmt.Errorf("no symbols entered")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}
	return raw, nil
}
