package http

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/services"
)

// maxBodySize bounds request bodies; the API only ever carries small
// JSON documents.
const maxBodySize = 64 << 10

type transactionRequest struct {
	Description  string `json:"description"`
	Amount       string `json:"amount"` // decimal string, "123.45" or "123,45"
	Category     string `json:"category"`
	Date         string `json:"date"` // YYYY-MM-DD
	Type         string `json:"type"`
	CardID       string `json:"card_id,omitempty"`
	Installments int    `json:"installments,omitempty"`
}

type transactionPatchRequest struct {
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	Date        *string `json:"date,omitempty"`
	Type        *string `json:"type,omitempty"`
	CardID      *string `json:"card_id,omitempty"`
}

type cardRequest struct {
	Name       string `json:"name"`
	LastDigits string `json:"last_digits"`
	Limit      string `json:"limit"` // decimal string
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
	Color      string `json:"color"`
}

type changeMonthRequest struct {
	Step int `json:"step"`
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (req transactionRequest) toInput() (services.AddTransactionInput, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return services.AddTransactionInput{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return services.AddTransactionInput{}, err
	}
	return services.AddTransactionInput{
		Description:  strings.TrimSpace(req.Description),
		Amount:       core.Money{Cents: cents},
		Category:     core.Category(req.Category),
		Date:         date,
		Type:         core.TransactionType(req.Type),
		CardID:       strings.TrimSpace(req.CardID),
		Installments: req.Installments,
	}, nil
}

func (req transactionPatchRequest) toPatch() (services.TransactionPatch, error) {
	var patch services.TransactionPatch
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil {
			return services.TransactionPatch{}, err
		}
		patch.Amount = &core.Money{Cents: cents}
	}
	if req.Category != nil {
		cat := core.Category(*req.Category)
		patch.Category = &cat
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			return services.TransactionPatch{}, err
		}
		patch.Date = &date
	}
	if req.Type != nil {
		txType := core.TransactionType(*req.Type)
		patch.Type = &txType
	}
	if req.CardID != nil {
		cardID := strings.TrimSpace(*req.CardID)
		patch.CardID = &cardID
	}
	return patch, nil
}

func (req cardRequest) toInput() (services.AddCardInput, error) {
	cents, err := core.ParseDecimalToCents(req.Limit)
	if err != nil {
		return services.AddCardInput{}, fmt.Errorf("%w: limit", err)
	}
	return services.AddCardInput{
		Name:       strings.TrimSpace(req.Name),
		LastDigits: strings.TrimSpace(req.LastDigits),
		Limit:      core.Money{Cents: cents},
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      strings.TrimSpace(req.Color),
	}, nil
}
