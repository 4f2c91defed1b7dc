package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/yieldfood-api/internal/application/dto"
)

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return b, nil
}

// parseSales acepta una venta o un arreglo de ventas. También acepta el sobre
// {"sale": {...}} del endpoint manual-sync.
func parseSales(raw []byte) ([]dto.LightspeedSale, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("archivo vacío")
	}
	if trimmed[0] == '[' {
		var list []dto.LightspeedSale
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("JSON inválido: %w", err)
		}
		return list, nil
	}

	var envelope dto.ManualSyncRequest
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Sale != nil {
		return []dto.LightspeedSale{*envelope.Sale}, nil
	}
	var one dto.LightspeedSale
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", err)
	}
	return []dto.LightspeedSale{one}, nil
}
