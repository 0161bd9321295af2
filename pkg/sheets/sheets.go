package sheets

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

type SheetClient struct {
	service *sheets.Service
}

func NewClient(credentialsPath string) (*SheetClient, error) {
	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetClient{service: srv}, nil
}

// ReadRange fetches a snapshot of the given range. Values are rendered
// unformatted so numeric cells come back as plain numbers.
func (c *SheetClient) ReadRange(spreadsheetID, rangeExpr string) (Grid, error) {
	ctx := context.Background()
	var resp *sheets.ValueRange
	err := withRetry(func() error {
		var err error
		resp, err = c.service.Spreadsheets.Values.Get(spreadsheetID, rangeExpr).
			ValueRenderOption("UNFORMATTED_VALUE").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rangeExpr, err)
	}
	return gridFromValues(resp.Values), nil
}

// WriteCell sets a single cell to the given value. USER_ENTERED input
// lets the remote store parse numeric strings back into numbers.
func (c *SheetClient) WriteCell(spreadsheetID, cellAddress, value string) error {
	ctx := context.Background()
	err := withRetry(func() error {
		_, err := c.service.Spreadsheets.Values.Update(
			spreadsheetID,
			cellAddress,
			&sheets.ValueRange{Values: [][]interface{}{{value}}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", cellAddress, err)
	}
	return nil
}

// ListSheetNames returns the workbook's sheet titles in workbook order.
func (c *SheetClient) ListSheetNames(spreadsheetID string) ([]string, error) {
	ctx := context.Background()
	var ss *sheets.Spreadsheet
	err := withRetry(func() error {
		var err error
		ss, err = c.service.Spreadsheets.Get(spreadsheetID).
			Fields("sheets/properties/title").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	names := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		names = append(names, sh.Properties.Title)
	}
	return names, nil
}

func withRetry(call func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = call()
		if err == nil {
			return nil
		}
		// Check for rate limit error
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("Rate limited by Google Sheets API, retrying in %v...", backoff)
			time.Sleep(backoff)
			continue
		}
		return err
	}
	return err
}

func gridFromValues(values [][]interface{}) Grid {
	grid := make(Grid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}
	return grid
}
