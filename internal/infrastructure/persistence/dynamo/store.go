package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"

	"tv-alert-webhook/internal/domain/alert"
)

// retention controls the TTL attribute; DynamoDB reclaims items afterwards.
const retention = 30 * 24 * time.Hour

// Store persists alerts as single DynamoDB items keyed by a generated id.
// Each Lambda invocation is stateless, so atomicity is delegated entirely to
// DynamoDB's single-item write guarantees.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string

	now       func() time.Time
	newSuffix func() string
}

// NewStore wires a DynamoDB client into an alert store.
func NewStore(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{
		client:    client,
		table:     table,
		now:       time.Now,
		newSuffix: func() string { return uuid.NewString()[:8] },
	}
}

// item mirrors the table's attribute layout. Instrument fields are not
// persisted; they are re-derived from the symbol on read.
type item struct {
	AlertID           string                 `dynamodbav:"AlertID"`
	Timestamp         string                 `dynamodbav:"Timestamp"`
	AlertName         string                 `dynamodbav:"AlertName"`
	Symbol            string                 `dynamodbav:"Symbol"`
	LimitPrice        string                 `dynamodbav:"LimitPrice"`
	CapitalPercent    string                 `dynamodbav:"CapitalPercent"`
	LotSize           string                 `dynamodbav:"LotSize"`
	OrderSlicingValue string                 `dynamodbav:"OrderSlicingValue"`
	TotalQuantity     string                 `dynamodbav:"TotalQuantity"`
	Processed         bool                   `dynamodbav:"Processed"`
	RawData           map[string]interface{} `dynamodbav:"RawData"`
	TTL               int64                  `dynamodbav:"TTL"`
}

// Append writes one item with a 30-day expiry. The id keeps the sortable
// UTC-timestamp prefix of the original scheme but uses a random suffix, so
// two ingestions within the same second cannot collide.
func (s *Store) Append(ctx context.Context, rec alert.AlertRecord) (string, error) {
	now := s.now().UTC()
	id := fmt.Sprintf("alert_%s_%s", now.Format("20060102_150405"), s.newSuffix())

	av, err := dynamodbattribute.MarshalMap(item{
		AlertID:           id,
		Timestamp:         rec.ReceivedAt.UTC().Format(time.RFC3339),
		AlertName:         rec.AlertName,
		Symbol:            rec.Symbol,
		LimitPrice:        rec.LimitPrice,
		CapitalPercent:    rec.CapitalPercent,
		LotSize:           rec.LotSize,
		OrderSlicingValue: rec.OrderSlicingValue,
		TotalQuantity:     rec.TotalQuantity,
		Processed:         rec.Processed,
		RawData:           rec.Raw,
		TTL:               now.Add(retention).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal alert item: %w", err)
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return "", fmt.Errorf("put alert item: %w", err)
	}
	return id, nil
}

// Recent scans the full table and returns the count newest items in arrival
// order. A scan is expensive but the status path is only hit on-demand per
// invocation, with no latency expectation.
func (s *Store) Recent(ctx context.Context, count int) ([]alert.AlertRecord, error) {
	if count < 0 {
		count = 0
	}

	var items []item
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, _ bool) bool {
		var pageItems []item
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageItems); err == nil {
			items = append(items, pageItems...)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scan alerts: %w", err)
	}

	// AlertID carries the UTC timestamp prefix, so lexical order is arrival
	// order down to the second; Timestamp breaks nothing further.
	sort.Slice(items, func(i, j int) bool { return items[i].AlertID < items[j].AlertID })

	if count > len(items) {
		count = len(items)
	}
	out := make([]alert.AlertRecord, 0, count)
	for _, it := range items[len(items)-count:] {
		out = append(out, it.toRecord())
	}
	return out, nil
}

// Count runs a COUNT-select scan over the whole table. Expired items that
// DynamoDB has reclaimed are no longer counted.
func (s *Store) Count(ctx context.Context) (int, error) {
	total := 0
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Select:    aws.String(dynamodb.SelectCount),
	}
	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, _ bool) bool {
		total += int(aws.Int64Value(page.Count))
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return total, nil
}

func (it item) toRecord() alert.AlertRecord {
	rec := alert.AlertRecord{
		ID:                it.AlertID,
		AlertName:         it.AlertName,
		Symbol:            it.Symbol,
		LimitPrice:        it.LimitPrice,
		CapitalPercent:    it.CapitalPercent,
		LotSize:           it.LotSize,
		OrderSlicingValue: it.OrderSlicingValue,
		TotalQuantity:     it.TotalQuantity,
		Processed:         it.Processed,
		Instrument:        alert.InstrumentDescriptor{OptionType: alert.OptionUnknown},
		Raw:               it.RawData,
	}
	if ts, err := time.Parse(time.RFC3339, it.Timestamp); err == nil {
		rec.ReceivedAt = ts
	}
	if rec.Symbol != "" {
		rec.Instrument = alert.DecomposeSymbol(rec.Symbol)
	}
	return rec
}
