package repository

import (
	"context"
	"errors"
	"math"

	"gasp-api/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var errConnClosed = errors.New("connection already closed")

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoStore keeps canonical locations as documents in a DynamoDB table keyed by id.
type DynamoStore struct {
	client    DynamoAPI
	tableName string
}

// NewDynamoStore creates a DynamoDB-backed store.
func NewDynamoStore(client DynamoAPI, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

// Connect returns a request-scoped handle. The underlying client is safe for
// concurrent use; the handle only tracks its own lease.
func (s *DynamoStore) Connect(_ context.Context) (Conn, error) {
	return &dynamoConn{store: s}, nil
}

func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return &StoreError{Op: "describe table", Err: err}
	}
	return nil
}

// FindNearestLocation scans the table and returns the closest record within 10km.
func (s *DynamoStore) FindNearestLocation(ctx context.Context, lat, lng float64) (*models.GaspLocation, error) {
	var (
		nearest     *models.GaspLocation
		nearestDist = math.Inf(1)
		startKey    map[string]dynamodbtypes.AttributeValue
	)

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, &StoreError{Op: "scan locations", Err: err}
		}

		var page []models.GaspLocation
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, &StoreError{Op: "unmarshal locations", Err: err}
		}

		for i := range page {
			d := haversineMeters(lat, lng, page[i].Location.Lat, page[i].Location.Lng)
			if d <= nearestRadiusMeters && d < nearestDist {
				loc := page[i]
				nearest, nearestDist = &loc, d
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return nearest, nil
}

type dynamoConn struct {
	store  *DynamoStore
	closed bool
}

func (c *dynamoConn) InsertLocation(ctx context.Context, loc models.GaspLocation) error {
	if c.closed {
		return &StoreError{Op: "insert location", Err: errConnClosed}
	}

	item, err := attributevalue.MarshalMap(loc)
	if err != nil {
		return &StoreError{Op: "marshal location", Err: err}
	}

	_, err = c.store.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.store.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return &StoreError{Op: "insert location", Err: err}
	}
	return nil
}

func (c *dynamoConn) Close() {
	c.closed = true
}

// haversineMeters computes the great-circle distance in meters between two WGS84 points.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusM = 6_371_000.0
	const deg2rad = math.Pi / 180.0

	sinDLat := math.Sin((lat2 - lat1) * deg2rad / 2)
	sinDLng := math.Sin((lng2 - lng1) * deg2rad / 2)
	a := sinDLat*sinDLat + math.Cos(lat1*deg2rad)*math.Cos(lat2*deg2rad)*sinDLng*sinDLng
	return earthRadiusM * 2 * math.Asin(math.Sqrt(a))
}
