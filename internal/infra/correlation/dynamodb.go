package correlation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const (
	conditionalCheckFailed = "ConditionalCheckFailedException"

	createCondition   = "attribute_not_exists(reference_id)"
	markUsedCondition = "attribute_exists(reference_id) AND used = :false"
	markUsedUpdate    = "SET used = :true, used_at = :at"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error)
	GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error)
}

// DynamoDBStore keeps records in a table keyed by reference_id; expires_at is
// an epoch attribute suitable for DynamoDB TTL.
type DynamoDBStore struct {
	client    DynamoDBAPI
	tableName string
	logger    *slog.Logger
}

func NewDynamoDBStore(client DynamoDBAPI, tableName string, logger *slog.Logger) *DynamoDBStore {
	return &DynamoDBStore{client: client, tableName: tableName, logger: logger}
}

func (s *DynamoDBStore) Create(ctx context.Context, p *correlation.Pending) error {
	item, err := attributevalue.MarshalMap(p.Snapshot())
	if err != nil {
		return errs.Wrap(err, "marshal correlation record")
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String(createCondition),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return errs.ErrCorrelationExists
		}
		s.logger.ErrorContext(ctx, "dynamodb correlation write failed", "reference_id", p.ReferenceID(), "error", err)
		return errs.Mark(errs.Wrap(err, "put item"), errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *DynamoDBStore) Get(ctx context.Context, referenceID string) (*correlation.Pending, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            referenceKey(referenceID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "get item"), errs.ErrDatabaseOperationFailed)
	}
	if len(out.Item) == 0 {
		return nil, errs.ErrCorrelationNotFound
	}
	var snap correlation.Snapshot
	if err := attributevalue.UnmarshalMap(out.Item, &snap); err != nil {
		return nil, errs.Wrap(err, "unmarshal correlation record")
	}
	return correlation.FromSnapshot(snap)
}

func (s *DynamoDBStore) MarkUsed(ctx context.Context, referenceID string, at time.Time) (bool, error) {
	usedAt, err := attributevalue.Marshal(at.UTC())
	if err != nil {
		return false, errs.Wrap(err, "marshal used_at")
	}
	_, err = s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 referenceKey(referenceID),
		ConditionExpression: aws.String(markUsedCondition),
		UpdateExpression:    aws.String(markUsedUpdate),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":at":    usedAt,
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, errs.Mark(errs.Wrap(err, "update item"), errs.ErrDatabaseOperationFailed)
	}
	return true, nil
}

func referenceKey(referenceID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"reference_id": &types.AttributeValueMemberS{Value: referenceID},
	}
}

func isConditionalCheckFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == conditionalCheckFailed
}
