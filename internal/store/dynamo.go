package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/david485-rev/RecipeExplorer/internal/models"
)

// DynamoGateway implements Gateway over a single DynamoDB table. Transient
// failures are retried by the SDK's own exponential-backoff retryer before
// they surface here as ErrUnavailable.
type DynamoGateway struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoGateway creates a gateway over the given table.
func NewDynamoGateway(client *dynamodb.Client, table string) *DynamoGateway {
	return &DynamoGateway{
		client: client,
		table:  table,
	}
}

func (g *DynamoGateway) GetItem(ctx context.Context, uuid string) (models.Item, error) {
	out, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.table),
		Key:       primaryKey(uuid),
	})
	if err != nil {
		log.Printf("store: get %s: %v", uuid, err)
		return nil, unavailable(err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	return decodeItem(out.Item)
}

func (g *DynamoGateway) PutItem(ctx context.Context, item models.Item) error {
	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return fmt.Errorf("store: marshal item: %w", err)
	}
	if _, err := g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(g.table),
		Item:      av,
	}); err != nil {
		log.Printf("store: put %s: %v", item.UUID(), err)
		return unavailable(err)
	}
	return nil
}

func (g *DynamoGateway) QueryByIndex(ctx context.Context, index string, key Pair, sort *Pair, filter *Filter) ([]models.Item, error) {
	keyCond := expression.Key(key.Field).Equal(expression.Value(key.Value))
	if sort != nil {
		keyCond = keyCond.And(expression.Key(sort.Field).Equal(expression.Value(sort.Value)))
	}

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(filterCondition(filter))
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("store: build query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(g.table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []models.Item
	for {
		out, err := g.client.Query(ctx, input)
		if err != nil {
			log.Printf("store: query %s: %v", index, err)
			return nil, unavailable(err)
		}
		for _, raw := range out.Items {
			item, err := decodeItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (g *DynamoGateway) ScanAll(ctx context.Context, field, value string) ([]models.Item, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name(field).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("store: build scan: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(g.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []models.Item
	for {
		out, err := g.client.Scan(ctx, input)
		if err != nil {
			log.Printf("store: scan %s=%s: %v", field, value, err)
			return nil, unavailable(err)
		}
		for _, raw := range out.Items {
			item, err := decodeItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (g *DynamoGateway) UpdateItem(ctx context.Context, uuid string, patch map[string]any) (models.Item, error) {
	var update expression.UpdateBuilder
	for field, value := range patch {
		if value == nil {
			update = update.Remove(expression.Name(field))
		} else {
			update = update.Set(expression.Name(field), expression.Value(value))
		}
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("uuid"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("store: build update: %w", err)
	}

	out, err := g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(g.table),
		Key:                       primaryKey(uuid),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var failed *types.ConditionalCheckFailedException
		if errors.As(err, &failed) {
			return nil, ErrConditionFailed
		}
		log.Printf("store: update %s: %v", uuid, err)
		return nil, unavailable(err)
	}
	return decodeItem(out.Attributes)
}

func (g *DynamoGateway) DeleteItem(ctx context.Context, uuid string, cond *Pair) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(g.table),
		Key:       primaryKey(uuid),
	}
	if cond != nil {
		expr, err := expression.NewBuilder().
			WithCondition(expression.Name(cond.Field).Equal(expression.Value(cond.Value))).
			Build()
		if err != nil {
			return fmt.Errorf("store: build delete: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := g.client.DeleteItem(ctx, input); err != nil {
		var failed *types.ConditionalCheckFailedException
		if errors.As(err, &failed) {
			return ErrConditionFailed
		}
		log.Printf("store: delete %s: %v", uuid, err)
		return unavailable(err)
	}
	return nil
}

func primaryKey(uuid string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"uuid": &types.AttributeValueMemberS{Value: uuid},
	}
}

func filterCondition(f *Filter) expression.ConditionBuilder {
	if f.Contains {
		return expression.Name(f.Field).Contains(f.Value)
	}
	return expression.Name(f.Field).Equal(expression.Value(f.Value))
}

func decodeItem(raw map[string]types.AttributeValue) (models.Item, error) {
	var item map[string]any
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return nil, fmt.Errorf("store: unmarshal item: %w", err)
	}
	return models.Item(item), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
