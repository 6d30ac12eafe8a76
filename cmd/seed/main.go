// Command seed creates the RecipeExplorer table with its secondary indexes
// and loads a handful of sample items. Intended for dynamodb-local, set via
// AWS_ENDPOINT.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/david485-rev/RecipeExplorer/config"
	"github.com/david485-rev/RecipeExplorer/internal/database"
	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/service"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	client, err := database.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	if err := createTable(ctx, client, cfg.TableName); err != nil {
		var exists *types.ResourceInUseException
		if !errors.As(err, &exists) {
			log.Fatalf("Failed to create table: %v", err)
		}
		log.Printf("Table %s already exists", cfg.TableName)
	} else {
		log.Printf("Created table %s", cfg.TableName)
	}

	if err := seed(ctx, store.NewDynamoGateway(client, cfg.TableName), cfg.BcryptCost); err != nil {
		log.Fatalf("Failed to seed table: %v", err)
	}
	log.Println("Seeded sample data")
}

func createTable(ctx context.Context, client *dynamodb.Client, table string) error {
	stringAttr := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		}
	}
	hashKey := func(name string) []types.KeySchemaElement {
		return []types.KeySchemaElement{
			{AttributeName: aws.String(name), KeyType: types.KeyTypeHash},
		}
	}
	allAttrs := &types.Projection{ProjectionType: types.ProjectionTypeAll}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			stringAttr("uuid"),
			stringAttr("type"),
			stringAttr("username"),
			stringAttr("email"),
			stringAttr("authorUuid"),
			stringAttr("recipeUuid"),
			{
				AttributeName: aws.String("creation_date"),
				AttributeType: types.ScalarAttributeTypeN,
			},
		},
		KeySchema: hashKey("uuid"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName:  aws.String(store.IndexType),
				KeySchema:  hashKey("type"),
				Projection: allAttrs,
			},
			{
				IndexName: aws.String(store.IndexUsername),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("username"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("creation_date"), KeyType: types.KeyTypeRange},
				},
				Projection: allAttrs,
			},
			{
				IndexName:  aws.String(store.IndexEmail),
				KeySchema:  hashKey("email"),
				Projection: allAttrs,
			},
			{
				IndexName: aws.String(store.IndexAuthorRecipe),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("authorUuid"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("recipeUuid"), KeyType: types.KeyTypeRange},
				},
				Projection: allAttrs,
			},
		},
	})
	return err
}

func seed(ctx context.Context, gw store.Gateway, bcryptCost int) error {
	hasher := service.NewBcryptHasher(bcryptCost)
	password, err := hasher.Hash("david")
	if err != nil {
		return err
	}

	description := "Sample account"
	user := models.NewUser("david", password, "david@gmail.com", &description, nil)
	if err := gw.PutItem(ctx, user); err != nil {
		return err
	}

	recipe := models.NewRecipe(
		user.UUID(),
		"https://example.com/tiramisu.png",
		"Tiramisu",
		"sweets",
		"italian",
		"A classic layered dessert.",
		"Whip mascarpone, dip ladyfingers in espresso, layer and chill.",
		[]string{"mascarpone", "ladyfingers", "espresso", "cocoa"},
	)
	if err := gw.PutItem(ctx, recipe); err != nil {
		return err
	}

	comment := models.NewComment(user.UUID(), recipe.UUID(), "Came out great.", 9)
	return gw.PutItem(ctx, comment)
}
